package cribbage

import (
	"fmt"
	"sort"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Rank represents a card rank. Aces are always low in cribbage, so the
// ordinal doubles as the run value (A=1 .. K=13).
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r >= Two && r <= Nine {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the string representation of a card (e.g., "5♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// CountValue returns the card's value toward fifteens and the pegging
// count: face cards count ten, everything else its ordinal.
func (c Card) CountValue() int {
	if c.Rank > Ten {
		return 10
	}
	return int(c.Rank)
}

// RunValue returns the card's position in run ordering (A=1 .. K=13).
func (c Card) RunValue() int {
	return int(c.Rank)
}

// IsJack returns true if the card is a Jack, the rank behind both his
// heels and nobs.
func (c Card) IsJack() bool {
	return c.Rank == Jack
}

// ParseCard parses a card from text such as "5H", "JS", "10C" or "TC".
// Suit symbols are accepted too, so strings produced by Card.String
// round-trip.
func ParseCard(s string) (Card, error) {
	in := strings.TrimSpace(s)
	if len(in) < 2 {
		return Card{}, fmt.Errorf("card %q: too short", s)
	}

	// Suit is always the final rune.
	runes := []rune(in)
	suitRune := runes[len(runes)-1]
	rankStr := strings.ToUpper(string(runes[:len(runes)-1]))

	var suit Suit
	switch suitRune {
	case 'S', 's', '♠':
		suit = Spades
	case 'H', 'h', '♥':
		suit = Hearts
	case 'D', 'd', '♦':
		suit = Diamonds
	case 'C', 'c', '♣':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("card %q: unknown suit %q", s, string(suitRune))
	}

	var rank Rank
	switch rankStr {
	case "A", "1":
		rank = Ace
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rank = Rank(rankStr[0] - '0')
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		return Card{}, fmt.Errorf("card %q: unknown rank %q", s, rankStr)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a whitespace- or comma-separated list of cards.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// CardsString renders cards as a comma-separated list, the form used in
// exported records.
func CardsString(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// SortByRunValue returns a copy of cards ordered by run value. Scoring
// never depends on input order; this exists for stable display and
// record output.
func SortByRunValue(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	sort.Slice(out, func(i, j int) bool {
		if out[i].RunValue() != out[j].RunValue() {
			return out[i].RunValue() < out[j].RunValue()
		}
		return out[i].Suit < out[j].Suit
	})
	return out
}
