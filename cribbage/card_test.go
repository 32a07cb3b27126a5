package cribbage

import "testing"

func TestParseCard(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Card
		wantErr bool
	}{
		{name: "five of hearts", input: "5H", want: Card{Five, Hearts}},
		{name: "jack of spades", input: "JS", want: Card{Jack, Spades}},
		{name: "ten as T", input: "TC", want: Card{Ten, Clubs}},
		{name: "ten as 10", input: "10C", want: Card{Ten, Clubs}},
		{name: "ace", input: "AD", want: Card{Ace, Diamonds}},
		{name: "ace as 1", input: "1D", want: Card{Ace, Diamonds}},
		{name: "lowercase suit", input: "qh", want: Card{Queen, Hearts}},
		{name: "suit symbol", input: "K♣", want: Card{King, Clubs}},
		{name: "whitespace", input: " 9D ", want: Card{Nine, Diamonds}},
		{name: "empty", input: "", wantErr: true},
		{name: "single rune", input: "5", wantErr: true},
		{name: "bad suit", input: "5X", wantErr: true},
		{name: "bad rank", input: "ZS", wantErr: true},
		{name: "rank eleven", input: "11S", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCard(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCard(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCard(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCard(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCardRoundTrip(t *testing.T) {
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Ace; rank <= King; rank++ {
			card := NewCard(rank, suit)
			got, err := ParseCard(card.String())
			if err != nil {
				t.Fatalf("ParseCard(%q): %v", card.String(), err)
			}
			if got != card {
				t.Errorf("round trip %v -> %v", card, got)
			}
		}
	}
}

func TestCountValue(t *testing.T) {
	tests := []struct {
		card string
		want int
	}{
		{"AS", 1},
		{"5H", 5},
		{"9D", 9},
		{"TC", 10},
		{"JS", 10},
		{"QH", 10},
		{"KD", 10},
	}
	for _, tt := range tests {
		if got := mustCard(t, tt.card).CountValue(); got != tt.want {
			t.Errorf("CountValue(%s) = %d, want %d", tt.card, got, tt.want)
		}
	}
}

func TestRunValue(t *testing.T) {
	tests := []struct {
		card string
		want int
	}{
		{"AS", 1},
		{"TC", 10},
		{"JS", 11},
		{"QH", 12},
		{"KD", 13},
	}
	for _, tt := range tests {
		if got := mustCard(t, tt.card).RunValue(); got != tt.want {
			t.Errorf("RunValue(%s) = %d, want %d", tt.card, got, tt.want)
		}
	}
}

func TestCardsString(t *testing.T) {
	cards := mustCards(t, "5S JH 10C")
	if got, want := CardsString(cards), "5♠,J♥,T♣"; got != want {
		t.Errorf("CardsString = %q, want %q", got, want)
	}
	if got := CardsString(nil); got != "" {
		t.Errorf("CardsString(nil) = %q, want empty", got)
	}
}

func TestSortByRunValue(t *testing.T) {
	cards := mustCards(t, "KH 2S AD 2H")
	sorted := SortByRunValue(cards)
	if got, want := CardsString(sorted), "A♦,2♠,2♥,K♥"; got != want {
		t.Errorf("sorted = %q, want %q", got, want)
	}
	// Input order is preserved.
	if got, want := CardsString(cards), "K♥,2♠,A♦,2♥"; got != want {
		t.Errorf("input mutated: %q, want %q", got, want)
	}
}
