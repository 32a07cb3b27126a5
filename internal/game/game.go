package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/lox/cribsim/cribbage"
)

// Game runs a two-player cribbage game to its conclusion. All
// randomness flows through the injected RNG, so a game is fully
// reproducible from its seed.
type Game struct {
	rng    *rand.Rand
	logger *log.Logger
	bus    EventBus

	players [2]*Player
	agents  [2]Agent

	gameNumber  int
	seed        int64
	handNumber  int
	dealerIdx   int
	firstDealer int
	winnerIdx   int // -1 until someone reaches the winning score

	newDeck func() *cribbage.Deck

	crib    *cribbage.Hand
	starter cribbage.Card
}

// New creates a game. The RNG is required; it drives the shuffle, the
// choice of first dealer and the default agents.
func New(rng *rand.Rand, opts ...Option) *Game {
	if rng == nil {
		panic("rng is required for game creation")
	}

	cfg := &gameConfig{
		names:       [2]string{"Player 1", "Player 2"},
		firstDealer: -1,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.bus == nil {
		cfg.bus = NoOpEventBus{}
	}
	if cfg.agents[0] == nil || cfg.agents[1] == nil {
		shared := NewRandomAgent(rng)
		if cfg.agents[0] == nil {
			cfg.agents[0] = shared
		}
		if cfg.agents[1] == nil {
			cfg.agents[1] = shared
		}
	}
	if cfg.newDeck == nil {
		cfg.newDeck = func() *cribbage.Deck {
			return cribbage.NewDeck(rng)
		}
	}

	dealerIdx := cfg.firstDealer
	if dealerIdx < 0 {
		dealerIdx = rng.Intn(2)
	}

	g := &Game{
		rng:         rng,
		logger:      cfg.logger,
		bus:         cfg.bus,
		agents:      cfg.agents,
		gameNumber:  cfg.gameNumber,
		seed:        cfg.seed,
		dealerIdx:   dealerIdx,
		firstDealer: dealerIdx,
		winnerIdx:   -1,
		newDeck:     cfg.newDeck,
		crib:        cribbage.NewHand(),
	}
	g.players[0] = NewPlayer(cfg.names[0])
	g.players[1] = NewPlayer(cfg.names[1])
	return g
}

// Players returns both players in seat order.
func (g *Game) Players() [2]*Player {
	return g.players
}

// Winner returns the winning player, or nil if the game is still in
// progress.
func (g *Game) Winner() *Player {
	if g.winnerIdx < 0 {
		return nil
	}
	return g.players[g.winnerIdx]
}

// HandsPlayed returns the number of deals started so far.
func (g *Game) HandsPlayed() int {
	return g.handNumber
}

// Play runs deals until one player wins, then returns the result.
func (g *Game) Play() (*GameResult, error) {
	for g.winnerIdx < 0 {
		if _, err := g.PlayHand(); err != nil {
			return nil, err
		}
	}

	result := g.result()
	g.logger.Info("game over",
		"game", g.gameNumber,
		"winner", result.Winner,
		"score", fmt.Sprintf("%d-%d", result.Players[0].Score, result.Players[1].Score),
		"hands", result.HandsPlayed)
	g.bus.Publish(NewGameEndEvent(result))
	return result, nil
}

// PlayHand runs a single deal: deal, discard, cut, play and count. It
// returns the deal record, which is only fully populated when the deal
// reached the end of the counting phase.
func (g *Game) PlayHand() (*DealRecord, error) {
	if g.winnerIdx >= 0 {
		return nil, errors.New("game already has a winner")
	}

	g.handNumber++
	g.crib.Clear()
	for _, p := range g.players {
		p.resetDeal()
	}

	g.logger.Info("starting hand",
		"hand", g.handNumber,
		"dealer", g.players[g.dealerIdx].Name,
		"scores", fmt.Sprintf("%d-%d", g.players[0].Score(), g.players[1].Score()))
	g.bus.Publish(NewHandStartEvent(g.handNumber, g.players[g.dealerIdx].Name,
		[2]int{g.players[0].Score(), g.players[1].Score()}))

	deck := g.newDeck()

	if err := g.dealPhase(deck); err != nil {
		return nil, err
	}
	if err := g.discardPhase(); err != nil {
		return nil, err
	}
	if err := g.cutPhase(deck); err != nil {
		return nil, err
	}
	if g.winnerIdx >= 0 {
		// His heels won the game before a card was played.
		return g.finishHand(false, nil)
	}

	if err := g.playPhase(); err != nil {
		return nil, err
	}
	if g.winnerIdx >= 0 {
		return g.finishHand(false, nil)
	}

	counts, err := g.countPhase()
	if err != nil {
		return nil, err
	}

	record, err := g.finishHand(counts.complete, counts)
	if err != nil {
		return nil, err
	}
	g.dealerIdx = 1 - g.dealerIdx
	return record, nil
}

// dealPhase deals six cards to each player, one at a time.
func (g *Game) dealPhase(deck *cribbage.Deck) error {
	for i := 0; i < cribbage.HandSize; i++ {
		for _, p := range g.players {
			card, err := deck.DealOne()
			if err != nil {
				return fmt.Errorf("deal hand %d: %w", g.handNumber, err)
			}
			p.dealt = append(p.dealt, card)
			p.hand.Add(card)
		}
	}
	for _, p := range g.players {
		g.bus.Publish(NewCardsDealtEvent(p.Name, p.dealt))
	}
	return nil
}

// discardPhase asks each agent for two discards and forms the crib.
func (g *Game) discardPhase() error {
	for idx, p := range g.players {
		opp := g.players[1-idx]
		discards := g.agents[idx].ChooseDiscards(DiscardView{
			Hand:     p.hand.Cards(),
			IsDealer: idx == g.dealerIdx,
			MyScore:  p.Score(),
			OppScore: opp.Score(),
		})

		if len(discards) != cribbage.DiscardCount {
			return fmt.Errorf("%s discarded %d cards, want %d", p.Name, len(discards), cribbage.DiscardCount)
		}
		for _, card := range discards {
			if err := p.hand.Remove(card); err != nil {
				return fmt.Errorf("%s discard: %w", p.Name, err)
			}
			g.crib.Add(card)
			p.discards = append(p.discards, card)
		}

		p.playHand = cribbage.NewHand(p.hand.Cards())
		g.logger.Debug("discarded to crib",
			"player", p.Name,
			"kept", cribbage.CardsString(p.hand.Cards()))
		g.bus.Publish(NewDiscardsMadeEvent(p.Name, discards, idx == g.dealerIdx))
	}
	return nil
}

// cutPhase cuts the starter and scores his heels for the dealer if it
// is a jack.
func (g *Game) cutPhase(deck *cribbage.Deck) error {
	starter, err := deck.DealOne()
	if err != nil {
		return fmt.Errorf("cut starter, hand %d: %w", g.handNumber, err)
	}
	g.starter = starter

	heels := 0
	if cribbage.IsHisHeels(starter) {
		heels = 2
		dealer := g.players[g.dealerIdx]
		g.logger.Debug("his heels", "dealer", dealer.Name, "starter", starter)
		g.award(g.dealerIdx, heels, true)
	}
	g.bus.Publish(NewStarterCutEvent(starter, g.players[g.dealerIdx].Name, heels))
	return nil
}

// turnOutcome is the result of offering a pegging turn to a player.
type turnOutcome int

const (
	turnPlayed    turnOutcome = iota // a card was laid
	turnGo                           // cards in hand but none fits under 31
	turnExhausted                    // play hand is empty
)

// takeTurn offers the current count to the player at idx. On
// turnPlayed the chosen card has already been removed from their play
// hand. An agent decision that breaks the rules is returned as an
// error, never absorbed.
func (g *Game) takeTurn(idx, count int, seq []cribbage.Card) (turnOutcome, cribbage.Card, error) {
	p := g.players[idx]
	if p.playHand.Len() == 0 {
		return turnExhausted, cribbage.Card{}, nil
	}
	if !cribbage.HasLegalPlay(p.playHand.Cards(), count) {
		return turnGo, cribbage.Card{}, nil
	}

	card, ok := g.agents[idx].ChoosePlay(PlayView{
		Hand:     p.playHand.Cards(),
		Count:    count,
		Sequence: append([]cribbage.Card(nil), seq...),
		MyScore:  p.Score(),
		OppScore: g.players[1-idx].Score(),
	})
	if !ok {
		return 0, cribbage.Card{}, fmt.Errorf("%s passed at count %d while holding a playable card", p.Name, count)
	}
	if !cribbage.CanPlay(card, count) {
		return 0, cribbage.Card{}, fmt.Errorf("%s played %s at count %d, exceeding %d", p.Name, card, count, cribbage.MaxPlayCount)
	}
	if err := p.playHand.Remove(card); err != nil {
		return 0, cribbage.Card{}, fmt.Errorf("%s play: %w", p.Name, err)
	}
	return turnPlayed, card, nil
}

// playPhase runs the pegging loop until both play hands are empty.
func (g *Game) playPhase() error {
	nonDealer := 1 - g.dealerIdx
	turn := nonDealer
	count := 0
	goStreak := 0
	var seq []cribbage.Card
	var seqOwners []int

	for g.players[0].playHand.Len() > 0 || g.players[1].playHand.Len() > 0 {
		outcome, card, err := g.takeTurn(turn, count, seq)
		if err != nil {
			return err
		}

		if outcome != turnPlayed {
			goStreak++
			if goStreak < 2 {
				turn = 1 - turn
				continue
			}

			// Neither player can add to the count. The last card
			// played collects the go.
			if len(seqOwners) > 0 {
				last := seqOwners[len(seqOwners)-1]
				points := cribbage.GoPoints(count)
				g.bus.Publish(NewGoEvent(g.players[last].Name, points, count))
				g.logger.Debug("go", "player", g.players[last].Name, "count", count)
				g.award(last, points, true)
				if g.winnerIdx >= 0 {
					return nil
				}
			}
			g.bus.Publish(NewCountResetEvent(count, false))
			seq, seqOwners, count, goStreak = nil, nil, 0, 0
			turn = g.leadAfterReset(nonDealer)
			continue
		}

		p := g.players[turn]
		newCount := count + card.CountValue()
		breakdown := cribbage.ScorePlay(seq, card, newCount)
		seq = append(seq, card)
		seqOwners = append(seqOwners, turn)
		count = newCount
		goStreak = 0

		g.logger.Debug("played card",
			"player", p.Name,
			"card", card,
			"count", count,
			"points", breakdown.Total())
		g.bus.Publish(NewCardPlayedEvent(p.Name, card, count, breakdown))
		g.awardBreakdown(turn, breakdown, true)
		if g.winnerIdx >= 0 {
			return nil
		}

		if count == cribbage.MaxPlayCount {
			g.bus.Publish(NewCountResetEvent(count, true))
			seq, seqOwners, count = nil, nil, 0
			turn = g.leadAfterReset(nonDealer)
		} else {
			turn = 1 - turn
		}
	}

	// The final card of the deal still earns its go, since the other
	// player can no longer continue.
	if len(seqOwners) > 0 {
		last := seqOwners[len(seqOwners)-1]
		points := cribbage.GoPoints(count)
		g.bus.Publish(NewGoEvent(g.players[last].Name, points, count))
		g.logger.Debug("last card", "player", g.players[last].Name, "count", count)
		g.award(last, points, true)
	}
	return nil
}

// leadAfterReset picks who leads the next count cycle. The non-dealer
// leads whenever they still hold cards.
func (g *Game) leadAfterReset(nonDealer int) int {
	if g.players[nonDealer].playHand.Len() > 0 {
		return nonDealer
	}
	return 1 - nonDealer
}

// handCounts carries the counting-phase results into the deal record.
type handCounts struct {
	scoreBefore [2]int
	hands       [2]cribbage.Breakdown
	crib        cribbage.Breakdown
	complete    bool
}

// countPhase scores the non-dealer's hand, the dealer's hand and then
// the crib, stopping as soon as anyone reaches the winning score.
func (g *Game) countPhase() (*handCounts, error) {
	counts := &handCounts{
		scoreBefore: [2]int{g.players[0].Score(), g.players[1].Score()},
	}

	nonDealer := 1 - g.dealerIdx
	order := []struct {
		idx    int
		cards  []cribbage.Card
		isCrib bool
	}{
		{nonDealer, g.players[nonDealer].Kept(), false},
		{g.dealerIdx, g.players[g.dealerIdx].Kept(), false},
		{g.dealerIdx, g.crib.Cards(), true},
	}

	for _, c := range order {
		breakdown, err := cribbage.ScoreHand(c.cards, g.starter, c.isCrib)
		if err != nil {
			return nil, fmt.Errorf("count hand %d: %w", g.handNumber, err)
		}

		p := g.players[c.idx]
		g.award(c.idx, breakdown.Total(), false)
		if c.isCrib {
			counts.crib = breakdown
		} else {
			counts.hands[c.idx] = breakdown
		}

		g.logger.Info("counted hand",
			"player", p.Name,
			"crib", c.isCrib,
			"cards", cribbage.CardsString(c.cards),
			"starter", g.starter,
			"points", breakdown.Total(),
			"score", p.Score())
		g.bus.Publish(NewHandCountedEvent(p.Name, c.isCrib, c.cards, g.starter,
			breakdown, p.Score()))

		if g.winnerIdx >= 0 {
			return counts, nil
		}
	}

	counts.complete = true
	return counts, nil
}

// finishHand assembles the deal record and publishes the hand end
// event. Deals cut short by a win before the counting phase have no
// count breakdowns.
func (g *Game) finishHand(counted bool, counts *handCounts) (*DealRecord, error) {
	record := &DealRecord{
		GameNumber: g.gameNumber,
		HandNumber: g.handNumber,
		Dealer:     g.players[g.dealerIdx].Name,
		CribCards:  g.crib.Cards(),
		Starter:    g.starter,
		HisHeels:   cribbage.IsHisHeels(g.starter),
		Counted:    counted,
	}
	if counts != nil {
		record.CribScore = counts.crib.Total()
		record.CribBreakdown = counts.crib
	}

	for idx, p := range g.players {
		pd := PlayerDeal{
			Name:        p.Name,
			Dealt:       append([]cribbage.Card(nil), p.dealt...),
			Kept:        p.Kept(),
			Discards:    append([]cribbage.Card(nil), p.discards...),
			ScoreBefore: p.Score(),
			ScoreAfter:  p.Score(),
		}
		if counts != nil {
			pd.ScoreBefore = counts.scoreBefore[idx]
			pd.HandScore = counts.hands[idx].Total()
			pd.HandBreakdown = counts.hands[idx]
		}
		record.Players[idx] = pd
	}

	g.bus.Publish(NewHandEndEvent(record))
	return record, nil
}

// award adds points to a player and marks the game won the moment the
// winning score is reached.
func (g *Game) award(idx int, points int, fromPlay bool) {
	if points <= 0 {
		return
	}
	p := g.players[idx]
	p.addPoints(points, fromPlay)
	if g.winnerIdx < 0 && cribbage.IsGameWon(p.Score()) {
		g.winnerIdx = idx
	}
}

// awardBreakdown adds the total of a breakdown.
func (g *Game) awardBreakdown(idx int, b cribbage.Breakdown, fromPlay bool) {
	g.award(idx, b.Total(), fromPlay)
}

// result builds the final game summary.
func (g *Game) result() *GameResult {
	result := &GameResult{
		GameNumber:  g.gameNumber,
		Winner:      g.players[g.winnerIdx].Name,
		HandsPlayed: g.handNumber,
		FirstDealer: g.players[g.firstDealer].Name,
		Seed:        g.seed,
	}
	for idx, p := range g.players {
		result.Players[idx] = PlayerSummary{
			Name:        p.Name,
			Score:       p.Score(),
			PlayPoints:  p.PlayPoints(),
			CountPoints: p.CountPoints(),
		}
	}
	return result
}
