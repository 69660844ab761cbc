package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"coup/internal/random"
)

// Game holds the entire game: the authoritative state, the deck, the seats
// and the effect table.
type Game struct {
	State   *State
	Deck    *Deck
	Config  GameConfig
	Effects *EffectRegistry
	Logger  *slog.Logger

	Phase   GamePhase
	Current int    // seat index of the participant whose turn it is
	Turns   int    // completed turns
	Seed    uint64 // seed actually used for the shuffle source

	seats      map[string]Seat
	seatList   []Seat
	observers  []Observer
	onFallback []func(name, decision string, err error)
	totalCards int
}

// NewGame seats the participants and shuffles a fresh deck. Cards are dealt
// by Start.
func NewGame(seats []Seat, config GameConfig, effects *EffectRegistry) (*Game, error) {
	if len(seats) < MinSeats || len(seats) > MaxSeats {
		return nil, fmt.Errorf("%w: %d", ErrSeatCount, len(seats))
	}
	if effects == nil {
		return nil, fmt.Errorf("%w: registry is nil", ErrNoEffect)
	}

	seed := config.Seed
	if seed == 0 {
		s, err := random.NewSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}

	g := &Game{
		State:    NewState(config.PublicLogWindow),
		Config:   config,
		Effects:  effects,
		Logger:   slog.New(slog.DiscardHandler),
		Phase:    PhaseSetup,
		Seed:     seed,
		seats:    make(map[string]Seat, len(seats)),
		seatList: append([]Seat(nil), seats...),
	}
	for _, s := range seats {
		if s.Decider == nil {
			return nil, fmt.Errorf("%w: %s has no decider", ErrInvalidParticipant, s.Name)
		}
		if err := g.State.AddParticipant(s.Name); err != nil {
			return nil, err
		}
		g.seats[s.Name] = s
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	g.Deck = InitializeDeck(CopiesPerCharacter, rng)
	g.totalCards = g.Deck.Len()
	g.State.SetDeckSize(g.Deck.Len())
	g.State.onAppend = g.emit
	return g, nil
}

// AddObserver registers o to receive every log entry from now on.
func (g *Game) AddObserver(o Observer) {
	g.observers = append(g.observers, o)
}

// OnFallback registers fn to be called whenever a decision times out or
// fails and the default is used instead.
func (g *Game) OnFallback(fn func(name, decision string, err error)) {
	g.onFallback = append(g.onFallback, fn)
}

func (g *Game) emit(e Entry) {
	if len(g.observers) == 0 {
		return
	}
	view := g.SpectatorView()
	for _, o := range g.observers {
		o.Observe(e, view)
	}
}

// Start deals the opening hands.
func (g *Game) Start() error {
	if g.Phase != PhaseSetup {
		return fmt.Errorf("%w: game already started", ErrInvalidAction)
	}
	for _, name := range g.State.Order() {
		hand := make([]Character, 0, HandSize)
		for i := 0; i < HandSize; i++ {
			c, err := g.Deck.Draw()
			if err != nil {
				return g.corrupt(fmt.Errorf("dealing %s: %w", name, err))
			}
			hand = append(hand, c)
		}
		if err := g.State.UpdateCards(name, hand); err != nil {
			return err
		}
	}
	g.State.SetDeckSize(g.Deck.Len())
	g.Phase = PhaseAwaitingAction
	g.Current = 0
	g.Logger.Info("game started", "players", len(g.seatList), "seed", g.Seed)
	return nil
}

// Restart builds a fresh game with the same seats, effects, logger and
// observers. The receiver is left untouched.
func (g *Game) Restart() (*Game, error) {
	cfg := g.Config
	if cfg.Seed != 0 {
		cfg.Seed++
	}
	next, err := NewGame(g.seatList, cfg, g.Effects)
	if err != nil {
		return nil, err
	}
	next.Logger = g.Logger
	next.observers = slices.Clone(g.observers)
	next.onFallback = slices.Clone(g.onFallback)
	return next, nil
}

// Player returns a copy of the named participant's record.
func (g *Game) Player(name string) (Participant, bool) {
	return g.State.Participant(name)
}

// CurrentPlayer returns the name of the participant whose turn it is.
func (g *Game) CurrentPlayer() string {
	order := g.State.Order()
	if g.Current < 0 || g.Current >= len(order) {
		return ""
	}
	return order[g.Current]
}

// ViewFor returns the public view as seen by the named participant.
func (g *Game) ViewFor(name string) PublicView {
	pv := g.State.PublicView(name)
	pv.Phase = g.Phase.String()
	if g.Phase != PhaseSetup && g.Phase != PhaseGameOver {
		pv.Turn = g.CurrentPlayer()
	}
	return pv
}

// SpectatorView returns the view with no card identities for anyone.
func (g *Game) SpectatorView() PublicView {
	return g.ViewFor("")
}

// FullView returns the unredacted state.
func (g *Game) FullView() FullView {
	fv := g.State.FullView()
	fv.Seed = g.Seed
	return fv
}

// others returns every other participant still holding cards, in seating
// order starting with the seat after name.
func (g *Game) others(name string) []string {
	order := g.State.Order()
	start := 0
	for i, n := range order {
		if n == name {
			start = i + 1
			break
		}
	}
	var out []string
	for i := 0; i < len(order); i++ {
		n := order[(start+i)%len(order)]
		if n == name {
			continue
		}
		if p, ok := g.State.Participant(n); ok && p.HasCards() {
			out = append(out, n)
		}
	}
	return out
}

// Targets returns the participants name may target.
func (g *Game) Targets(name string) []string {
	return g.others(name)
}

// GainCoins adds n coins to the named participant.
func (g *Game) GainCoins(name string, n int) error {
	_, err := g.State.UpdateCoins(name, n)
	return err
}

// SpendCoins removes n coins, clamping at zero.
func (g *Game) SpendCoins(name string, n int) error {
	_, err := g.State.UpdateCoins(name, -n)
	return err
}

// TransferCoins moves up to n coins from one participant to another and
// returns the amount moved.
func (g *Game) TransferCoins(from, to string, n int) (int, error) {
	src, ok := g.State.Participant(from)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPlayerNotFound, from)
	}
	amount := min(src.Coins, n)
	if _, err := g.State.UpdateCoins(from, -amount); err != nil {
		return 0, err
	}
	if _, err := g.State.UpdateCoins(to, amount); err != nil {
		return 0, err
	}
	return amount, nil
}

// LoseInfluence reveals the participant's last card and shuffles it back into
// the deck. A participant without cards is left alone.
func (g *Game) LoseInfluence(name string) error {
	p, ok := g.State.Participant(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
	}
	if !p.HasCards() {
		return nil
	}
	lost := p.Cards[len(p.Cards)-1]
	hand := p.Cards[:len(p.Cards)-1]
	g.Deck.ReturnAndReshuffle(lost)
	if err := g.State.UpdateCards(name, hand); err != nil {
		return err
	}
	g.State.SetDeckSize(g.Deck.Len())
	g.State.LogInfluenceChange(name, -1, lost)
	g.Logger.Info("influence lost", "player", name, "card", lost.String(), "remaining", len(hand))
	if len(hand) == 0 {
		g.Logger.Info("player eliminated", "player", name)
	}
	return nil
}

// replaceProvenCard shuffles the card that proved a claim back into the deck
// and draws a replacement.
func (g *Game) replaceProvenCard(name string, qualifiers []Character) error {
	p, ok := g.State.Participant(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
	}
	if len(p.Cards) > HandSize {
		return nil
	}
	hand, proven, found := removeFirst(p.Cards, qualifiers)
	if !found {
		return nil
	}
	g.Deck.ReturnAndReshuffle(proven)
	drawn, err := g.Deck.Draw()
	if err != nil {
		return g.corrupt(fmt.Errorf("redraw for %s: %w", name, err))
	}
	if err := g.State.UpdateCards(name, append(hand, drawn)); err != nil {
		return err
	}
	g.State.SetDeckSize(g.Deck.Len())
	g.Logger.Debug("proven card replaced", "player", name, "card", proven.String())
	return nil
}

// ExchangeCards draws up to two cards, lets the participant return as many
// cards of their choice, and reshuffles the deck.
func (g *Game) ExchangeCards(ctx context.Context, name string) error {
	p, ok := g.State.Participant(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
	}
	n := min(HandSize, g.Deck.Len())
	drawn := make([]Character, 0, n)
	for i := 0; i < n; i++ {
		c, err := g.Deck.Draw()
		if err != nil {
			return g.corrupt(fmt.Errorf("exchange draw for %s: %w", name, err))
		}
		drawn = append(drawn, c)
	}
	g.State.SetDeckSize(g.Deck.Len())

	pool := append(append([]Character(nil), p.Cards...), drawn...)
	chosen := g.askExchange(ctx, name, pool, n, drawn)
	kept, valid := subtractCards(pool, chosen)
	if !valid || len(chosen) != n {
		g.Logger.Warn("invalid exchange selection, returning drawn cards", "player", name)
		chosen = drawn
		kept = p.Cards
	}

	g.Deck.ReturnAndReshuffle(chosen...)
	if err := g.State.UpdateCards(name, kept); err != nil {
		return err
	}
	g.State.SetDeckSize(g.Deck.Len())
	return nil
}

// DealHand replaces a participant's hand with specific cards taken from the
// deck, returning the old hand to it. Used to set up scenarios.
func (g *Game) DealHand(name string, hand []Character) error {
	p, ok := g.State.Participant(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
	}
	pool := append(append([]Character(nil), g.Deck.cards...), p.Cards...)
	rest, ok := subtractCards(pool, hand)
	if !ok {
		return fmt.Errorf("%w: cards %v not available", ErrInvalidAction, hand)
	}
	g.Deck.cards = rest
	g.Deck.Shuffle()
	if err := g.State.UpdateCards(name, hand); err != nil {
		return err
	}
	g.State.SetDeckSize(g.Deck.Len())
	return nil
}

// CheckIntegrity verifies the card and coin invariants.
func (g *Game) CheckIntegrity() error {
	total := g.Deck.Len()
	for _, name := range g.State.Order() {
		p, _ := g.State.Participant(name)
		if p.Coins < 0 {
			return g.corrupt(fmt.Errorf("%s has %d coins", name, p.Coins))
		}
		total += len(p.Cards)
	}
	if total != g.totalCards {
		return g.corrupt(fmt.Errorf("%d cards in play, want %d", total, g.totalCards))
	}
	if g.State.deckSize != g.Deck.Len() {
		return g.corrupt(fmt.Errorf("deck size mirror %d, deck holds %d", g.State.deckSize, g.Deck.Len()))
	}
	return nil
}

func (g *Game) corrupt(err error) error {
	g.Phase = PhaseCorrupted
	if !errors.Is(err, ErrIntegrity) {
		err = fmt.Errorf("%w: %w", ErrIntegrity, err)
	}
	g.Logger.Error("game state corrupted", "error", err)
	return err
}
