package engine

import "fmt"

// DefaultPublicLogWindow bounds how many recent entries a public view carries.
const DefaultPublicLogWindow = 7

// State is the authoritative record of one game: participants in seating
// order, the append-only log, the deck size mirror and the winner.
type State struct {
	order    []string
	players  map[string]*Participant
	log      []Entry
	deckSize int
	winner   string
	over     bool
	window   int
	onAppend func(Entry)
}

// NewState creates an empty game state whose public views carry the last
// window entries.
func NewState(window int) *State {
	if window <= 0 {
		window = DefaultPublicLogWindow
	}
	return &State{
		players: make(map[string]*Participant),
		window:  window,
	}
}

// AddParticipant seats a new participant with 2 coins and an empty hand.
func (s *State) AddParticipant(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidParticipant)
	}
	if _, ok := s.players[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePlayer, name)
	}
	s.players[name] = &Participant{Name: name, Coins: StartingCoins}
	s.order = append(s.order, name)
	return nil
}

// UpdateCoins applies delta and returns the new balance. Balances clamp at 0.
func (s *State) UpdateCoins(name string, delta int) (int, error) {
	p, ok := s.players[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
	}
	p.Coins = max(p.Coins+delta, 0)
	return p.Coins, nil
}

// UpdateCards replaces the participant's hand with a copy of hand.
func (s *State) UpdateCards(name string, hand []Character) error {
	p, ok := s.players[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
	}
	p.Cards = append([]Character(nil), hand...)
	return nil
}

// SetDeckSize mirrors the deck size after a draw or return.
func (s *State) SetDeckSize(n int) {
	s.deckSize = n
}

// SetWinner records the end of the game. An empty name means no winner.
func (s *State) SetWinner(name string) {
	s.winner = name
	s.over = true
}

// Winner returns the winner and whether the game has ended.
func (s *State) Winner() (string, bool) {
	return s.winner, s.over
}

// Participant returns a copy of the named participant's record.
func (s *State) Participant(name string) (Participant, bool) {
	p, ok := s.players[name]
	if !ok {
		return Participant{}, false
	}
	return p.clone(), true
}

// Order returns the seating order.
func (s *State) Order() []string {
	return append([]string(nil), s.order...)
}

// Entries returns a copy of the full log.
func (s *State) Entries() []Entry {
	return append([]Entry(nil), s.log...)
}

func (s *State) append(e Entry) Entry {
	e.Seq = len(s.log) + 1
	s.log = append(s.log, e)
	if s.onAppend != nil {
		s.onAppend(e)
	}
	return e
}

func (s *State) LogTurn(name string) Entry {
	return s.append(Entry{Kind: EntryTurn, Actor: name})
}

func (s *State) LogAction(actor string, action ActionKind, target string, outcome Outcome) Entry {
	return s.append(Entry{Kind: EntryAction, Actor: actor, Action: action, Target: target, Outcome: outcome})
}

func (s *State) LogChallenge(challenger, challenged string, claim ActionKind, result string, success bool) Entry {
	return s.append(Entry{
		Kind: EntryChallenge, Challenger: challenger, Challenged: challenged,
		Action: claim, Result: result, Success: success,
	})
}

func (s *State) LogBlock(blocker, blocked string, action ActionKind, result string, success bool) Entry {
	return s.append(Entry{
		Kind: EntryBlock, Blocker: blocker, Blocked: blocked,
		Action: action, Result: result, Success: success,
	})
}

// LogInfluenceChange records a revealed card leaving a hand.
func (s *State) LogInfluenceChange(name string, delta int, card Character) Entry {
	return s.append(Entry{Kind: EntryInfluence, Player: name, Delta: delta, Card: card})
}

func (s *State) LogGameOver(winner string) Entry {
	return s.append(Entry{Kind: EntryGameOver, Winner: winner})
}

// FullView is the unredacted state, for engine use and tests only.
type FullView struct {
	Participants []Participant `json:"participants"`
	Log          []Entry       `json:"log"`
	DeckSize     int           `json:"deck_size"`
	Winner       string        `json:"winner,omitempty"`
	Over         bool          `json:"over"`
	Seed         uint64        `json:"seed"`
}

// PublicParticipant is what anyone may know about a participant. Cards is
// only filled for the viewer.
type PublicParticipant struct {
	Name      string      `json:"name"`
	Coins     int         `json:"coins"`
	Influence int         `json:"influence"`
	CardCount int         `json:"card_count"`
	Cards     []Character `json:"cards,omitempty"`
}

// PublicView is the redacted state handed to deciders and spectators.
type PublicView struct {
	Viewer       string              `json:"viewer,omitempty"`
	Phase        string              `json:"phase"`
	Turn         string              `json:"turn,omitempty"`
	Participants []PublicParticipant `json:"participants"`
	RecentLog    []Entry             `json:"recent_log"`
	DeckSize     int                 `json:"deck_size"`
	Winner       string              `json:"winner,omitempty"`
	Over         bool                `json:"over"`
}

// FullView returns a deep copy of everything.
func (s *State) FullView() FullView {
	fv := FullView{
		Log:      s.Entries(),
		DeckSize: s.deckSize,
		Winner:   s.winner,
		Over:     s.over,
	}
	for _, name := range s.order {
		fv.Participants = append(fv.Participants, s.players[name].clone())
	}
	return fv
}

// PublicView returns the state as seen by viewer. An empty viewer gets the
// spectator view, which shows no card identities at all.
func (s *State) PublicView(viewer string) PublicView {
	pv := PublicView{
		Viewer:   viewer,
		DeckSize: s.deckSize,
		Winner:   s.winner,
		Over:     s.over,
	}
	for _, name := range s.order {
		p := s.players[name]
		pp := PublicParticipant{
			Name:      p.Name,
			Coins:     p.Coins,
			Influence: p.Influence(),
			CardCount: len(p.Cards),
		}
		if viewer != "" && name == viewer {
			pp.Cards = append([]Character(nil), p.Cards...)
		}
		pv.Participants = append(pv.Participants, pp)
	}
	start := max(len(s.log)-s.window, 0)
	pv.RecentLog = append([]Entry(nil), s.log[start:]...)
	return pv
}

// Self returns the viewer's own entry, if the view has one.
func (v PublicView) Self() (PublicParticipant, bool) {
	return v.Find(v.Viewer)
}

// Find returns the named participant's public entry.
func (v PublicView) Find(name string) (PublicParticipant, bool) {
	for _, p := range v.Participants {
		if p.Name == name {
			return p, true
		}
	}
	return PublicParticipant{}, false
}
