package engine

import "math/rand/v2"

// CopiesPerCharacter is how many cards of each character the court deck holds.
const CopiesPerCharacter = 3

// Deck is the shuffled supply of character cards.
type Deck struct {
	cards []Character
	rng   *rand.Rand
}

// NewDeck creates a shuffled deck from the given cards.
func NewDeck(cards []Character, rng *rand.Rand) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	d := &Deck{cards: make([]Character, len(cards)), rng: rng}
	copy(d.cards, cards)
	d.Shuffle()
	return d
}

// InitializeDeck builds copies of every character and shuffles them.
func InitializeDeck(copies int, rng *rand.Rand) *Deck {
	cards := make([]Character, 0, copies*len(AllCharacters()))
	for _, c := range AllCharacters() {
		for i := 0; i < copies; i++ {
			cards = append(cards, c)
		}
	}
	return NewDeck(cards, rng)
}

// Shuffle applies a uniform Fisher-Yates permutation to the remaining cards.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Character, error) {
	if len(d.cards) == 0 {
		return CharNone, ErrDeckExhausted
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

// ReturnAndReshuffle puts a card back and reshuffles the whole deck, so the
// returned card's position can't be inferred.
func (d *Deck) ReturnAndReshuffle(cards ...Character) {
	d.cards = append(d.cards, cards...)
	d.Shuffle()
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Count returns how many copies of c remain in the deck.
func (d *Deck) Count(c Character) int {
	n := 0
	for _, card := range d.cards {
		if card == c {
			n++
		}
	}
	return n
}
