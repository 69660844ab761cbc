package engine

import "slices"

// Participant holds one participant's canonical record.
type Participant struct {
	Name  string      `json:"name"`
	Coins int         `json:"coins"`
	Cards []Character `json:"cards"`
}

// Influence is the number of hidden cards still held.
func (p Participant) Influence() int {
	return len(p.Cards)
}

// HasCards returns true while the participant is still in the game.
func (p Participant) HasCards() bool {
	return len(p.Cards) > 0
}

// HoldsAny returns true if the hand contains any of the given characters.
func (p Participant) HoldsAny(chars []Character) bool {
	return holdsAny(p.Cards, chars)
}

func (p *Participant) clone() Participant {
	c := *p
	c.Cards = slices.Clone(p.Cards)
	return c
}

func holdsAny(hand, chars []Character) bool {
	return slices.ContainsFunc(hand, func(h Character) bool { return slices.Contains(chars, h) })
}

// removeFirst removes the first card of hand matching any of chars.
func removeFirst(hand, chars []Character) ([]Character, Character, bool) {
	i := slices.IndexFunc(hand, func(h Character) bool { return slices.Contains(chars, h) })
	if i < 0 {
		return hand, CharNone, false
	}
	return slices.Delete(slices.Clone(hand), i, i+1), hand[i], true
}

// subtractCards removes each card of take from hand once. ok is false if take
// is not a sub-multiset of hand.
func subtractCards(hand, take []Character) ([]Character, bool) {
	rest := slices.Clone(hand)
	for _, t := range take {
		var found bool
		rest, _, found = removeFirst(rest, []Character{t})
		if !found {
			return hand, false
		}
	}
	return rest, true
}
