package engine

import "fmt"

// Character identifies the 5 court characters.
type Character int

const (
	CharNone       Character = 0
	CharDuke       Character = 1
	CharAssassin   Character = 2
	CharCaptain    Character = 3
	CharAmbassador Character = 4
	CharContessa   Character = 5
)

var characterNames = map[Character]string{
	CharNone:       "None",
	CharDuke:       "Duke",
	CharAssassin:   "Assassin",
	CharCaptain:    "Captain",
	CharAmbassador: "Ambassador",
	CharContessa:   "Contessa",
}

func (c Character) String() string {
	if s, ok := characterNames[c]; ok {
		return s
	}
	return "Unknown"
}

// MarshalText encodes the character by name so logs and views stay readable.
func (c Character) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Character) UnmarshalText(b []byte) error {
	parsed, err := ParseCharacter(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCharacter looks a character up by its name.
func ParseCharacter(name string) (Character, error) {
	for c, s := range characterNames {
		if s == name && c != CharNone {
			return c, nil
		}
	}
	return CharNone, fmt.Errorf("unknown character %q", name)
}

// AllCharacters returns the 5 characters in table order.
func AllCharacters() []Character {
	return []Character{
		CharDuke, CharAssassin, CharCaptain, CharAmbassador, CharContessa,
	}
}
