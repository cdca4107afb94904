package difficulty

import "fmt"

// Level is a position on the five-step difficulty scale.
// The zero value is VeryEasy; levels are ordered low to high.
type Level int

const (
	VeryEasy Level = iota
	Easy
	Optimal
	Challenging
	VeryChallenging
)

// NumLevels is the number of difficulty levels.
const NumLevels = 5

var levelNames = [NumLevels]string{
	"very_easy",
	"easy",
	"optimal",
	"challenging",
	"very_challenging",
}

// AllLevels returns every level in ascending order.
func AllLevels() []Level {
	return []Level{VeryEasy, Easy, Optimal, Challenging, VeryChallenging}
}

// String returns the snake_case name used in JSON and storage.
func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// Valid reports whether l is one of the five defined levels.
func (l Level) Valid() bool {
	return l >= VeryEasy && l <= VeryChallenging
}

// Increase returns the next harder level, staying at VeryChallenging.
func (l Level) Increase() Level {
	return clampLevel(l + 1)
}

// Decrease returns the next easier level, staying at VeryEasy.
func (l Level) Decrease() Level {
	return clampLevel(l - 1)
}

func clampLevel(l Level) Level {
	if l < VeryEasy {
		return VeryEasy
	}
	if l > VeryChallenging {
		return VeryChallenging
	}
	return l
}

// ParseLevel converts a level name back to a Level.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return Optimal, fmt.Errorf("unknown difficulty level %q", s)
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid difficulty level %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
