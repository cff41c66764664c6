package word

import "fmt"

// Classification is the verdict for one position of a guess.
type Classification uint8

const (
	// Absent means the letter is not in the secret, or every occurrence
	// was already credited to another position.
	Absent Classification = iota
	// Present means the letter is in the secret at another position.
	Present
	// Correct means the letter is at the right position.
	Correct
)

var classificationNames = [...]string{
	Absent:  "absent",
	Present: "present",
	Correct: "correct",
}

func (c Classification) String() string {
	if int(c) < len(classificationNames) {
		return classificationNames[c]
	}
	return fmt.Sprintf("Classification(%d)", uint8(c))
}

// MarshalText encodes the classification by name so JSON carries "correct",
// "present" or "absent".
func (c Classification) MarshalText() ([]byte, error) {
	if int(c) >= len(classificationNames) {
		return nil, fmt.Errorf("unknown classification %d", uint8(c))
	}
	return []byte(classificationNames[c]), nil
}

// UnmarshalText decodes a classification name.
func (c *Classification) UnmarshalText(text []byte) error {
	for i, name := range classificationNames {
		if name == string(text) {
			*c = Classification(i)
			return nil
		}
	}
	return fmt.Errorf("unknown classification %q", text)
}

// symbol is the compact one-character rendering used by Pattern.
func (c Classification) symbol() byte {
	switch c {
	case Correct:
		return 'G'
	case Present:
		return 'Y'
	default:
		return '.'
	}
}
