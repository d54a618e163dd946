package layout

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Wrap breaks text into lines no wider than maxWidth as measured for face.
// Text is NFC-normalized and split on whitespace; a token wider than maxWidth
// gets a line of its own and is never split. Joining the result with single
// spaces gives back the normalized input. Blank input yields one empty line.
func Wrap(m Measurer, face Face, text string, maxWidth float64) []string {
	words := strings.Fields(norm.NFC.String(text))
	if len(words) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, 1)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.StringWidth(face, candidate) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}

	return append(lines, current)
}
