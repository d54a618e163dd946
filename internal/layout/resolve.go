package layout

import (
	"sort"
	"strings"

	"github.com/myling/study-backend/internal/entity"
)

// WordPosition is the first sentence a vocabulary word occurs in.
type WordPosition struct {
	Word           entity.Word
	ParagraphIndex int
	SentenceIndex  int
}

// ResolveWordPositions finds, for each word, the first sentence whose source
// text contains it as a case-insensitive substring. Paragraphs and sentences
// are scanned in reading order and the first hit wins. Words without a match,
// and blank words, are dropped. Substring matching means "cat" also matches
// inside "category".
func ResolveWordPositions(paragraphs []entity.Paragraph, words []entity.Word) []WordPosition {
	positions := make([]WordPosition, 0, len(words))
	for _, w := range words {
		needle := strings.ToLower(strings.TrimSpace(w.Word))
		if needle == "" {
			continue
		}
		if p, s, ok := locate(paragraphs, needle); ok {
			positions = append(positions, WordPosition{Word: w, ParagraphIndex: p, SentenceIndex: s})
		}
	}
	return positions
}

func locate(paragraphs []entity.Paragraph, needle string) (int, int, bool) {
	for pi, p := range paragraphs {
		for si, s := range p.Sentences {
			if strings.Contains(strings.ToLower(s.English), needle) {
				return pi, si, true
			}
		}
	}
	return 0, 0, false
}

// GroupByParagraph buckets positions by paragraph index, each bucket ordered
// by sentence index. Words anchored to the same sentence keep their input
// order.
func GroupByParagraph(positions []WordPosition) map[int][]WordPosition {
	groups := make(map[int][]WordPosition)
	for _, pos := range positions {
		groups[pos.ParagraphIndex] = append(groups[pos.ParagraphIndex], pos)
	}
	for _, g := range groups {
		sort.SliceStable(g, func(i, j int) bool {
			return g[i].SentenceIndex < g[j].SentenceIndex
		})
	}
	return groups
}
