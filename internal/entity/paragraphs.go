package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// DecodeParagraphs decodes a stored paragraph structure.
// The backend may return the list itself, the list serialized as a JSON
// string, or an object wrapping it under "paragraphs". Empty and null input
// decode to no paragraphs. Anything else is ErrMalformedParagraphs.
func DecodeParagraphs(raw json.RawMessage) ([]Paragraph, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '"':
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedParagraphs, err)
		}
		if strings.TrimSpace(inner) == "" {
			return nil, nil
		}
		return DecodeParagraphs(json.RawMessage(inner))
	case '{':
		var wrapper struct {
			Paragraphs json.RawMessage `json:"paragraphs"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedParagraphs, err)
		}
		if len(wrapper.Paragraphs) == 0 || wrapper.Paragraphs[0] != '[' {
			return nil, fmt.Errorf("%w: object without paragraph list", ErrMalformedParagraphs)
		}
		return decodeParagraphList(wrapper.Paragraphs)
	case '[':
		return decodeParagraphList(raw)
	default:
		return nil, fmt.Errorf("%w: unexpected %q", ErrMalformedParagraphs, raw[0])
	}
}

func decodeParagraphList(raw json.RawMessage) ([]Paragraph, error) {
	var items []struct {
		Sentences *[]SentencePair `json:"sentences"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedParagraphs, err)
	}

	paragraphs := make([]Paragraph, 0, len(items))
	for i, item := range items {
		if item.Sentences == nil {
			return nil, fmt.Errorf("%w: paragraph %d has no sentences", ErrMalformedParagraphs, i)
		}
		paragraphs = append(paragraphs, Paragraph{Sentences: *item.Sentences})
	}
	return paragraphs, nil
}

var (
	englishTerminators = regexp.MustCompile(`[.!?]+\s+`)
	koreanTerminators  = regexp.MustCompile(`[.!?。！？]+\s+`)
)

// ReconstructParagraphs rebuilds a single paragraph from flat texts by
// splitting both on sentence terminators and pairing them up to the shorter
// side. Pairs with an empty side are dropped.
func ReconstructParagraphs(english, korean string) []Paragraph {
	en := splitSentences(englishTerminators, english)
	ko := splitSentences(koreanTerminators, korean)

	n := min(len(en), len(ko))
	sentences := make([]SentencePair, 0, n)
	for i := 0; i < n; i++ {
		pair := SentencePair{English: strings.TrimSpace(en[i]), Korean: strings.TrimSpace(ko[i])}
		if pair.English == "" || pair.Korean == "" {
			continue
		}
		sentences = append(sentences, pair)
	}

	if len(sentences) == 0 {
		return nil
	}
	return []Paragraph{{Sentences: sentences}}
}

func splitSentences(re *regexp.Regexp, text string) []string {
	parts := re.Split(text, -1)
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
