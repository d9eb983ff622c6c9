package pipeline

import (
	"strings"

	"github.com/clipperhouse/uax29/words"
)

// Segmenter splits raw text into surface token strings. Implementations
// must not merge content across whitespace boundaries.
type Segmenter interface {
	Segment(text string) []string
}

// UnicodeSegmenter tokenizes text on UAX #29 word boundaries. Punctuation
// runs are kept as tokens; whitespace-only segments are dropped.
type UnicodeSegmenter struct{}

// Segment returns the UAX #29 word segments of text, skipping segments
// that contain only whitespace.
func (UnicodeSegmenter) Segment(text string) []string {
	if text == "" {
		return nil
	}

	segments := words.SegmentAll([]byte(text))

	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		tok := string(seg)
		if strings.TrimSpace(tok) == "" {
			continue
		}

		out = append(out, tok)
	}

	return out
}

// WhitespaceSegmenter splits text only on whitespace, with no punctuation
// handling. It mirrors replacing a linguistic tokenizer with a bare
// whitespace splitter.
type WhitespaceSegmenter struct{}

// Segment returns the whitespace-separated fields of text.
func (WhitespaceSegmenter) Segment(text string) []string {
	return strings.Fields(text)
}
