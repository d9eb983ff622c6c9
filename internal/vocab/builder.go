// Package vocab builds word-level vocabularies and converts texts to and
// from dense integer sequences. Index 0 is reserved for padding and is
// never assigned to a word; an optional out-of-vocabulary token claims
// index 1.
package vocab

import "sort"

// Tokenizer supplies the word segmentation and lowercasing rules a
// vocabulary is built with. *pipeline.Pipeline satisfies it.
type Tokenizer interface {
	Words(text string) []string
	Lower(s string) string
}

// WordCount pairs a vocabulary word with its fitted occurrence count.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Builder accumulates a word→index vocabulary over one or more Fit calls.
// Indices are dense, start at 1, and are assigned in first-seen order.
// A Builder is not safe for concurrent use.
type Builder struct {
	tok      Tokenizer
	oovToken string
	words    map[string]int
	inverse  map[int]string
	counts   map[string]int
	total    int
}

// BuilderOption configures a Builder at construction time.
type BuilderOption func(*Builder)

// WithOOVToken reserves index 1 for tok. Unknown words encountered during
// encoding map to it instead of being dropped.
func WithOOVToken(tok string) BuilderOption {
	return func(b *Builder) {
		b.oovToken = tok
	}
}

// NewBuilder returns an empty Builder using tok for segmentation and
// lowercasing.
func NewBuilder(tok Tokenizer, opts ...BuilderOption) *Builder {
	b := &Builder{
		tok:     tok,
		words:   make(map[string]int),
		inverse: make(map[int]string),
		counts:  make(map[string]int),
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.oovToken != "" {
		b.assign(b.oovToken)
	}

	return b
}

// Fit tokenizes and lowercases each text, assigns the next free index to
// every unseen word and updates occurrence counts. Calling Fit again
// extends the vocabulary; indices assigned earlier never change.
func (b *Builder) Fit(texts []string) {
	for _, text := range texts {
		for _, w := range b.tok.Words(text) {
			lw := b.tok.Lower(w)

			if _, ok := b.words[lw]; !ok {
				b.assign(lw)
			}

			b.counts[lw]++
			b.total++
		}
	}
}

func (b *Builder) assign(word string) {
	idx := len(b.words) + 1
	b.words[word] = idx
	b.inverse[idx] = word
}

// Size returns the number of indexed words, including the OOV token.
func (b *Builder) Size() int { return len(b.words) }

// Total returns the number of tokens consumed across all Fit calls.
func (b *Builder) Total() int { return b.total }

// Index returns the index assigned to word and whether word is known.
// The lookup is exact; callers lowercase beforehand or pass fitted words.
func (b *Builder) Index(word string) (int, bool) {
	idx, ok := b.words[word]
	return idx, ok
}

// Word returns the word assigned to index and whether index is assigned.
func (b *Builder) Word(index int) (string, bool) {
	w, ok := b.inverse[index]
	return w, ok
}

// OOVToken returns the configured out-of-vocabulary token, if any.
func (b *Builder) OOVToken() (string, bool) {
	return b.oovToken, b.oovToken != ""
}

// WordIndexes returns a copy of the word→index map.
func (b *Builder) WordIndexes() map[string]int {
	out := make(map[string]int, len(b.words))
	for w, idx := range b.words {
		out[w] = idx
	}

	return out
}

// WordCounts returns a copy of the word→count map. Words that never
// occurred in a fitted text (such as an unused OOV token) are absent.
func (b *Builder) WordCounts() map[string]int {
	out := make(map[string]int, len(b.counts))
	for w, c := range b.counts {
		out[w] = c
	}

	return out
}

// Frequencies returns the fitted words ordered by descending count.
// Ties are broken by assignment order, so equal-count words appear in
// the order they were first seen. The slice is computed on demand.
func (b *Builder) Frequencies() []WordCount {
	out := make([]WordCount, 0, len(b.counts))
	for w, c := range b.counts {
		out = append(out, WordCount{Word: w, Count: c})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return b.words[out[i].Word] < b.words[out[j].Word]
	})

	return out
}
