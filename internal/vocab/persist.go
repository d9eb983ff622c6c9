package vocab

import (
	"encoding/json"
	"fmt"
	"os"
)

// File is the on-disk form of a fitted vocabulary. Language and
// WhitespaceTokenizer record how the source pipeline was configured so a
// compatible pipeline can be rebuilt alongside the restored vocabulary.
type File struct {
	Language            string         `json:"language,omitempty"`
	WhitespaceTokenizer bool           `json:"whitespace_tokenizer,omitempty"`
	OOVToken            string         `json:"oov_token,omitempty"`
	Words               map[string]int `json:"words"`
	Counts              map[string]int `json:"counts,omitempty"`
	TotalTokens         int            `json:"total_tokens,omitempty"`
}

// Snapshot captures the Builder state as a File ready for Save.
func (b *Builder) Snapshot() File {
	return File{
		OOVToken:    b.oovToken,
		Words:       b.WordIndexes(),
		Counts:      b.WordCounts(),
		TotalTokens: b.total,
	}
}

// Save writes f to path as indented JSON.
func Save(path string, f File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("vocab: encode %s: %w", path, err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("vocab: write %s: %w", path, err)
	}

	return nil
}

// LoadFile reads a vocabulary file written by Save.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("vocab: read %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("vocab: parse %s: %w", path, err)
	}

	return f, nil
}

// Restore rebuilds a Builder from a saved vocabulary. The word indices
// must be dense and contiguous from 1, and when an OOV token is recorded
// it must hold index 1.
func Restore(tok Tokenizer, f File) (*Builder, error) {
	inverse := make(map[int]string, len(f.Words))

	for w, idx := range f.Words {
		if idx < 1 || idx > len(f.Words) {
			return nil, fmt.Errorf("vocab: word %q has index %d outside 1..%d", w, idx, len(f.Words))
		}

		if prev, dup := inverse[idx]; dup {
			return nil, fmt.Errorf("vocab: words %q and %q share index %d", prev, w, idx)
		}

		inverse[idx] = w
	}

	if f.OOVToken != "" {
		if idx, ok := f.Words[f.OOVToken]; !ok || idx != 1 {
			return nil, fmt.Errorf("vocab: oov token %q must hold index 1", f.OOVToken)
		}
	}

	b := &Builder{
		tok:      tok,
		oovToken: f.OOVToken,
		words:    make(map[string]int, len(f.Words)),
		inverse:  inverse,
		counts:   make(map[string]int, len(f.Counts)),
		total:    f.TotalTokens,
	}

	for w, idx := range f.Words {
		b.words[w] = idx
	}

	for w, c := range f.Counts {
		if c < 0 {
			return nil, fmt.Errorf("vocab: word %q has negative count %d", w, c)
		}

		b.counts[w] = c
	}

	return b, nil
}
