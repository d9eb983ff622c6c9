package vocab

import (
	"fmt"
	"strings"
)

// Padding and truncation modes for PadSequences.
const (
	PadPre  = "pre"
	PadPost = "post"
)

// TextsToSequences encodes each text as a slice of word indices using the
// fitted vocabulary. Unknown words map to the OOV index when an OOV token
// is configured and are dropped otherwise. The Builder is not modified.
func (b *Builder) TextsToSequences(texts []string) [][]int {
	oovIdx, hasOOV := b.words[b.oovToken]

	out := make([][]int, len(texts))
	for i, text := range texts {
		words := b.tok.Words(text)

		seq := make([]int, 0, len(words))
		for _, w := range words {
			if idx, ok := b.words[b.tok.Lower(w)]; ok {
				seq = append(seq, idx)
			} else if hasOOV {
				seq = append(seq, oovIdx)
			}
		}

		out[i] = seq
	}

	return out
}

// SequencesToTexts decodes index sequences back to space-joined words.
// Unassigned indices (including padding zeros) render as the OOV token
// when one is configured and are dropped otherwise.
func (b *Builder) SequencesToTexts(seqs [][]int) []string {
	_, hasOOV := b.words[b.oovToken]

	out := make([]string, len(seqs))
	for i, seq := range seqs {
		words := make([]string, 0, len(seq))
		for _, idx := range seq {
			if w, ok := b.inverse[idx]; ok {
				words = append(words, w)
			} else if hasOOV {
				words = append(words, b.oovToken)
			}
		}

		out[i] = strings.Join(words, " ")
	}

	return out
}

// PadOptions controls PadSequences. The zero value pads and truncates at
// the front to the length of the longest sequence.
type PadOptions struct {
	// MaxLen is the target length. 0 means the longest input sequence.
	MaxLen int
	// Padding is the side zeros are added on: "pre" (default) or "post".
	Padding string
	// Truncating is the side entries are removed from when a sequence
	// exceeds MaxLen: "pre" (default) or "post".
	Truncating string
}

// PadSequences returns copies of seqs brought to a uniform length by
// zero-padding short sequences and truncating long ones.
func PadSequences(seqs [][]int, opts PadOptions) ([][]int, error) {
	padding, err := padMode("padding", opts.Padding)
	if err != nil {
		return nil, err
	}

	truncating, err := padMode("truncating", opts.Truncating)
	if err != nil {
		return nil, err
	}

	if opts.MaxLen < 0 {
		return nil, fmt.Errorf("vocab: max length must not be negative, got %d", opts.MaxLen)
	}

	maxLen := opts.MaxLen
	if maxLen == 0 {
		for _, seq := range seqs {
			if len(seq) > maxLen {
				maxLen = len(seq)
			}
		}
	}

	out := make([][]int, len(seqs))
	for i, seq := range seqs {
		if len(seq) > maxLen {
			if truncating == PadPre {
				seq = seq[len(seq)-maxLen:]
			} else {
				seq = seq[:maxLen]
			}
		}

		row := make([]int, maxLen)
		if padding == PadPre {
			copy(row[maxLen-len(seq):], seq)
		} else {
			copy(row, seq)
		}

		out[i] = row
	}

	return out, nil
}

func padMode(field, mode string) (string, error) {
	switch mode {
	case "":
		return PadPre, nil
	case PadPre, PadPost:
		return mode, nil
	default:
		return "", fmt.Errorf("vocab: invalid %s mode %q (expected %s|%s)", field, mode, PadPre, PadPost)
	}
}
