package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/example/go-textprep/internal/vocab"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var pad bool
	var maxLen int
	var padding string
	var truncating string

	cmd := &cobra.Command{
		Use:   "encode [text files]",
		Short: "Encode texts to word-index sequences, one JSON array per line",
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			b, err := loadVocab(cfg)
			if err != nil {
				return err
			}

			texts, err := readInputTexts(args, os.Stdin)
			if err != nil {
				return err
			}

			seqs := b.TextsToSequences(texts)

			if pad {
				seqs, err = vocab.PadSequences(seqs, vocab.PadOptions{
					MaxLen:     maxLen,
					Padding:    padding,
					Truncating: truncating,
				})
				if err != nil {
					return err
				}
			}

			return writeSequences(os.Stdout, seqs)
		},
	}

	cmd.Flags().BoolVar(&pad, "pad", false, "Pad/truncate sequences to a common length")
	cmd.Flags().IntVar(&maxLen, "max-len", 0, "Target length when --pad is set (0 = longest sequence)")
	cmd.Flags().StringVar(&padding, "padding", vocab.PadPre, "Padding side (pre|post)")
	cmd.Flags().StringVar(&truncating, "truncating", vocab.PadPre, "Truncation side (pre|post)")

	return cmd
}

// writeSequences writes each sequence as a JSON array on its own line.
func writeSequences(w io.Writer, seqs [][]int) error {
	bw := bufio.NewWriter(w)

	enc := json.NewEncoder(bw)
	for _, seq := range seqs {
		if err := enc.Encode(seq); err != nil {
			return fmt.Errorf("encode sequence: %w", err)
		}
	}

	return bw.Flush()
}
