package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [sequence files]",
		Short: "Decode JSON-line index sequences back to texts",
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			b, err := loadVocab(cfg)
			if err != nil {
				return err
			}

			lines, err := readInputTexts(args, os.Stdin)
			if err != nil {
				return err
			}

			seqs := make([][]int, len(lines))
			for i, line := range lines {
				if err := json.Unmarshal([]byte(line), &seqs[i]); err != nil {
					return fmt.Errorf("parse sequence on line %d: %w", i+1, err)
				}
			}

			out := bufio.NewWriter(os.Stdout)
			for _, text := range b.SequencesToTexts(seqs) {
				if _, err := fmt.Fprintln(out, text); err != nil {
					return err
				}
			}

			return out.Flush()
		},
	}

	return cmd
}
