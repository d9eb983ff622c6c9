package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/example/go-textprep/internal/vocab"
	"github.com/spf13/cobra"
)

func newVocabCmd() *cobra.Command {
	var out string
	var top int

	cmd := &cobra.Command{
		Use:   "vocab [corpus files]",
		Short: "Fit a vocabulary from corpus files (one text per line)",
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			p, err := newPipeline(cfg)
			if err != nil {
				return err
			}

			texts, err := readInputTexts(args, os.Stdin)
			if err != nil {
				return err
			}
			if len(texts) == 0 {
				return fmt.Errorf("no input texts (pass corpus files or pipe one text per line)")
			}

			var opts []vocab.BuilderOption
			if cfg.Pipeline.OOVToken != "" {
				opts = append(opts, vocab.WithOOVToken(cfg.Pipeline.OOVToken))
			}

			b := vocab.NewBuilder(p, opts...)
			b.Fit(texts)

			outPath := out
			if outPath == "" {
				outPath = cfg.Paths.VocabPath
			}

			f := b.Snapshot()
			f.Language = p.Language()
			f.WhitespaceTokenizer = p.Whitespace()

			if err := vocab.Save(outPath, f); err != nil {
				return err
			}

			slog.Info("vocabulary saved",
				"path", outPath,
				"texts", len(texts),
				"words", b.Size(),
				"tokens", b.Total())

			if top > 0 {
				printTopWords(os.Stdout, b, top)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output vocabulary JSON path (default: configured vocab path)")
	cmd.Flags().IntVar(&top, "top", 0, "Print the N most frequent words")

	return cmd
}

// printTopWords prints the n most frequent words, count first.
func printTopWords(w io.Writer, b *vocab.Builder, n int) {
	freqs := b.Frequencies()
	if n > len(freqs) {
		n = len(freqs)
	}

	for _, wc := range freqs[:n] {
		_, _ = fmt.Fprintf(w, "%6d  %s\n", wc.Count, wc.Word)
	}
}
