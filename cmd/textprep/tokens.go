package main

import (
	"fmt"
	"io"
	"os"

	"github.com/example/go-textprep/internal/pipeline"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [text files]",
		Short: "Show pipeline tokenization, one token per line",
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

			return writeTokens(os.Stdout, p, texts)
		},
	}

	return cmd
}

// writeTokens prints text, lemma and POS tab-separated per token, with a
// trailing "special" marker for never-split tokens and a blank line
// between input texts. Empty lemma/POS render as "-".
func writeTokens(w io.Writer, p *pipeline.Pipeline, texts []string) error {
	for i, text := range texts {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		for _, tok := range p.Tokenize(text) {
			mark := ""
			if tok.Special {
				mark = "\tspecial"
			}

			if _, err := fmt.Fprintf(w, "%s\t%s\t%s%s\n",
				tok.Text, orDash(tok.Lemma), orDash(tok.POS), mark); err != nil {
				return err
			}
		}
	}

	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
