package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/go-textprep/internal/doctor"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the configured data files",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			result := doctor.Run(doctor.Config{
				Language:      cfg.Pipeline.Language,
				OOVInit:       cfg.Embedding.OOVInit,
				Dimensions:    cfg.Embedding.Dimensions,
				VocabPath:     cfg.Paths.VocabPath,
				EmbeddingPath: cfg.Paths.EmbeddingPath,
				MatrixPath:    cfg.Paths.MatrixPath,
			}, os.Stdout)

			if result.Failed() {
				for _, f := range result.Failures() {
					_, _ = fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(os.Stdout, "doctor checks passed")

			return nil
		},
	}

	return cmd
}
