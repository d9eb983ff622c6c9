package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/example/go-textprep/internal/embedding"
	"github.com/example/go-textprep/internal/safetensors"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

func newMatrixCmd() *cobra.Command {
	var out string
	var missingOut string

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Build an embedding weight matrix and write it as safetensors",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if cfg.Paths.EmbeddingPath == "" {
				return fmt.Errorf("no embedding file configured (set --paths-embedding-path)")
			}

			b, err := loadVocab(cfg)
			if err != nil {
				return err
			}

			var storeOpts []embedding.StoreOption
			if cfg.Embedding.Seed >= 0 {
				storeOpts = append(storeOpts, embedding.WithSeed(uint64(cfg.Embedding.Seed)))
			}

			s, err := embedding.NewStore(cfg.Embedding.Dimensions, cfg.Embedding.OOVInit, storeOpts...)
			if err != nil {
				return err
			}

			if err := s.Load(cfg.Paths.EmbeddingPath, embedding.LoadOptions{
				Encoding: cfg.Embedding.Encoding,
			}); err != nil {
				return err
			}

			m, missing, err := embedding.WeightMatrix(b, s)
			if err != nil {
				return err
			}

			outPath := out
			if outPath == "" {
				outPath = cfg.Paths.MatrixPath
			}

			if err := writeMatrixFile(outPath, m); err != nil {
				return err
			}

			rows, cols := m.Dims()
			slog.Info("matrix saved",
				"path", outPath,
				"rows", rows,
				"dimensions", cols,
				"missing", len(missing))

			if missingOut != "" {
				if err := writeMissingFile(missingOut, missing); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output safetensors path (default: configured matrix path)")
	cmd.Flags().StringVar(&missingOut, "missing-out", "", "Write words without embeddings to this file, one per line")

	return cmd
}

// writeMatrixFile stores m as a single F32 tensor named embedding.weight.
func writeMatrixFile(path string, m *mat.Dense) error {
	rows, cols := m.Dims()

	raw := m.RawMatrix().Data
	data := make([]float32, len(raw))
	for i, v := range raw {
		data[i] = float32(v)
	}

	return safetensors.WriteFile(path, []safetensors.Tensor{{
		Name:  "embedding.weight",
		Shape: []int64{int64(rows), int64(cols)},
		Data:  data,
	}})
}

func writeMissingFile(path string, missing []string) error {
	var sb strings.Builder
	for _, w := range missing {
		sb.WriteString(w)
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
