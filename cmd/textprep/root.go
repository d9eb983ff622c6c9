package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/example/go-textprep/internal/config"
	"github.com/example/go-textprep/internal/pipeline"
	"github.com/example/go-textprep/internal/vocab"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "textprep",
		Short: "Vocabulary, sequence and embedding-matrix tooling",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newVocabCmd())
	cmd.AddCommand(newEncodeCmd())
	cmd.AddCommand(newDecodeCmd())
	cmd.AddCommand(newTokensCmd())
	cmd.AddCommand(newMatrixCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := config.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if activeCfg.Pipeline.Language == "" {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}

// newPipeline builds the tokenizer pipeline the active config describes.
func newPipeline(cfg config.Config) (*pipeline.Pipeline, error) {
	return pipeline.New(cfg.Pipeline.Language, pipeline.Options{
		WhitespaceTokenizer: cfg.Pipeline.WhitespaceTokenizer,
	})
}

// loadVocab restores the saved vocabulary at cfg.Paths.VocabPath together
// with a pipeline matching the one it was fitted with. Pipeline settings
// recorded in the file win over the active config so sequences stay stable
// after config drift; files from before the metadata fields fall back to
// the configured language.
func loadVocab(cfg config.Config) (*vocab.Builder, error) {
	f, err := vocab.LoadFile(cfg.Paths.VocabPath)
	if err != nil {
		return nil, err
	}

	lang := f.Language
	if lang == "" {
		lang = cfg.Pipeline.Language
	}

	p, err := pipeline.New(lang, pipeline.Options{WhitespaceTokenizer: f.WhitespaceTokenizer})
	if err != nil {
		return nil, err
	}

	return vocab.Restore(p, f)
}
