// Package config loads textprep settings from defaults, an optional
// config file, environment variables and command-line flags, in rising
// order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths     PathsConfig     `mapstructure:"paths"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	LogLevel  string          `mapstructure:"log_level"`
}

type PathsConfig struct {
	VocabPath     string `mapstructure:"vocab_path"`
	EmbeddingPath string `mapstructure:"embedding_path"`
	MatrixPath    string `mapstructure:"matrix_path"`
}

type PipelineConfig struct {
	Language            string `mapstructure:"language"`
	WhitespaceTokenizer bool   `mapstructure:"whitespace_tokenizer"`
	OOVToken            string `mapstructure:"oov_token"`
}

type EmbeddingConfig struct {
	Dimensions int    `mapstructure:"dimensions"`
	OOVInit    string `mapstructure:"oov_init"`
	// Seed seeds out-of-vocabulary vector draws. Negative means unseeded.
	Seed     int64  `mapstructure:"seed"`
	Encoding string `mapstructure:"encoding"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			VocabPath:     "vocab.json",
			EmbeddingPath: "",
			MatrixPath:    "matrix.safetensors",
		},
		Pipeline: PipelineConfig{
			Language:            "english",
			WhitespaceTokenizer: false,
			OOVToken:            "",
		},
		Embedding: EmbeddingConfig{
			Dimensions: 300,
			OOVInit:    "rand",
			Seed:       -1,
			Encoding:   "",
		},
		LogLevel: "info",
	}
}

// flagKeys maps each registered flag to its configuration key.
var flagKeys = map[string]string{
	"paths-vocab-path":              "paths.vocab_path",
	"paths-embedding-path":          "paths.embedding_path",
	"paths-matrix-path":             "paths.matrix_path",
	"pipeline-language":             "pipeline.language",
	"pipeline-whitespace-tokenizer": "pipeline.whitespace_tokenizer",
	"pipeline-oov-token":            "pipeline.oov_token",
	"embedding-dimensions":          "embedding.dimensions",
	"embedding-oov-init":            "embedding.oov_init",
	"embedding-seed":                "embedding.seed",
	"embedding-encoding":            "embedding.encoding",
	"log-level":                     "log_level",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-vocab-path", defaults.Paths.VocabPath, "Path to the vocabulary JSON file")
	fs.String("paths-embedding-path", defaults.Paths.EmbeddingPath, "Path to the embedding text file")
	fs.String("paths-matrix-path", defaults.Paths.MatrixPath, "Path to the weight matrix .safetensors file")
	fs.String("pipeline-language", defaults.Pipeline.Language, "Tokenizer language (english|german)")
	fs.Bool("pipeline-whitespace-tokenizer", defaults.Pipeline.WhitespaceTokenizer, "Split on whitespace only, without punctuation handling")
	fs.String("pipeline-oov-token", defaults.Pipeline.OOVToken, "Out-of-vocabulary token (empty disables OOV mapping)")
	fs.Int("embedding-dimensions", defaults.Embedding.Dimensions, "Embedding vector dimensionality")
	fs.String("embedding-oov-init", defaults.Embedding.OOVInit, "Vector strategy for unknown words (rand|zero)")
	fs.Int64("embedding-seed", defaults.Embedding.Seed, "Seed for out-of-vocabulary vector draws (negative for unseeded)")
	fs.String("embedding-encoding", defaults.Embedding.Encoding, "IANA character encoding of the embedding file (empty for UTF-8)")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)

	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("TEXTPREP")
	replacer := strings.NewReplacer("-", "_", ".", "_")
	v.SetEnvKeyReplacer(replacer)

	if err := v.BindEnv("paths.embedding_path", "TEXTPREP_EMBEDDINGS", "EMBEDDINGS_PATH"); err != nil {
		return Config{}, fmt.Errorf("bind embedding env vars: %w", err)
	}

	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)

		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("textprep")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// bindFlags binds each registered flag to its dotted configuration key,
// so explicitly set flags outrank config file values while unset flag
// defaults do not mask them.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}

		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}

	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.vocab_path", c.Paths.VocabPath)
	v.SetDefault("paths.embedding_path", c.Paths.EmbeddingPath)
	v.SetDefault("paths.matrix_path", c.Paths.MatrixPath)
	v.SetDefault("pipeline.language", c.Pipeline.Language)
	v.SetDefault("pipeline.whitespace_tokenizer", c.Pipeline.WhitespaceTokenizer)
	v.SetDefault("pipeline.oov_token", c.Pipeline.OOVToken)
	v.SetDefault("embedding.dimensions", c.Embedding.Dimensions)
	v.SetDefault("embedding.oov_init", c.Embedding.OOVInit)
	v.SetDefault("embedding.seed", c.Embedding.Seed)
	v.SetDefault("embedding.encoding", c.Embedding.Encoding)
	v.SetDefault("log_level", c.LogLevel)
}
