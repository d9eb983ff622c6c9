package main

import (
	"testing"

	"github.com/example/go-textprep/internal/config"
)

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"vocab", "encode", "decode", "tokens", "matrix", "doctor"}
	for _, name := range want {
		found := false

		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}

		if !found {
			t.Errorf("expected subcommand %q not found in root", name)
		}
	}
}

func TestNewRootCmd_HasPersistentConfigFlag(t *testing.T) {
	root := NewRootCmd()
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("expected --config persistent flag to be registered")
	}
}

func TestSetupLogger_DoesNotPanic(_ *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		setupLogger(level)
	}
}

func TestSetupLogger_InvalidLevelFallsBackToInfo(_ *testing.T) {
	// Should not panic on invalid level.
	setupLogger("not-a-level")
}

func TestRequireConfig_FailsWhenNotInitialized(t *testing.T) {
	orig := activeCfg

	t.Cleanup(func() { activeCfg = orig })

	// Zero-value config has empty Pipeline.Language → requireConfig errors.
	activeCfg = config.Config{}

	_, err := requireConfig()
	if err == nil {
		t.Fatal("expected error when config is not loaded")
	}
}

func TestRequireConfig_SucceedsWhenLoaded(t *testing.T) {
	orig := activeCfg

	t.Cleanup(func() { activeCfg = orig })

	activeCfg = config.DefaultConfig()

	got, err := requireConfig()
	if err != nil {
		t.Fatalf("requireConfig returned unexpected error: %v", err)
	}

	if got.Pipeline.Language != "english" {
		t.Errorf("unexpected Language: %q", got.Pipeline.Language)
	}
}

func TestNewPipeline_UsesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Pipeline.Language = "german"
	cfg.Pipeline.WhitespaceTokenizer = true

	p, err := newPipeline(cfg)
	if err != nil {
		t.Fatalf("newPipeline returned unexpected error: %v", err)
	}

	if p.Language() != "german" {
		t.Errorf("Language() = %q; want %q", p.Language(), "german")
	}
	if !p.Whitespace() {
		t.Error("Whitespace() = false; want true")
	}
}

func TestNewPipeline_RejectsUnknownLanguage(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Pipeline.Language = "klingon"

	if _, err := newPipeline(cfg); err == nil {
		t.Fatal("expected error for unsupported language")
	}
}
