package main

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/example/go-textprep/internal/config"
	"github.com/example/go-textprep/internal/pipeline"
	"github.com/example/go-textprep/internal/vocab"
)

func TestWriteSequences(t *testing.T) {
	var buf bytes.Buffer

	seqs := [][]int{{1, 2, 3}, {}, {4}}
	if err := writeSequences(&buf, seqs); err != nil {
		t.Fatalf("writeSequences returned unexpected error: %v", err)
	}

	want := "[1,2,3]\n[]\n[4]\n"
	if buf.String() != want {
		t.Errorf("writeSequences output = %q; want %q", buf.String(), want)
	}
}

func TestLoadVocab_EncodeDecodeRoundTrip(t *testing.T) {
	p, err := pipeline.New("english", pipeline.Options{})
	if err != nil {
		t.Fatalf("New returned unexpected error: %v", err)
	}

	b := vocab.NewBuilder(p)
	b.Fit([]string{"The cat sat", "the dog ran"})

	f := b.Snapshot()
	f.Language = p.Language()

	path := filepath.Join(t.TempDir(), "vocab.json")
	if err := vocab.Save(path, f); err != nil {
		t.Fatalf("Save returned unexpected error: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Paths.VocabPath = path

	restored, err := loadVocab(cfg)
	if err != nil {
		t.Fatalf("loadVocab returned unexpected error: %v", err)
	}

	seqs := restored.TextsToSequences([]string{"the cat sat", "the dog ran"})

	want := [][]int{{1, 2, 3}, {1, 4, 5}}
	if !reflect.DeepEqual(seqs, want) {
		t.Errorf("TextsToSequences = %v; want %v", seqs, want)
	}

	texts := restored.SequencesToTexts(seqs)

	wantTexts := []string{"the cat sat", "the dog ran"}
	if !reflect.DeepEqual(texts, wantTexts) {
		t.Errorf("SequencesToTexts = %v; want %v", texts, wantTexts)
	}
}

func TestLoadVocab_FileMetadataWinsOverConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.json")

	// The file records a whitespace-fitted vocabulary; loadVocab must
	// segment by whitespace even though the config asks for the default
	// pipeline ("stop!" would otherwise split before the bang).
	err := vocab.Save(path, vocab.File{
		Language:            "english",
		WhitespaceTokenizer: true,
		Words:               map[string]int{"stop!": 1},
	})
	if err != nil {
		t.Fatalf("Save returned unexpected error: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Paths.VocabPath = path

	b, err := loadVocab(cfg)
	if err != nil {
		t.Fatalf("loadVocab returned unexpected error: %v", err)
	}

	got := b.TextsToSequences([]string{"stop! now"})

	want := [][]int{{1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TextsToSequences = %v; want %v", got, want)
	}
}

func TestLoadVocab_MissingFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Paths.VocabPath = filepath.Join(t.TempDir(), "vocab.json")

	if _, err := loadVocab(cfg); err == nil {
		t.Fatal("expected error for missing vocabulary file")
	}
}
