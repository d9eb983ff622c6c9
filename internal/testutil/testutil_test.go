package testutil_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/example/go-textprep/internal/testutil"
)

func TestWriteFile_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "file.txt")

	testutil.WriteFile(t, path, "hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned unexpected error: %v", err)
	}

	if string(data) != "hello" {
		t.Errorf("file contents = %q; want %q", string(data), "hello")
	}
}

func TestEmbeddingFixture(t *testing.T) {
	got := testutil.EmbeddingFixture([]testutil.Vector{
		{Word: "cat", Values: []float32{0.5, 1}},
		{Word: "dog", Values: []float32{-1.5, 2}},
	})

	want := "cat 0.5 1\ndog -1.5 2\n"
	if got != want {
		t.Errorf("EmbeddingFixture = %q; want %q", got, want)
	}
}

func TestWriteEmbeddingFile(t *testing.T) {
	dir := t.TempDir()

	path := testutil.WriteEmbeddingFile(t, dir, "vectors.txt", []testutil.Vector{
		{Word: "cat", Values: []float32{0.5}},
	})

	if filepath.Dir(path) != dir {
		t.Errorf("path %q not under %q", path, dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned unexpected error: %v", err)
	}

	if string(data) != "cat 0.5\n" {
		t.Errorf("file contents = %q; want %q", string(data), "cat 0.5\n")
	}
}

func TestRampVector(t *testing.T) {
	got := testutil.RampVector(2, 4)

	want := []float32{2, 2.5, 3, 3.5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RampVector = %v; want %v", got, want)
	}
}
