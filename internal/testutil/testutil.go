// Package testutil provides shared fixture helpers for tests.
//
// The embedding helpers write files in the plain-text format Load expects
// (one word per line followed by its vector components), so tests can
// build fixtures and know the exact vectors they should read back:
//
//	path := testutil.WriteEmbeddingFile(t, t.TempDir(), "vectors.txt", []testutil.Vector{
//	    {Word: "cat", Values: testutil.RampVector(1, 50)},
//	})
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes contents to path, creating parent directories as
// needed, and fails the test on error.
func WriteFile(tb testing.TB, path, contents string) {
	tb.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("creating fixture dir: %v", err)
	}

	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		tb.Fatalf("writing fixture %s: %v", path, err)
	}
}

// Vector is one row of an embedding fixture.
type Vector struct {
	Word   string
	Values []float32
}

// EmbeddingFixture renders rows in the plain-text embedding format: each
// line holds a word followed by its space-separated vector components.
func EmbeddingFixture(rows []Vector) string {
	var sb strings.Builder

	for _, row := range rows {
		sb.WriteString(row.Word)

		for _, v := range row.Values {
			fmt.Fprintf(&sb, " %g", v)
		}

		sb.WriteByte('\n')
	}

	return sb.String()
}

// WriteEmbeddingFile writes rows as an embedding fixture under dir and
// returns the file path.
func WriteEmbeddingFile(tb testing.TB, dir, name string, rows []Vector) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	WriteFile(tb, path, EmbeddingFixture(rows))

	return path
}

// RampVector returns a deterministic dims-length vector starting at base
// and increasing by 0.5 per component. The values survive the text
// round trip exactly.
func RampVector(base float32, dims int) []float32 {
	out := make([]float32, dims)
	for i := range out {
		out[i] = base + float32(i)*0.5
	}

	return out
}
