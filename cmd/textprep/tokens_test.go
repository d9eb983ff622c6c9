package main

import (
	"bytes"
	"testing"

	"github.com/example/go-textprep/internal/pipeline"
)

func TestWriteTokens(t *testing.T) {
	p, err := pipeline.New("english", pipeline.Options{})
	if err != nil {
		t.Fatalf("New returned unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := writeTokens(&buf, p, []string{"Hi [user]!", "ok"}); err != nil {
		t.Fatalf("writeTokens returned unexpected error: %v", err)
	}

	want := "Hi\t-\t-\n" +
		"[user]\t[user]\tNOUN\tspecial\n" +
		"!\t-\t-\n" +
		"\n" +
		"ok\t-\t-\n"
	if buf.String() != want {
		t.Errorf("writeTokens output = %q; want %q", buf.String(), want)
	}
}
