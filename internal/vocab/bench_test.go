package vocab

import (
	"fmt"
	"testing"

	"github.com/example/go-textprep/internal/pipeline"
)

func benchCorpus(n int) []string {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = fmt.Sprintf("the quick brown fox %d jumps over the lazy dog [user]", i)
	}
	return texts
}

func BenchmarkFit(b *testing.B) {
	p, err := pipeline.New("english", pipeline.Options{})
	if err != nil {
		b.Fatalf("pipeline: %v", err)
	}
	texts := benchCorpus(1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		builder := NewBuilder(p, WithOOVToken("[oov]"))
		builder.Fit(texts)
	}
}

func BenchmarkTextsToSequences(b *testing.B) {
	p, err := pipeline.New("english", pipeline.Options{})
	if err != nil {
		b.Fatalf("pipeline: %v", err)
	}
	texts := benchCorpus(1000)
	builder := NewBuilder(p, WithOOVToken("[oov]"))
	builder.Fit(texts)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		builder.TextsToSequences(texts)
	}
}
