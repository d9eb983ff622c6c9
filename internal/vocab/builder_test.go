package vocab

import (
	"reflect"
	"testing"

	"github.com/example/go-textprep/internal/pipeline"
)

func newTestTokenizer(t *testing.T) Tokenizer {
	t.Helper()

	p, err := pipeline.New(pipeline.LanguageEnglish, pipeline.Options{WhitespaceTokenizer: true})
	if err != nil {
		t.Fatalf("building pipeline: %v", err)
	}

	return p
}

func TestFitAssignsDenseIndices(t *testing.T) {
	b := NewBuilder(newTestTokenizer(t))
	b.Fit([]string{"The cat sat", "the dog ran"})

	want := map[string]int{"the": 1, "cat": 2, "sat": 3, "dog": 4, "ran": 5}
	if got := b.WordIndexes(); !reflect.DeepEqual(got, want) {
		t.Errorf("WordIndexes() = %v, want %v", got, want)
	}

	if got := b.Size(); got != 5 {
		t.Errorf("Size() = %d, want 5", got)
	}

	if got := b.Total(); got != 6 {
		t.Errorf("Total() = %d, want 6", got)
	}

	for idx, word := range map[int]string{1: "the", 2: "cat", 3: "sat"} {
		got, ok := b.Word(idx)
		if !ok || got != word {
			t.Errorf("Word(%d) = %q, %t, want %q, true", idx, got, ok, word)
		}
	}
}

func TestFitWithOOVToken(t *testing.T) {
	b := NewBuilder(newTestTokenizer(t), WithOOVToken("[oov]"))

	if idx, ok := b.Index("[oov]"); !ok || idx != 1 {
		t.Fatalf("Index([oov]) = %d, %t, want 1, true", idx, ok)
	}

	b.Fit([]string{"the cat"})

	if idx, ok := b.Index("the"); !ok || idx != 2 {
		t.Errorf("Index(the) = %d, %t, want 2, true", idx, ok)
	}

	if got := b.Size(); got != 3 {
		t.Errorf("Size() = %d, want 3", got)
	}

	tok, ok := b.OOVToken()
	if !ok || tok != "[oov]" {
		t.Errorf("OOVToken() = %q, %t, want %q, true", tok, ok, "[oov]")
	}
}

func TestFitIsAdditive(t *testing.T) {
	b := NewBuilder(newTestTokenizer(t))
	b.Fit([]string{"the cat"})

	first := b.WordIndexes()

	b.Fit([]string{"the dog"})

	for w, idx := range first {
		got, ok := b.Index(w)
		if !ok || got != idx {
			t.Errorf("Index(%q) = %d, %t after second fit, want %d, true", w, got, ok, idx)
		}
	}

	if idx, ok := b.Index("dog"); !ok || idx != 3 {
		t.Errorf("Index(dog) = %d, %t, want 3, true", idx, ok)
	}

	if got := b.Total(); got != 4 {
		t.Errorf("Total() = %d, want 4", got)
	}
}

func TestFitLowercasesBeforeIndexing(t *testing.T) {
	b := NewBuilder(newTestTokenizer(t))
	b.Fit([]string{"The THE the"})

	if got := b.Size(); got != 1 {
		t.Fatalf("Size() = %d, want 1", got)
	}

	if got := b.WordCounts()["the"]; got != 3 {
		t.Errorf("WordCounts()[the] = %d, want 3", got)
	}
}

func TestFrequencies(t *testing.T) {
	b := NewBuilder(newTestTokenizer(t))
	b.Fit([]string{"the cat sat", "the dog ran", "dog dog"})

	want := []WordCount{
		{Word: "dog", Count: 3},
		{Word: "the", Count: 2},
		{Word: "cat", Count: 1},
		{Word: "sat", Count: 1},
		{Word: "ran", Count: 1},
	}
	if got := b.Frequencies(); !reflect.DeepEqual(got, want) {
		t.Errorf("Frequencies() = %v, want %v", got, want)
	}

	sum := 0
	for _, wc := range b.Frequencies() {
		sum += wc.Count
	}

	if got := b.Total(); sum != got {
		t.Errorf("sum of counts = %d, want Total() = %d", sum, got)
	}
}

func TestFrequenciesTiesKeepFirstSeenOrder(t *testing.T) {
	b := NewBuilder(newTestTokenizer(t))
	b.Fit([]string{"zebra apple mango"})

	want := []WordCount{
		{Word: "zebra", Count: 1},
		{Word: "apple", Count: 1},
		{Word: "mango", Count: 1},
	}
	if got := b.Frequencies(); !reflect.DeepEqual(got, want) {
		t.Errorf("Frequencies() = %v, want %v", got, want)
	}
}

func TestWordCountsExcludesUnseenOOV(t *testing.T) {
	b := NewBuilder(newTestTokenizer(t), WithOOVToken("[oov]"))
	b.Fit([]string{"the cat"})

	if _, ok := b.WordCounts()["[oov]"]; ok {
		t.Error("WordCounts() contains the OOV token although it never occurred")
	}
}

func TestAccessorCopiesDoNotAlias(t *testing.T) {
	b := NewBuilder(newTestTokenizer(t))
	b.Fit([]string{"the cat"})

	indexes := b.WordIndexes()
	indexes["the"] = 99

	if idx, _ := b.Index("the"); idx != 1 {
		t.Errorf("Index(the) = %d after mutating WordIndexes copy, want 1", idx)
	}

	counts := b.WordCounts()
	counts["cat"] = 99

	if got := b.WordCounts()["cat"]; got != 1 {
		t.Errorf("WordCounts()[cat] = %d after mutating copy, want 1", got)
	}
}
