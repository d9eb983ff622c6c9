// Package doctor provides data-file preflight checks for textprep.
package doctor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/example/go-textprep/internal/embedding"
	"github.com/example/go-textprep/internal/pipeline"
	"github.com/example/go-textprep/internal/safetensors"
	"github.com/example/go-textprep/internal/vocab"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// Config holds the settings and file paths to verify. Empty paths skip
// their checks.
type Config struct {
	// Language is the pipeline language to validate.
	Language string
	// OOVInit is the out-of-vocabulary strategy to validate.
	OOVInit string
	// Dimensions is the embedding dimensionality to validate. 0 skips the
	// settings check.
	Dimensions int
	// VocabPath is a vocabulary JSON file to load and validate.
	VocabPath string
	// EmbeddingPath is an embedding text file to inspect.
	EmbeddingPath string
	// MatrixPath is a safetensors weight matrix file to decode.
	MatrixPath string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- language ---------------------------------------------------------
	if name, err := pipeline.NormalizeLanguage(cfg.Language); err != nil {
		res.fail(fmt.Sprintf("language: %v", err))
		fmt.Fprintf(w, "%s language %q: unsupported\n", FailMark, cfg.Language)
	} else {
		fmt.Fprintf(w, "%s language: %s\n", PassMark, name)
	}

	// ---- embedding settings -------------------------------------------------
	if cfg.Dimensions == 0 {
		fmt.Fprintf(w, "%s embedding settings: skipped\n", PassMark)
	} else if s, err := embedding.NewStore(cfg.Dimensions, cfg.OOVInit); err != nil {
		res.fail(fmt.Sprintf("embedding settings: %v", err))
		fmt.Fprintf(w, "%s embedding settings: %v\n", FailMark, err)
	} else {
		fmt.Fprintf(w, "%s embedding settings: %d dimensions, %s oov init\n", PassMark, cfg.Dimensions, s.OOVInit())
	}

	// ---- vocabulary file ----------------------------------------------------
	if cfg.VocabPath == "" {
		fmt.Fprintf(w, "%s vocabulary file: skipped\n", PassMark)
	} else if size, err := checkVocabFile(cfg.VocabPath); err != nil {
		res.fail(fmt.Sprintf("vocabulary file %q: %v", cfg.VocabPath, err))
		fmt.Fprintf(w, "%s vocabulary file %s: %v\n", FailMark, cfg.VocabPath, err)
	} else {
		fmt.Fprintf(w, "%s vocabulary file: %s (%d words)\n", PassMark, cfg.VocabPath, size)
	}

	// ---- embedding file -------------------------------------------------------
	if cfg.EmbeddingPath == "" {
		fmt.Fprintf(w, "%s embedding file: skipped\n", PassMark)
	} else if dims, err := sniffEmbedding(cfg.EmbeddingPath, cfg.Dimensions); err != nil {
		res.fail(fmt.Sprintf("embedding file %q: %v", cfg.EmbeddingPath, err))
		fmt.Fprintf(w, "%s embedding file %s: %v\n", FailMark, cfg.EmbeddingPath, err)
	} else {
		fmt.Fprintf(w, "%s embedding file: %s (%d dimensions)\n", PassMark, cfg.EmbeddingPath, dims)
	}

	// ---- weight matrix file -------------------------------------------------
	if cfg.MatrixPath == "" {
		fmt.Fprintf(w, "%s matrix file: skipped\n", PassMark)
	} else if shape, err := checkMatrixFile(cfg.MatrixPath); err != nil {
		res.fail(fmt.Sprintf("matrix file %q: %v", cfg.MatrixPath, err))
		fmt.Fprintf(w, "%s matrix file %s: %v\n", FailMark, cfg.MatrixPath, err)
	} else {
		fmt.Fprintf(w, "%s matrix file: %s %v\n", PassMark, cfg.MatrixPath, shape)
	}

	return res
}

// checkVocabFile loads a vocabulary file and rebuilds it against a pipeline
// configured from the file's own metadata, so stale or hand-edited files
// surface here instead of at encode time.
func checkVocabFile(path string) (int, error) {
	f, err := vocab.LoadFile(path)
	if err != nil {
		return 0, err
	}

	p, err := pipeline.New(f.Language, pipeline.Options{WhitespaceTokenizer: f.WhitespaceTokenizer})
	if err != nil {
		return 0, err
	}

	b, err := vocab.Restore(p, f)
	if err != nil {
		return 0, err
	}

	return b.Size(), nil
}

// sniffEmbedding inspects the first line of an embedding file and returns
// the vector dimensionality it implies. A wantDims of 0 accepts any width.
func sniffEmbedding(path string, wantDims int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, err
		}

		return 0, errors.New("file is empty")
	}

	fields := strings.Fields(sc.Text())
	if len(fields) < 2 {
		return 0, fmt.Errorf("first line has %d fields, expected a word and its vector", len(fields))
	}

	for _, field := range fields[1:] {
		if _, err := strconv.ParseFloat(field, 64); err != nil {
			return 0, fmt.Errorf("first line has non-numeric component %q", field)
		}
	}

	dims := len(fields) - 1
	if wantDims != 0 && dims != wantDims {
		return 0, fmt.Errorf("file has %d dimensions, configuration expects %d", dims, wantDims)
	}

	return dims, nil
}

func checkMatrixFile(path string) ([]int64, error) {
	tensors, err := safetensors.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if t, ok := safetensors.Find(tensors, "embedding.weight"); ok {
		return t.Shape, nil
	}

	return tensors[0].Shape, nil
}
