// Package embedding loads pre-trained word vectors from plain-text files
// (one word per line followed by its vector components) and assembles
// weight matrices aligned with a fitted vocabulary.
package embedding

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
	"gonum.org/v1/gonum/mat"
)

// Out-of-vocabulary vector strategies.
const (
	// OOVInitRand draws a fresh uniform [-0.5, 0.5) vector per lookup.
	OOVInitRand = "rand"
	// OOVInitZero returns the zero vector.
	OOVInitZero = "zero"
)

// Supported embedding dimensionality bounds.
const (
	MinDimensions = 50
	MaxDimensions = 300
)

// ErrNotLoaded is returned by lookups before a successful Load.
var ErrNotLoaded = errors.New("embedding: no vectors loaded")

const maxLineBytes = 1 << 20

// Store holds word vectors of a fixed dimensionality. Load replaces the
// contents wholesale; lookups never mutate the store, but the random
// out-of-vocabulary strategy draws from the store's generator, so a Store
// is not safe for concurrent use.
type Store struct {
	dims      int
	oovInit   string
	rng       *rand.Rand
	rows      *mat.Dense
	wordToRow map[string]int
	rowToWord []string
}

// StoreOption configures a Store at construction time.
type StoreOption func(*Store)

// WithSeed makes the out-of-vocabulary vectors deterministic for a given
// seed.
func WithSeed(seed uint64) StoreOption {
	return func(s *Store) {
		s.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithRand supplies a caller-owned generator for out-of-vocabulary
// vectors.
func WithRand(r *rand.Rand) StoreOption {
	return func(s *Store) {
		s.rng = r
	}
}

// NewStore returns an empty Store for vectors of the given
// dimensionality. oovInit selects the strategy for unknown-word lookups:
// "rand" (the default when empty) or "zero". Each store owns its random
// generator; nothing draws from the process-global source.
func NewStore(dimensions int, oovInit string, opts ...StoreOption) (*Store, error) {
	if dimensions < MinDimensions || dimensions > MaxDimensions {
		return nil, fmt.Errorf(
			"embedding: dimensions must be between %d and %d, got %d",
			MinDimensions,
			MaxDimensions,
			dimensions,
		)
	}

	init, err := normalizeOOVInit(oovInit)
	if err != nil {
		return nil, err
	}

	s := &Store{
		dims:    dimensions,
		oovInit: init,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return s, nil
}

func normalizeOOVInit(raw string) (string, error) {
	init := strings.ToLower(strings.TrimSpace(raw))
	if init == "" {
		return OOVInitRand, nil
	}

	switch init {
	case OOVInitRand, OOVInitZero:
		return init, nil
	default:
		return "", fmt.Errorf(
			"embedding: invalid oov init %q (expected %s|%s)",
			raw,
			OOVInitRand,
			OOVInitZero,
		)
	}
}

// LoadOptions configures Load.
type LoadOptions struct {
	// Encoding is the IANA name of the file's character encoding.
	// Empty or "utf-8" reads the file as-is.
	Encoding string
}

// Load reads an embedding file into the store. The file is scanned twice:
// once to count vectors so storage is allocated exactly, then to parse
// them. Each line must hold a word followed by exactly Dimensions numeric
// components. On failure the store keeps its previous contents.
func (s *Store) Load(path string, opts LoadOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("embedding: open %s: %w", path, err)
	}
	defer f.Close()

	reader, err := decodeReader(f, opts.Encoding)
	if err != nil {
		return err
	}

	count, err := countLines(reader)
	if err != nil {
		return fmt.Errorf("embedding: count vectors in %s: %w", path, err)
	}

	if count == 0 {
		return fmt.Errorf("embedding: %s contains no vectors", path)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("embedding: rewind %s: %w", path, err)
	}

	reader, err = decodeReader(f, opts.Encoding)
	if err != nil {
		return err
	}

	data := make([]float64, count*s.dims)
	wordToRow := make(map[string]int, count)
	rowToWord := make([]string, 0, count)

	sc := bufio.NewScanner(reader)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	row := 0
	for sc.Scan() {
		if row >= count {
			return fmt.Errorf("embedding: %s grew while loading", path)
		}

		line := sc.Text()

		fields := strings.Fields(line)
		if len(fields) != s.dims+1 {
			return fmt.Errorf(
				"embedding: %s line %d: expected %d fields, got %d",
				path,
				row+1,
				s.dims+1,
				len(fields),
			)
		}

		word := fields[0]

		offset := row * s.dims
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return fmt.Errorf("embedding: %s line %d: invalid component %q: %w", path, row+1, field, err)
			}

			data[offset+i] = v
		}

		wordToRow[word] = row
		rowToWord = append(rowToWord, word)
		row++
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("embedding: read %s: %w", path, err)
	}

	if row != count {
		return fmt.Errorf("embedding: %s shrank while loading", path)
	}

	s.rows = mat.NewDense(count, s.dims, data)
	s.wordToRow = wordToRow
	s.rowToWord = rowToWord

	return nil
}

// Vector returns the vector for word. Unknown words yield a fresh uniform
// [-0.5, 0.5) vector when the store was built with "rand" and includeOOV
// is set, and the zero vector otherwise. The result is always a copy.
func (s *Store) Vector(word string, includeOOV bool) ([]float64, error) {
	if s.rows == nil {
		return nil, ErrNotLoaded
	}

	out := make([]float64, s.dims)

	if row, ok := s.wordToRow[word]; ok {
		mat.Row(out, row, s.rows)
		return out, nil
	}

	if includeOOV && s.oovInit == OOVInitRand {
		for i := range out {
			out[i] = s.rng.Float64() - 0.5
		}
	}

	return out, nil
}

// Has reports whether word has a loaded vector.
func (s *Store) Has(word string) bool {
	_, ok := s.wordToRow[word]
	return ok
}

// Len returns the number of distinct words loaded.
func (s *Store) Len() int { return len(s.wordToRow) }

// Dimensions returns the vector dimensionality.
func (s *Store) Dimensions() int { return s.dims }

// OOVInit returns the configured out-of-vocabulary strategy.
func (s *Store) OOVInit() string { return s.oovInit }

// Words returns the loaded words in file order.
func (s *Store) Words() []string {
	return append([]string(nil), s.rowToWord...)
}

func countLines(r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	n := 0
	for sc.Scan() {
		n++
	}

	return n, sc.Err()
}

func decodeReader(r io.Reader, name string) (io.Reader, error) {
	enc := strings.ToLower(strings.TrimSpace(name))
	if enc == "" || enc == "utf-8" || enc == "utf8" {
		return r, nil
	}

	e, err := ianaindex.IANA.Encoding(enc)
	if err != nil {
		return nil, fmt.Errorf("embedding: unknown encoding %q: %w", name, err)
	}

	if e == nil {
		return nil, fmt.Errorf("embedding: unsupported encoding %q", name)
	}

	return transform.NewReader(r, e.NewDecoder()), nil
}
