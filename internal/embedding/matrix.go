package embedding

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Vocabulary is the view of a fitted vocabulary the matrix builder needs.
// *vocab.Builder satisfies it.
type Vocabulary interface {
	Size() int
	WordIndexes() map[string]int
}

// WeightMatrix builds a (v.Size()+1) × s.Dimensions() matrix whose row i
// holds the vector for the word at vocabulary index i. Row 0 stays zero
// for padding. With the "rand" strategy the remaining rows start as
// uniform [-0.5, 0.5) draws from the store's generator, so words missing
// from the store keep random vectors; with "zero" they stay zero. Rows
// are filled in index order, which keeps seeded stores deterministic.
// The words that had no loaded vector are returned in index order.
func WeightMatrix(v Vocabulary, s *Store) (*mat.Dense, []string, error) {
	if v == nil {
		return nil, nil, errors.New("embedding: nil vocabulary")
	}

	if s == nil {
		return nil, nil, errors.New("embedding: nil store")
	}

	if s.rows == nil {
		return nil, nil, ErrNotLoaded
	}

	size := v.Size()

	byIndex := make(map[int]string, size)

	for word, idx := range v.WordIndexes() {
		if idx < 1 || idx > size {
			return nil, nil, fmt.Errorf("embedding: vocabulary index %d for %q outside 1..%d", idx, word, size)
		}

		if prev, dup := byIndex[idx]; dup {
			return nil, nil, fmt.Errorf("embedding: words %q and %q share vocabulary index %d", prev, word, idx)
		}

		byIndex[idx] = word
	}

	if len(byIndex) != size {
		return nil, nil, fmt.Errorf("embedding: vocabulary reports %d words but supplied %d indices", size, len(byIndex))
	}

	m := mat.NewDense(size+1, s.dims, nil)

	if s.oovInit == OOVInitRand {
		data := m.RawMatrix().Data
		for i := s.dims; i < len(data); i++ {
			data[i] = s.rng.Float64() - 0.5
		}
	}

	var missing []string

	for idx := 1; idx <= size; idx++ {
		word := byIndex[idx]

		vec, err := s.Vector(word, true)
		if err != nil {
			return nil, nil, err
		}

		m.SetRow(idx, vec)

		if !s.Has(word) {
			missing = append(missing, word)
		}
	}

	return m, missing, nil
}
