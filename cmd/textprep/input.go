package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/example/go-textprep/internal/pipeline"
)

// Corpus lines can be long; the bufio.Scanner default of 64 KiB is too
// small for concatenated documents.
const maxInputLineBytes = 1 << 20

// readInputTexts returns one text per non-blank line from the named files,
// or from stdin when no files are given.
func readInputTexts(paths []string, stdin io.Reader) ([]string, error) {
	if len(paths) == 0 {
		return readLines(stdin, "stdin")
	}

	var texts []string

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}

		lines, err := readLines(f, path)

		closeErr := f.Close()
		if err != nil {
			return nil, err
		}
		if closeErr != nil {
			return nil, fmt.Errorf("close %s: %w", path, closeErr)
		}

		texts = append(texts, lines...)
	}

	return texts, nil
}

func readLines(r io.Reader, name string) ([]string, error) {
	var lines []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxInputLineBytes)

	for sc.Scan() {
		line, err := pipeline.Normalize(sc.Text())
		if errors.Is(err, pipeline.ErrEmptyText) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		lines = append(lines, line)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return lines, nil
}
