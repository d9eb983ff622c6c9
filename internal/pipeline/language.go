package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Supported language names. The set is fixed: each entry maps to the
// lowercasing rules of its language tag.
const (
	LanguageEnglish = "english"
	LanguageGerman  = "german"
)

// ErrUnsupportedLanguage is returned when a pipeline is requested for a
// language outside the supported set.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// NormalizeLanguage lowercases and trims a raw language name and validates
// it against the supported set. An empty name defaults to english.
func NormalizeLanguage(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		name = LanguageEnglish
	}

	switch name {
	case LanguageEnglish, LanguageGerman:
		return name, nil
	default:
		return "", fmt.Errorf(
			"pipeline: %w %q (expected %s|%s)",
			ErrUnsupportedLanguage,
			raw,
			LanguageEnglish,
			LanguageGerman,
		)
	}
}

func resolveLanguage(raw string) (string, language.Tag, error) {
	name, err := NormalizeLanguage(raw)
	if err != nil {
		return "", language.Und, err
	}

	switch name {
	case LanguageGerman:
		return name, language.German, nil
	default:
		return name, language.English, nil
	}
}
