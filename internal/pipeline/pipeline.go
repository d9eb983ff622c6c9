// Package pipeline provides the tokenizer pipelines that feed vocabulary
// building and sequence encoding. A pipeline couples a word segmenter with
// per-language lowercasing and a set of special-case literals (placeholder
// tokens such as [user] and [link]) that must never be split.
package pipeline

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// POSNoun is the part-of-speech tag assigned to the built-in placeholder
// tokens.
const POSNoun = "NOUN"

// Placeholder literals registered on every pipeline. Upstream preprocessing
// substitutes user mentions and links with these before tokenization.
const (
	UserToken = "[user]"
	LinkToken = "[link]"
)

// Token is a single unit produced by Tokenize. Lemma and POS are only
// populated for special-case tokens; ordinary tokens carry surface text.
type Token struct {
	Text    string
	Lemma   string
	POS     string
	Special bool
}

// SpecialCase is a literal string the tokenizer treats as one indivisible
// token, bypassing normal splitting rules.
type SpecialCase struct {
	Orth  string // exact literal, must not contain whitespace
	Lemma string // defaults to Orth when empty
	POS   string
}

// Options configures pipeline construction.
type Options struct {
	// WhitespaceTokenizer replaces UAX #29 segmentation with a splitter
	// that only splits on whitespace (no punctuation handling).
	WhitespaceTokenizer bool
}

// Pipeline tokenizes text for a single language. It is not safe for
// concurrent use; concurrent callers should construct independent
// pipelines.
type Pipeline struct {
	lang       string
	lower      cases.Caser
	seg        Segmenter
	whitespace bool
	specials   []SpecialCase
}

// New constructs a pipeline for one of the supported languages. Any other
// language name fails with ErrUnsupportedLanguage. The [user] and [link]
// placeholders are registered as noun special cases on every pipeline.
func New(lang string, opts Options) (*Pipeline, error) {
	name, tag, err := resolveLanguage(lang)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		lang:       name,
		lower:      cases.Lower(tag),
		whitespace: opts.WhitespaceTokenizer,
	}
	if opts.WhitespaceTokenizer {
		p.seg = WhitespaceSegmenter{}
	} else {
		p.seg = UnicodeSegmenter{}
	}

	for _, orth := range []string{UserToken, LinkToken} {
		if err := p.AddSpecialCase(SpecialCase{Orth: orth, Lemma: orth, POS: POSNoun}); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Language returns the normalized language name the pipeline was built for.
func (p *Pipeline) Language() string { return p.lang }

// Whitespace reports whether the pipeline uses the pure whitespace splitter.
func (p *Pipeline) Whitespace() bool { return p.whitespace }

// AddSpecialCase registers a never-split literal. An empty or
// whitespace-containing Orth is rejected. Re-registering an Orth replaces
// its previous lemma and tag.
func (p *Pipeline) AddSpecialCase(sc SpecialCase) error {
	if sc.Orth == "" {
		return fmt.Errorf("pipeline: special case literal must not be empty")
	}
	if strings.ContainsFunc(sc.Orth, unicode.IsSpace) {
		return fmt.Errorf("pipeline: special case %q must not contain whitespace", sc.Orth)
	}
	if sc.Lemma == "" {
		sc.Lemma = sc.Orth
	}

	for i := range p.specials {
		if p.specials[i].Orth == sc.Orth {
			p.specials[i] = sc
			return nil
		}
	}

	p.specials = append(p.specials, sc)

	return nil
}

// SpecialCases returns a copy of the registered special cases.
func (p *Pipeline) SpecialCases() []SpecialCase {
	return append([]SpecialCase(nil), p.specials...)
}

// Tokenize splits text into tokens. Special-case literals are emitted as
// single tokens: the whitespace splitter matches them against whole fields,
// while the UAX #29 segmenter protects them anywhere in the text (they
// would otherwise be split at bracket boundaries).
func (p *Pipeline) Tokenize(text string) []Token {
	if p.whitespace {
		return p.tokenizeFields(text)
	}

	return p.tokenizeSpans(text)
}

// Words returns the surface forms of Tokenize(text). This is the view
// vocabulary building and sequence encoding consume.
func (p *Pipeline) Words(text string) []string {
	tokens := p.Tokenize(text)

	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}

	return out
}

// Lower lowercases s using the pipeline's language rules.
func (p *Pipeline) Lower(s string) string {
	return p.lower.String(s)
}

func (p *Pipeline) tokenizeFields(text string) []Token {
	fields := p.seg.Segment(text)

	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		if sc := p.specialFor(f); sc != nil {
			tokens = append(tokens, specialToken(*sc))
			continue
		}

		tokens = append(tokens, Token{Text: f})
	}

	return tokens
}

func (p *Pipeline) tokenizeSpans(text string) []Token {
	var tokens []Token

	rest := text
	for rest != "" {
		idx, sc := p.nextSpecial(rest)
		if sc == nil {
			tokens = appendSegmented(tokens, p.seg, rest)
			break
		}

		if idx > 0 {
			tokens = appendSegmented(tokens, p.seg, rest[:idx])
		}

		tokens = append(tokens, specialToken(*sc))
		rest = rest[idx+len(sc.Orth):]
	}

	return tokens
}

// nextSpecial finds the leftmost occurrence of any registered literal in
// text. When several literals start at the same offset the longest wins.
func (p *Pipeline) nextSpecial(text string) (int, *SpecialCase) {
	best := -1

	var bestCase *SpecialCase

	for i := range p.specials {
		sc := &p.specials[i]

		idx := strings.Index(text, sc.Orth)
		if idx < 0 {
			continue
		}

		if best < 0 || idx < best || (idx == best && len(sc.Orth) > len(bestCase.Orth)) {
			best = idx
			bestCase = sc
		}
	}

	return best, bestCase
}

func (p *Pipeline) specialFor(field string) *SpecialCase {
	for i := range p.specials {
		if p.specials[i].Orth == field {
			return &p.specials[i]
		}
	}

	return nil
}

func specialToken(sc SpecialCase) Token {
	return Token{Text: sc.Orth, Lemma: sc.Lemma, POS: sc.POS, Special: true}
}

func appendSegmented(tokens []Token, seg Segmenter, text string) []Token {
	for _, w := range seg.Segment(text) {
		tokens = append(tokens, Token{Text: w})
	}

	return tokens
}
