// Package moderation screens inbound text against a blocked-word list
// before the message enters the rest of the pipeline. Matching is
// resistant to casing, punctuation noise and common Leet speak
// substitutions. An empty word list disables the filter.
package moderation

import (
	"log/slog"
	"unicode"

	"github.com/abadojack/whatlanggo"
	goahocorasick "github.com/anknown/ahocorasick"
)

type IFilter interface {
	Inspect(text string) Verdict
}

// Verdict is the result of screening one message.
type Verdict struct {
	Flagged  bool
	Words    []string
	Language string // ISO 639-1 code of the detected language, best effort
}

type Filter struct {
	matcher *goahocorasick.Machine
	log     *slog.Logger
}

// NewFilter builds the Aho-Corasick automaton over normalized patterns.
// A nil or empty word list yields a pass-through filter.
func NewFilter(blockedWords []string, log *slog.Logger) (*Filter, error) {
	patterns := make([][]rune, 0, len(blockedWords))
	for _, word := range blockedWords {
		if normalized := normalizeRunes([]rune(word)); len(normalized) > 0 {
			patterns = append(patterns, normalized)
		}
	}
	if len(patterns) == 0 {
		return &Filter{log: log}, nil
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Filter{matcher: m, log: log}, nil
}

// Inspect reports whether the text contains any blocked pattern, along
// with the matched words and the detected language.
func (f *Filter) Inspect(text string) Verdict {
	info := whatlanggo.Detect(text)
	verdict := Verdict{Language: info.Lang.Iso6391()}

	if f.matcher == nil {
		return verdict
	}

	normalized := normalizeRunes([]rune(text))
	if len(normalized) == 0 {
		return verdict
	}

	spans := f.matcher.MultiPatternSearch(normalized, false)
	for _, span := range spans {
		verdict.Words = append(verdict.Words, string(span.Word))
	}
	verdict.Flagged = len(verdict.Words) > 0
	return verdict
}

// normalizeRunes lowers, strips noise and folds Leet speak so that
// "B.4.d word" variants still match their dictionary entry.
func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// simplifyRune maps common Leet speak characters back to their standard alphabet counterparts.
func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

// isNoise identifies characters that should be ignored during the pattern matching phase.
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
