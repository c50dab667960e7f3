// Package translate turns a sentence into its word-by-word glossary
// translation. Tokenize splits and classifies the input, Resolve applies the
// morphology rules to a single word and Engine renders the result.
package translate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/heartmarshall/glossary/internal/domain"
)

// BelongMarker is the vocabulary key looked up for the possessive suffix.
const BelongMarker = "-belong"

// TokenKind classifies a token.
type TokenKind int

const (
	// KindWord is looked up in the vocabulary.
	KindWord TokenKind = iota
	// KindNumber is a numeric literal passed through verbatim.
	KindNumber
	// KindPunct is a token with no word characters, passed through verbatim.
	KindPunct
	// KindMarker is a synthetic token inserted for a possessive suffix.
	KindMarker
	// KindPossessor is the owner in a possessive, passed through as written.
	KindPossessor
)

func (k TokenKind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindNumber:
		return "number"
	case KindPunct:
		return "punct"
	case KindMarker:
		return "marker"
	case KindPossessor:
		return "possessor"
	}
	return "unknown"
}

// Token is one unit of a tokenized sentence.
type Token struct {
	Kind TokenKind
	// Word is the token as written, without its trailing remainder.
	Word string
	// Lower is Word lower-cased, used for lookups.
	Lower string
	// Remainder is the trailing punctuation reattached after rendering.
	Remainder string
	// Capitalize is set when a capitalized article preceded the token.
	Capitalize bool
}

var numericRe = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Tokenize splits sentence into tokens. Articles are dropped; possessives
// are expanded into the owner, kept as written, plus a BelongMarker token
// when dir is source to target.
func Tokenize(sentence string, dir domain.Direction) []Token {
	fields := strings.Fields(sentence)
	tokens := make([]Token, 0, len(fields))
	capNext := false

	for _, field := range fields {
		word, remainder := splitRemainder(field, dir)

		switch {
		case word == "":
			tokens = append(tokens, Token{Kind: KindPunct, Remainder: remainder})
			continue
		case numericRe.MatchString(word):
			tokens = append(tokens, Token{Kind: KindNumber, Word: word, Lower: word, Remainder: remainder})
			continue
		}

		lower := strings.ToLower(word)
		if lower == "the" {
			if domain.IsCapitalized(word) {
				capNext = true
			}
			continue
		}

		if base, ok := possessiveBase(word, lower, dir); ok {
			tokens = append(tokens,
				Token{Kind: KindPossessor, Word: base, Lower: strings.ToLower(base), Capitalize: capNext},
				Token{Kind: KindMarker, Word: BelongMarker, Lower: BelongMarker, Remainder: remainder},
			)
			capNext = false
			continue
		}

		tokens = append(tokens, Token{Kind: KindWord, Word: word, Lower: lower, Remainder: remainder, Capitalize: capNext})
		capNext = false
	}
	return tokens
}

// splitRemainder cuts the longest trailing run of non-word characters off
// field. When looking up source words an apostrophe right after a trailing
// "s" stays on the word so that "dogs'" keeps its possessive form.
func splitRemainder(field string, dir domain.Direction) (word, remainder string) {
	end := len(field)
	for end > 0 {
		r, size := utf8.DecodeLastRuneInString(field[:end])
		if isWordRune(r) {
			break
		}
		end -= size
	}

	word, remainder = field[:end], field[end:]
	if dir == domain.DirectionSourceToTarget &&
		strings.HasPrefix(remainder, "'") &&
		(strings.HasSuffix(word, "s") || strings.HasSuffix(word, "S")) {
		word, remainder = word+"'", remainder[1:]
	}
	return word, remainder
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func possessiveBase(word, lower string, dir domain.Direction) (string, bool) {
	if dir != domain.DirectionSourceToTarget || len(word) <= 2 {
		return "", false
	}
	if !strings.HasSuffix(lower, "'s") && !strings.HasSuffix(lower, "s'") {
		return "", false
	}
	return word[:len(word)-2], true
}
