package translate

import (
	"strings"

	"github.com/heartmarshall/glossary/internal/domain"
)

// NotFoundNote explains the marker around untranslated words.
const NotFoundNote = "Words with ` ' do not exist."

// Engine renders sentences against a Lookup. The zero value renders without
// the trailing note; use NewEngine for the default behavior.
type Engine struct {
	Note string
}

func NewEngine() *Engine {
	return &Engine{Note: NotFoundNote}
}

// Query translates sentence word by word and appends the note on its own line.
func (e *Engine) Query(l Lookup, sentence string, dir domain.Direction) string {
	out := e.Translate(l, sentence, dir)
	if e.Note == "" {
		return out
	}
	return out + "\n" + e.Note
}

// Translate renders every token of sentence followed by a single space.
func (e *Engine) Translate(l Lookup, sentence string, dir domain.Direction) string {
	tokens := Tokenize(sentence, dir)
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = RenderToken(l, tok, dir)
	}
	return strings.Join(parts, "")
}

// RenderToken renders one token with its remainder and trailing space.
// A token made only of punctuation is emitted as written with no space, so
// it sticks to the word after it.
func RenderToken(l Lookup, tok Token, dir domain.Direction) string {
	switch tok.Kind {
	case KindPunct:
		return tok.Remainder
	case KindNumber:
		return tok.Word + tok.Remainder + " "
	case KindPossessor:
		w := tok.Word
		if tok.Capitalize {
			w = domain.Capitalize(w)
		}
		return w + tok.Remainder + " "
	}

	match, ok := Resolve(l, tok.Lower, dir)
	if !ok {
		return notFound(tok) + tok.Remainder + " "
	}
	return renderMatch(match, tok, dir) + tok.Remainder + " "
}

func renderMatch(m Match, tok Token, dir domain.Direction) string {
	if len(m.Values) > 1 {
		values := make([]string, len(m.Values))
		for i, v := range m.Values {
			if m.Plural {
				v = Pluralize(v, dir)
			}
			values[i] = v
		}
		return "[" + strings.Join(values, ", ") + "]"
	}

	v := m.Values[0]
	if tok.Capitalize || domain.IsCapitalized(tok.Word) {
		v = domain.Capitalize(v)
	} else {
		v = strings.ToLower(v)
	}
	if m.Plural {
		v = Pluralize(v, dir)
	}
	return v
}

func notFound(tok Token) string {
	w := tok.Word
	if tok.Capitalize {
		w = domain.Capitalize(w)
	}
	return "`" + w + "'"
}
