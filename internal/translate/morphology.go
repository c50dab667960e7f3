package translate

import (
	"strings"

	"github.com/heartmarshall/glossary/internal/domain"
)

// Lookup is the read side of a vocabulary store.
type Lookup interface {
	Values(key string) ([]string, bool)
	Keys(value string) ([]string, bool)
}

// Rule names reported in Match.Rule.
const (
	RuleExact    = "exact"
	RuleLatinI   = "latin-i"
	RulePluralES = "plural-es"
	RulePluralS  = "plural-s"
)

// Match is a successful resolution of one word.
type Match struct {
	// Values are the stored translations in insertion order, never empty.
	Values []string
	// Plural is set when a singular candidate matched instead of the word itself.
	Plural bool
	// Rule names the rule that produced the match.
	Rule string
}

type candidateRule struct {
	name       string
	suffix     string
	replace    string
	sourceOnly bool
}

// candidateRules are tried in order after the exact lookup fails.
// "es" must stay ahead of "s".
var candidateRules = []candidateRule{
	{name: RuleLatinI, suffix: "i", replace: "us", sourceOnly: true},
	{name: RulePluralES, suffix: "es"},
	{name: RulePluralS, suffix: "s"},
}

// Resolve finds the translations of the lower-cased word in dir.
// It reports false when neither the word nor any singular candidate is known.
func Resolve(l Lookup, lower string, dir domain.Direction) (Match, bool) {
	if values, ok := lookup(l, lower, dir); ok {
		return Match{Values: values, Rule: RuleExact}, true
	}

	for _, rule := range candidateRules {
		if rule.sourceOnly && dir != domain.DirectionSourceToTarget {
			continue
		}
		stem, found := strings.CutSuffix(lower, rule.suffix)
		if !found || stem == "" {
			continue
		}
		if values, ok := lookup(l, stem+rule.replace, dir); ok {
			return Match{Values: values, Plural: true, Rule: rule.name}, true
		}
	}
	return Match{}, false
}

func lookup(l Lookup, word string, dir domain.Direction) ([]string, bool) {
	if dir == domain.DirectionTargetToSource {
		return l.Keys(domain.Capitalize(word))
	}
	return l.Values(word)
}

// Pluralize appends the plural suffix of the language a translation in dir
// is rendered in.
//
// Target words (source to target) take "es" after s, v or g and "s"
// otherwise. Source words (target to source) follow English loosely: a word
// ending in "us" takes "i" (cactus becomes cactusi), s and x take "es",
// anything else takes "s".
func Pluralize(word string, dir domain.Direction) string {
	lower := strings.ToLower(word)
	if dir == domain.DirectionTargetToSource {
		switch {
		case strings.HasSuffix(lower, "us"):
			return word + "i"
		case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"):
			return word + "es"
		}
		return word + "s"
	}

	switch {
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "v"), strings.HasSuffix(lower, "g"):
		return word + "es"
	}
	return word + "s"
}
