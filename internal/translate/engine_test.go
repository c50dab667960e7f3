package translate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/glossary/internal/domain"
)

func TestEngine_Translate(t *testing.T) {
	t.Parallel()

	store := newStore(
		"hello", "Oi",
		"people", "Pepol",
		"cat", "xyz",
		"bank", "Rivaj",
		"bank", "Monejok",
		"toy", "Jok",
		"-belong", "Av",
		"cactus", "Kakt",
	)

	tests := []struct {
		name  string
		input string
		dir   domain.Direction
		want  string
	}{
		{"capitalized word keeps capital", "Hello people.", domain.DirectionSourceToTarget, "Oi pepol. "},
		{"plural suffix by last letter", "cats", domain.DirectionSourceToTarget, "xyzs "},
		{"not found keeps case", "qwerty", domain.DirectionSourceToTarget, "`qwerty' "},
		{"not found mixed case", "QWErty!", domain.DirectionSourceToTarget, "`QWErty'! "},
		{"article capitalizes next word", "The cat", domain.DirectionSourceToTarget, "Xyz "},
		{"article capitalizes unknown word", "The qwerty", domain.DirectionSourceToTarget, "`Qwerty' "},
		{"lower-case article vanishes", "the cat", domain.DirectionSourceToTarget, "xyz "},
		{"multi match in stored form", "Bank", domain.DirectionSourceToTarget, "[Rivaj, Monejok] "},
		{"multi match plural", "banks,", domain.DirectionSourceToTarget, "[Rivajs, Monejoks], "},
		{"possessive keeps owner as written", "the cat's toy.", domain.DirectionSourceToTarget, "cat av jok. "},
		{"possessive proper name", "John's toy", domain.DirectionSourceToTarget, "John av jok "},
		{"possessive after capital article", "The dogs' toy", domain.DirectionSourceToTarget, "Dog av jok "},
		{"numbers verbatim", "3 cats", domain.DirectionSourceToTarget, "3 xyzs "},
		{"punctuation sticks to next word", "cat - toy", domain.DirectionSourceToTarget, "xyz -jok "},
		{"latin plural", "cacti", domain.DirectionSourceToTarget, "kakts "},
		{"reverse lookup", "Pepol oi", domain.DirectionTargetToSource, "People hello "},
		{"reverse plural uses english rule", "kakts", domain.DirectionTargetToSource, "cactusi "},
		{"empty sentence", "", domain.DirectionSourceToTarget, ""},
	}

	e := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, e.Translate(store, tt.input, tt.dir))
		})
	}
}

func TestEngine_Query_AppendsNote(t *testing.T) {
	t.Parallel()

	store := newStore("cat", "xyz")

	got := NewEngine().Query(store, "cat qwerty", domain.DirectionSourceToTarget)
	assert.Equal(t, "xyz `qwerty' \n"+NotFoundNote, got)

	bare := (&Engine{}).Query(store, "cat", domain.DirectionSourceToTarget)
	assert.Equal(t, "xyz ", bare)
	assert.False(t, strings.Contains(bare, NotFoundNote))
}

func TestEngine_QueryIsPure(t *testing.T) {
	t.Parallel()

	store := newStore("cat", "xyz", "cat", "Miau")
	before := store.Clone()

	e := NewEngine()
	first := e.Query(store, "The cats", domain.DirectionSourceToTarget)
	second := e.Query(store, "The cats", domain.DirectionSourceToTarget)

	assert.Equal(t, first, second)
	assert.True(t, store.Equal(before))
}
