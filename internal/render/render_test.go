package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeading_Levels(t *testing.T) {
	t.Parallel()

	for level := 1; level <= 6; level++ {
		h, err := Heading("x", level)
		require.NoError(t, err)
		assert.Equal(t, "h"+string(rune('0'+level)), h.Data)
	}

	for _, level := range []int{-1, 0, 7} {
		_, err := Heading("x", level)
		assert.True(t, errors.Is(err, ErrInvalidLevel), "level %d", level)
	}
}

func TestFragment(t *testing.T) {
	t.Parallel()

	got, err := Fragment(Section{Header: "The cat", Body: "Xyz \nnote"})
	require.NoError(t, err)
	assert.Equal(t, "<h1>The cat</h1><hr/>Xyz <br/>note<br/>", got)
}

func TestFragment_EscapesText(t *testing.T) {
	t.Parallel()

	got, err := Fragment(Section{Header: "<b>", Level: 2, Body: "`qwerty' & co"})
	require.NoError(t, err)
	assert.Equal(t, "<h2>&lt;b&gt;</h2><hr/>`qwerty&#39; &amp; co<br/>", got)
}

func TestFragment_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := Fragment(Section{Header: "x", Level: 9})
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestDocument(t *testing.T) {
	t.Parallel()

	got, err := Document("Glossary", Welcome...)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"/><title>Glossary</title></head><body>"))
	assert.Contains(t, got, "<h1>Hello</h1><hr/>Welcome to the dictionary!!!<br/>")
	assert.Contains(t, got, "<h1>Oi</h1><hr/>Welkomen ga larjernok!!!<br/>")
	assert.True(t, strings.HasSuffix(got, "</body></html>"))
}
