// Package render formats translation results as HTML.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrInvalidLevel is returned for heading levels outside 1..6.
var ErrInvalidLevel = errors.New("render: heading level must be in range 1..6")

var headings = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// Section is a heading, a horizontal rule and a body whose lines are each
// followed by a line break.
type Section struct {
	Header string
	// Level is the heading level; zero means 1.
	Level int
	Body  string
}

// Welcome is shown before the first query.
var Welcome = []Section{
	{Header: "Hello", Body: "Welcome to the dictionary!!!"},
	{Header: "Oi", Body: "Welkomen ga larjernok!!!"},
}

// Heading returns an <hN> element holding text.
func Heading(text string, level int) (*html.Node, error) {
	if level < 1 || level > len(headings) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	h := element(headings[level-1])
	h.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return h, nil
}

// Fragment renders sections without a surrounding document.
func Fragment(sections ...Section) (string, error) {
	root := element(atom.Div)
	for _, s := range sections {
		if err := appendSection(root, s); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("render: %w", err)
		}
	}
	return buf.String(), nil
}

// Document renders a complete HTML page titled title.
func Document(title string, sections ...Section) (string, error) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	t := element(atom.Title)
	t.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	head.AppendChild(t)
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)
	for _, s := range sections {
		if err := appendSection(body, s); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return buf.String(), nil
}

func appendSection(parent *html.Node, s Section) error {
	level := s.Level
	if level == 0 {
		level = 1
	}
	h, err := Heading(s.Header, level)
	if err != nil {
		return err
	}
	parent.AppendChild(h)
	parent.AppendChild(element(atom.Hr))

	for _, line := range strings.Split(s.Body, "\n") {
		if line != "" {
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: line})
		}
		parent.AppendChild(element(atom.Br))
	}
	return nil
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
