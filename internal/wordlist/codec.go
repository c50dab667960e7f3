// Package wordlist decodes glossary word lists into ordered entries.
//
// Two formats are understood:
//
//	# .properties, one pair per line
//	cat=Miau
//	hello=Oi
//
//	# .yaml / .yml
//	entries:
//	  - source: cat
//	    target: Miau
//
// A .properties file cannot repeat a key (the last value wins), which is why
// the bundled data is split into a primary list and a duplicates list.
package wordlist

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/glossary/internal/domain"
)

// ErrUnknownFormat is returned for files whose extension is not recognized.
var ErrUnknownFormat = errors.New("wordlist: unknown format")

// Format identifies a word-list encoding.
type Format string

const (
	FormatProperties Format = "properties"
	FormatYAML       Format = "yaml"
)

// Encoding is the character set of a .properties file.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "iso-8859-1"
)

// ParseEncoding accepts the usual spellings of UTF-8 and ISO-8859-1.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return EncodingLatin1, nil
	}
	return "", domain.NewValidationError("encoding", fmt.Sprintf("unsupported encoding %q", s))
}

func (e Encoding) properties() properties.Encoding {
	if e == EncodingLatin1 {
		return properties.ISO_8859_1
	}
	return properties.UTF8
}

// FormatFromPath picks the format by file extension. Names without an
// extension are treated as .properties.
func FormatFromPath(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".properties", ".txt", "":
		return FormatProperties, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

// Decode parses data in the given format. Entries keep file order.
func Decode(data []byte, f Format, enc Encoding) ([]domain.Entry, error) {
	switch f {
	case FormatProperties:
		return DecodeProperties(data, enc)
	case FormatYAML:
		return DecodeYAML(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// DecodeProperties parses key=value lines. Keys keep the order of their first
// appearance. ${...} references are not expanded.
func DecodeProperties(data []byte, enc Encoding) ([]domain.Entry, error) {
	l := &properties.Loader{Encoding: enc.properties(), DisableExpansion: true}
	p, err := l.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("wordlist: parse properties: %w", err)
	}

	keys := p.Keys()
	entries := make([]domain.Entry, 0, len(keys))
	for _, k := range keys {
		v, _ := p.Get(k)
		entries = append(entries, domain.NewEntry(k, v))
	}
	return entries, nil
}

type yamlList struct {
	Entries []yamlEntry `yaml:"entries"`
}

type yamlEntry struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// DecodeYAML parses an entries list. Both sides of every entry are required.
func DecodeYAML(data []byte) ([]domain.Entry, error) {
	var list yamlList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("wordlist: parse yaml: %w", err)
	}

	var errs []domain.FieldError
	entries := make([]domain.Entry, 0, len(list.Entries))
	for i, e := range list.Entries {
		if e.Source == "" {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("entries[%d].source", i), Message: "required"})
		}
		if e.Target == "" {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("entries[%d].target", i), Message: "required"})
		}
		entries = append(entries, domain.NewEntry(e.Source, e.Target))
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return entries, nil
}

// EncodeYAML writes entries in the format DecodeYAML reads.
func EncodeYAML(entries []domain.Entry) ([]byte, error) {
	list := yamlList{Entries: make([]yamlEntry, len(entries))}
	for i, e := range entries {
		list.Entries[i] = yamlEntry{Source: e.Key, Target: e.Value}
	}
	return yaml.Marshal(list)
}
