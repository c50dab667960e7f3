package wordlist

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/heartmarshall/glossary/internal/domain"
)

// FileSource reads a word list from a file system. It backs both the
// embedded baseline lists and word lists on local disk.
type FileSource struct {
	name   string
	fsys   fs.FS
	path   string
	format Format
	enc    Encoding
}

// NewFileSource creates a source for path inside fsys. The format is taken
// from the file extension. name identifies the source in logs.
func NewFileSource(name string, fsys fs.FS, path string, enc Encoding) (*FileSource, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{name: name, fsys: fsys, path: path, format: format, enc: enc}, nil
}

func (s *FileSource) Name() string { return s.name }

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) ([]domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, s.path)
	if err != nil {
		return nil, fmt.Errorf("wordlist: read %s: %w", s.name, err)
	}
	entries, err := Decode(data, s.format, s.enc)
	if err != nil {
		return nil, fmt.Errorf("wordlist: %s: %w", s.name, err)
	}
	return entries, nil
}
