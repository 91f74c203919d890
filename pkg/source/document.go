package source

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"
)

// Format names the syntax a document is written in.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// DetectFormat derives the format from a location's extension. Unknown
// extensions are treated as HTML.
func DetectFormat(location string) Format {
	loc := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" {
		loc = u.Path
	}
	switch strings.ToLower(filepath.Ext(loc)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".json":
		return FormatJSON
	default:
		return FormatHTML
	}
}

// Document wraps a raw payload and its origin.
type Document struct {
	source Source
	raw    []byte
	format Format
}

// NewDocument constructs a Document, detecting the format from the source
// location.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("source: source is required")
	}
	return NewDocumentWithFormat(src, raw, DetectFormat(src.Location()))
}

// NewDocumentWithFormat constructs a Document with an explicit format. Empty
// payloads are allowed; an empty document simply renders nothing.
func NewDocumentWithFormat(src Source, raw []byte, format Format) (Document, error) {
	if src == nil {
		return Document{}, errors.New("source: source is required")
	}
	if format == "" {
		format = FormatHTML
	}
	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone, format: format}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Format returns the document syntax.
func (d Document) Format() Format {
	return d.format
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
