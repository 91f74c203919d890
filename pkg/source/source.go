// Package source describes where documents come from and wraps their raw
// bytes together with the format they are written in.
package source

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Source identifies where a document originated so loaders can operate on
// files, fs.FS entries, URLs, or in-memory bytes.
type Source interface {
	Kind() Kind
	Location() string
}

// Kind enumerates the loader modalities.
type Kind string

const (
	KindFile  Kind = "file"
	KindFS    Kind = "fs"
	KindURL   Kind = "url"
	KindBytes Kind = "bytes"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() Kind       { return KindFile }

// FromFile returns a Source pointing to a file path.
func FromFile(p string) Source {
	return fileSource{path: filepath.Clean(p)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() Kind       { return KindFS }

// FromFS returns a Source identifying a file inside the loader's fs.FS.
func FromFS(name string) Source {
	return fsSource{name: path.Clean(name)}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() Kind       { return KindURL }

// FromURL parses the supplied URL string and returns a Source.
func FromURL(raw string) (Source, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("source: empty URL")
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return nil, fmt.Errorf("source: invalid URL %q: %w", trimmed, err)
	}
	return urlSource{raw: trimmed}, nil
}

// BytesSource carries its payload inline. Name is used for format detection
// and error messages.
type BytesSource struct {
	Name string
	Data []byte
}

func (s BytesSource) Location() string { return s.Name }
func (s BytesSource) Kind() Kind       { return KindBytes }

// FromBytes returns an in-memory Source. The data is copied.
func FromBytes(name string, data []byte) Source {
	return BytesSource{Name: name, Data: append([]byte(nil), data...)}
}

// Parse picks a Source for a CLI style argument: http(s) URLs become URL
// sources, anything else a file.
func Parse(raw string) (Source, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("source: location is required")
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return FromURL(trimmed)
	}
	return FromFile(trimmed), nil
}
