package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

func loadFromFS(ctx context.Context, filesystem fs.FS, name string) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("no document filesystem configured (use source.WithFileSystem)")
	}
	name = fsDocumentName(name)
	if name == "" {
		return nil, errors.New("document name is required")
	}
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%q is not a valid document path", name)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	info, err := fs.Stat(filesystem, name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a document", name)
	}
	return fs.ReadFile(filesystem, name)
}

// fsDocumentName turns the relative paths used in configuration files, such
// as "./lib/cards.html" or "/lib/cards.html", into fs.FS names.
func fsDocumentName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	cleaned := strings.TrimLeft(path.Clean(name), "/")
	if cleaned == "" {
		return "."
	}
	return cleaned
}
