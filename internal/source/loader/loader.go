package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-partials/pkg/source"
)

// ErrRemoteDisabled is returned for URL sources when the loader was built
// without an HTTP client.
var ErrRemoteDisabled = errors.New("remote documents are disabled (use source.WithHTTPClient or source.WithHTTPFallback)")

// Loader implements source.Loader for partial documents read from disk, an
// fs.FS, HTTP or inline bytes.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

var _ source.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options source.LoaderOptions) source.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:      options.FileSystem,
		http:    httpClient,
		timeout: timeout,
	}
}

// Load reads the document src points at. The format comes from the location's
// extension; remote documents without a known extension fall back to the
// response Content-Type.
func (l *Loader) Load(ctx context.Context, src source.Source) (source.Document, error) {
	if src == nil {
		return source.Document{}, errors.New("source loader: source is nil")
	}

	var (
		data        []byte
		contentType string
		err         error
	)

	location := src.Location()
	switch src.Kind() {
	case source.KindFile:
		data, err = loadFile(ctx, location)
	case source.KindFS:
		data, err = loadFromFS(ctx, l.fs, location)
	case source.KindURL:
		if l.http == nil {
			err = ErrRemoteDisabled
			break
		}
		data, contentType, err = loadHTTP(ctx, l.http, location, l.timeout)
	case source.KindBytes:
		inline, ok := src.(source.BytesSource)
		if !ok {
			return source.Document{}, fmt.Errorf("source loader: unexpected bytes source %T", src)
		}
		data = inline.Data
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}

	format := documentFormat(location, contentType)
	if err != nil {
		return source.Document{}, fmt.Errorf("source loader: load %s document %s: %w", format, location, err)
	}
	return source.NewDocumentWithFormat(src, data, format)
}

func documentFormat(location, contentType string) source.Format {
	if hasKnownExtension(location) || contentType == "" {
		return source.DetectFormat(location)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return source.DetectFormat(location)
	}
	switch mediaType {
	case "text/markdown", "text/x-markdown":
		return source.FormatMarkdown
	case "application/json":
		return source.FormatJSON
	default:
		return source.FormatHTML
	}
}

func hasKnownExtension(location string) bool {
	ext := strings.ToLower(path.Ext(strings.SplitN(location, "?", 2)[0]))
	switch ext {
	case ".html", ".htm", ".md", ".markdown", ".json":
		return true
	}
	return false
}
