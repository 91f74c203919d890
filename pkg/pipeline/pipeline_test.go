package pipeline_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-partials/pkg/partials"
	"github.com/goliatone/go-partials/pkg/pipeline"
	"github.com/goliatone/go-partials/pkg/render"
	"github.com/goliatone/go-partials/pkg/render/layout"
	"github.com/goliatone/go-partials/pkg/sanitize"
	"github.com/goliatone/go-partials/pkg/source"
	"github.com/goliatone/go-partials/pkg/testsupport"
)

func generate(t *testing.T, p *pipeline.Pipeline, req pipeline.Request) string {
	t.Helper()

	out, err := p.Generate(testsupport.Context(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return string(out)
}

func TestGenerate_HTMLFileGolden(t *testing.T) {
	out := generate(t, pipeline.New(), pipeline.Request{
		Source: source.FromFile(filepath.Join("testdata", "page.html")),
	})

	goldenPath := filepath.Join("testdata", "page.golden.html")
	if testsupport.WriteMaybeGolden(t, goldenPath, []byte(out)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, goldenPath)
	if out != want {
		t.Fatalf("output mismatch\nwant: %q\n got: %q", want, out)
	}
}

func TestGenerate_Markdown(t *testing.T) {
	doc := strings.Join([]string{
		`<partial name="greet" who="">`,
		`<strong>Hello {{who}}</strong>`,
		`</partial>`,
		``,
		`# Title`,
		``,
		`<partial name="greet" who="Ada"></partial>`,
		``,
	}, "\n")

	out := generate(t, pipeline.New(), pipeline.Request{
		Source: source.FromBytes("page.md", []byte(doc)),
	})

	for _, want := range []string{"<h1>Title</h1>", "<strong>Hello Ada</strong>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<partial") || strings.Contains(out, "{{who}}") {
		t.Fatalf("partials left in output:\n%s", out)
	}
}

func TestGenerate_LayoutAndSanitizer(t *testing.T) {
	engine, err := layout.New(layout.WithFS(fstest.MapFS{
		"page.tpl": {Data: []byte(`<html><title>{{ title }}</title><body>{{ content }}</body></html>`)},
	}))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}

	p := pipeline.New(
		pipeline.WithLayout(engine, "page", map[string]any{"title": "Docs"}),
		pipeline.WithSanitizer(sanitize.UGC()),
	)
	doc := `<partial name="x" js="" msg=""><p onclick="{{js}}">{{msg}}</p></partial><partial name="x" js="alert(1)" msg="hi"></partial>`

	out := generate(t, p, pipeline.Request{Source: source.FromBytes("page.html", []byte(doc))})
	want := `<html><title>Docs</title><body><p>hi</p></body></html>`
	if out != want {
		t.Fatalf("output mismatch\nwant: %q\n got: %q", want, out)
	}
}

func TestGenerate_LibrariesShareDefinitions(t *testing.T) {
	lib := source.FromBytes("buttons.html", []byte(`<partial name="btn" label=""><button>{{label}}</button></partial>library text`))
	p := pipeline.New(pipeline.WithLibraries(lib))

	out := generate(t, p, pipeline.Request{
		Source: source.FromBytes("page.html", []byte(`<partial name="btn" label="Go"></partial>`)),
	})
	if out != `<button>Go</button>` {
		t.Fatalf("unexpected output %q", out)
	}

	out = generate(t, pipeline.New(), pipeline.Request{
		Source:    source.FromBytes("page.html", []byte(`<nav><partial name="btn" label="Back"></partial></nav>`)),
		Libraries: []source.Source{lib},
	})
	if out != `<nav><button>Back</button></nav>` {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestGenerate_ThemeTokensAsGlobals(t *testing.T) {
	engine, err := layout.New(layout.WithFS(fstest.MapFS{
		"themed.tpl": {Data: []byte(`{{ theme.name }}:{{ content }}`)},
	}))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}

	p := pipeline.New(
		pipeline.WithTheme(&theme.RendererConfig{
			Theme:  "acme",
			Tokens: map[string]string{"brand": "#123456"},
		}),
		pipeline.WithLayout(engine, "themed", nil),
	)
	doc := `<partial name="c"><span>{{brand}}</span></partial><partial name="c"></partial>`

	out := generate(t, p, pipeline.Request{Source: source.FromBytes("page.html", []byte(doc))})
	if out != `acme:<span>#123456</span>` {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestGenerate_JSONTreeAndRenderer(t *testing.T) {
	tree := `[{"tag":"partial","attrs":{"name":"t","v":""},"content":["[{{v}}]"]},{"tag":"partial","attrs":{"name":"t","v":"x"},"content":[]}]`
	doc, err := source.NewDocument(source.FromBytes("tree.json", nil), []byte(tree))
	if err != nil {
		t.Fatalf("document: %v", err)
	}

	out := generate(t, pipeline.New(), pipeline.Request{Document: &doc})
	if out != `[x]` {
		t.Fatalf("unexpected html output %q", out)
	}

	out = generate(t, pipeline.New(), pipeline.Request{Document: &doc, Renderer: "json"})
	want := "[\n  {\n    \"tag\": false,\n    \"content\": []\n  },\n  {\n    \"tag\": false,\n    \"content\": [\n      \"[x]\"\n    ]\n  }\n]\n"
	if out != want {
		t.Fatalf("unexpected json output\nwant: %q\n got: %q", want, out)
	}
}

func TestGenerate_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := pipeline.New().Generate(ctx, pipeline.Request{
		Source: source.FromBytes("page.html", []byte(`<partial name="missing"/>`)),
	})
	if !errors.Is(err, partials.ErrUndefinedPartial) {
		t.Fatalf("expected undefined partial error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "pipeline:") {
		t.Fatalf("expected pipeline prefix, got %q", err.Error())
	}

	if _, err := pipeline.New().Generate(ctx, pipeline.Request{}); err == nil {
		t.Fatalf("expected error for missing source")
	}

	_, err = pipeline.New().Generate(ctx, pipeline.Request{
		Source:   source.FromBytes("page.html", nil),
		Renderer: "pdf",
	})
	if !errors.Is(err, render.ErrUnknownFormat) || !strings.Contains(err.Error(), "available: html, json") {
		t.Fatalf("expected unknown output format error, got %v", err)
	}

	bad := pipeline.New(pipeline.WithProcessorOptions(partials.WithDelimiters("", "}}")))
	if _, err := bad.Generate(ctx, pipeline.Request{Source: source.FromBytes("page.html", nil)}); err == nil {
		t.Fatalf("expected processor configuration error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := pipeline.New().Generate(cancelled, pipeline.Request{Source: source.FromBytes("page.html", nil)}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerate_CustomDelimitersAndLimit(t *testing.T) {
	p := pipeline.New(pipeline.WithProcessorOptions(
		partials.WithDelimiters("[[", "]]"),
		partials.WithMaxDepth(3),
	))

	out := generate(t, p, pipeline.Request{
		Source: source.FromBytes("page.html", []byte(`<partial name="a" v="">[[v]] {{v}}</partial><partial name="a" v="1"/>`)),
	})
	if out != `1 {{v}}` {
		t.Fatalf("unexpected output %q", out)
	}

	_, err := p.Generate(context.Background(), pipeline.Request{
		Source: source.FromBytes("page.html", []byte(`<partial name="loop"><partial name="loop"></partial></partial><partial name="loop"></partial>`)),
	})
	if !errors.Is(err, partials.ErrExpansionLimit) {
		t.Fatalf("expected expansion limit error, got %v", err)
	}
}
