package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-partials/pkg/config"
	"github.com/goliatone/go-partials/pkg/placeholder"
)

func TestParse_YAML(t *testing.T) {
	data := []byte(`
delimiters: ["[[", "]]"]
maxDepth: 50
libraries:
  - partials/base.html
  - "  "
renderer: JSON
sanitize: ugc
layout:
  dir: templates
  name: page
  data:
    title: Docs
globals:
  site: Example
`)
	cfg, err := config.Parse(data, "partials.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	delims, err := cfg.PlaceholderDelimiters()
	if err != nil {
		t.Fatalf("delimiters: %v", err)
	}
	if delims != (placeholder.Delimiters{Opening: "[[", Closing: "]]"}) {
		t.Fatalf("unexpected delimiters %#v", delims)
	}
	if cfg.Renderer != "json" || cfg.Sanitize != "ugc" || cfg.MaxDepth != 50 {
		t.Fatalf("unexpected scalars %#v", cfg)
	}
	if diff := cmp.Diff([]string{"partials/base.html"}, cfg.Libraries); diff != "" {
		t.Fatalf("libraries mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Layout.Enabled() || cfg.Layout.Data["title"] != "Docs" {
		t.Fatalf("layout not parsed: %#v", cfg.Layout)
	}
	if cfg.Globals["site"] != "Example" {
		t.Fatalf("globals not parsed: %#v", cfg.Globals)
	}
}

func TestParse_JSONC(t *testing.T) {
	data := []byte(`{
  // custom delimiters for a Vue-heavy site
  "delimiters": ["<%", "%>"],
  "renderer": "html",
}`)
	cfg, err := config.Parse(data, "partials.jsonc")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"<%", "%>"}, cfg.Delimiters); diff != "" {
		t.Fatalf("delimiters mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":            "   ",
		"garbage":          "delimiters: [unclosed",
		"one delimiter":    `{"delimiters": ["{{"]}`,
		"unknown renderer": `renderer: pdf`,
		"unknown policy":   `sanitize: paranoid`,
		"negative limit":   `maxDepth: -1`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := config.Parse([]byte(data), "partials.yaml"); err == nil {
				t.Fatalf("expected error")
			} else if !strings.HasPrefix(err.Error(), "config:") {
				t.Fatalf("expected config prefix, got %q", err.Error())
			}
		})
	}
}

func TestLoadAndDiscover_ResolveRelativePaths(t *testing.T) {
	dir := t.TempDir()
	content := "libraries: [lib/cards.html]\nlayout:\n  dir: layouts\n  name: page\n"
	if err := os.WriteFile(filepath.Join(dir, "partials.yml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, ok, err := config.Discover(dir)
	if err != nil || !ok {
		t.Fatalf("discover: ok=%v err=%v", ok, err)
	}
	if cfg.Libraries[0] != filepath.Join(dir, "lib", "cards.html") {
		t.Fatalf("library path not resolved: %q", cfg.Libraries[0])
	}
	if cfg.Layout.Dir != filepath.Join(dir, "layouts") {
		t.Fatalf("layout dir not resolved: %q", cfg.Layout.Dir)
	}
	if cfg.Source != filepath.Join(dir, "partials.yml") {
		t.Fatalf("unexpected source %q", cfg.Source)
	}

	_, ok, err = config.Discover(t.TempDir())
	if err != nil || ok {
		t.Fatalf("expected no config in empty dir, ok=%v err=%v", ok, err)
	}
}
