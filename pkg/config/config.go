// Package config loads project settings for the partials pipeline from
// JSON, JSONC or YAML files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-partials/pkg/placeholder"
	"github.com/goliatone/go-partials/pkg/sanitize"
)

// DefaultFiles lists the file names Discover looks for, in order.
var DefaultFiles = []string{"partials.yaml", "partials.yml", "partials.json", "partials.jsonc"}

// Config holds project settings. Zero values mean "use the default".
type Config struct {
	Delimiters []string          `json:"delimiters" yaml:"delimiters"`
	MaxDepth   int               `json:"maxDepth" yaml:"maxDepth"`
	Libraries  []string          `json:"libraries" yaml:"libraries"`
	Renderer   string            `json:"renderer" yaml:"renderer"`
	Sanitize   string            `json:"sanitize" yaml:"sanitize"`
	Layout     Layout            `json:"layout" yaml:"layout"`
	Globals    map[string]string `json:"globals" yaml:"globals"`

	// Source is the file the configuration was read from.
	Source string `json:"-" yaml:"-"`
}

// Layout selects a pongo2 page template to wrap rendered output. An empty
// Dir selects the embedded layouts.
type Layout struct {
	Dir  string         `json:"dir" yaml:"dir"`
	Name string         `json:"name" yaml:"name"`
	Data map[string]any `json:"data" yaml:"data"`
}

// Enabled reports whether a layout was configured.
func (l Layout) Enabled() bool {
	return strings.TrimSpace(l.Name) != ""
}

// Load reads and validates a configuration file. Relative library and layout
// paths are resolved against the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return Config{}, err
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// Discover loads the first of DefaultFiles found in dir. It returns
// ok=false when none exists.
func Discover(dir string) (Config, bool, error) {
	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return Config{}, false, fmt.Errorf("config: stat %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		cfg, err := Load(path)
		if err != nil {
			return Config{}, false, err
		}
		return cfg, true, nil
	}
	return Config{}, false, nil
}

// Parse decodes a configuration document. JSON (with comments and trailing
// commas) is tried first, then YAML.
func Parse(data []byte, source string) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("config: file %s is empty", source)
	}

	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		cfg = Config{}
		if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr != nil {
			return Config{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
		}
	}

	cfg.Source = source
	cfg.normalise()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", source, err)
	}
	return cfg, nil
}

// Validate checks delimiters, renderer and sanitize policy names.
func (c Config) Validate() error {
	if _, err := c.PlaceholderDelimiters(); err != nil {
		return err
	}
	switch c.Renderer {
	case "", "html", "json":
	default:
		return fmt.Errorf("unknown renderer %q", c.Renderer)
	}
	if _, err := sanitize.Lookup(c.Sanitize); err != nil {
		return err
	}
	if c.MaxDepth < 0 {
		return errors.New("maxDepth must not be negative")
	}
	return nil
}

// PlaceholderDelimiters converts the delimiter list.
func (c Config) PlaceholderDelimiters() (placeholder.Delimiters, error) {
	return placeholder.ParseDelimiters(c.Delimiters)
}

func (c *Config) normalise() {
	c.Renderer = strings.ToLower(strings.TrimSpace(c.Renderer))
	c.Sanitize = strings.ToLower(strings.TrimSpace(c.Sanitize))
	c.Layout.Dir = strings.TrimSpace(c.Layout.Dir)
	c.Layout.Name = strings.TrimSpace(c.Layout.Name)

	libraries := make([]string, 0, len(c.Libraries))
	for _, lib := range c.Libraries {
		if trimmed := strings.TrimSpace(lib); trimmed != "" {
			libraries = append(libraries, trimmed)
		}
	}
	c.Libraries = libraries
}

func (c *Config) resolvePaths(base string) {
	for idx, lib := range c.Libraries {
		c.Libraries[idx] = resolve(base, lib)
	}
	if c.Layout.Dir != "" {
		c.Layout.Dir = resolve(base, c.Layout.Dir)
	}
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return filepath.Join(base, p)
}
