// Package placeholder expands delimiter-wrapped names inside strings using a
// flat binding of names to values.
package placeholder

import (
	"errors"
	"strings"
)

// Default delimiters used when none are configured.
const (
	DefaultOpening = "{{"
	DefaultClosing = "}}"
)

// Delimiters holds the opening and closing tokens around a placeholder name.
type Delimiters struct {
	Opening string
	Closing string
}

// DefaultDelimiters returns the `{{` / `}}` pair.
func DefaultDelimiters() Delimiters {
	return Delimiters{Opening: DefaultOpening, Closing: DefaultClosing}
}

// ParseDelimiters converts the `[open, close]` list form used by configuration
// files. An empty list yields the defaults.
func ParseDelimiters(values []string) (Delimiters, error) {
	if len(values) == 0 {
		return DefaultDelimiters(), nil
	}
	if len(values) != 2 {
		return Delimiters{}, errors.New("placeholder: delimiters must list exactly an opening and a closing token")
	}
	delims := Delimiters{Opening: values[0], Closing: values[1]}
	if err := delims.Validate(); err != nil {
		return Delimiters{}, err
	}
	return delims, nil
}

// Validate reports whether both tokens are usable.
func (d Delimiters) Validate() error {
	if d.Opening == "" {
		return errors.New("placeholder: opening delimiter is required")
	}
	if d.Closing == "" {
		return errors.New("placeholder: closing delimiter is required")
	}
	return nil
}

// Binding maps placeholder names to values. A name bound to an empty value is
// treated as unbound.
type Binding map[string]string

// Set binds name to value, removing the name when value is empty.
func (b Binding) Set(name, value string) {
	if value == "" {
		delete(b, name)
		return
	}
	b[name] = value
}

// Lookup returns the bound value for name.
func (b Binding) Lookup(name string) (string, bool) {
	value, ok := b[name]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Expand replaces every `opening + name + closing` occurrence in text whose
// trimmed name is bound. Unbound names and unterminated openings are copied
// verbatim, and substituted values are not scanned again.
func Expand(text string, binding Binding, delims Delimiters) string {
	if text == "" || delims.Opening == "" || delims.Closing == "" {
		return text
	}
	if !strings.Contains(text, delims.Opening) {
		return text
	}

	var out strings.Builder
	out.Grow(len(text))

	rest := text
	for {
		start := strings.Index(rest, delims.Opening)
		if start < 0 {
			out.WriteString(rest)
			break
		}
		afterOpen := rest[start+len(delims.Opening):]
		end := strings.Index(afterOpen, delims.Closing)
		if end < 0 {
			out.WriteString(rest)
			break
		}

		inner := afterOpen[:end]
		if strings.Contains(inner, delims.Opening) {
			// a later opening is closer to the closing token
			out.WriteString(rest[:start+len(delims.Opening)])
			rest = afterOpen
			continue
		}

		name := strings.TrimSpace(inner)
		out.WriteString(rest[:start])
		if value, ok := binding.Lookup(name); ok && name != "" {
			out.WriteString(value)
		} else {
			out.WriteString(rest[start : start+len(delims.Opening)+end+len(delims.Closing)])
		}
		rest = afterOpen[end+len(delims.Closing):]
	}
	return out.String()
}

// Expander applies Expand with a fixed delimiter pair.
type Expander struct {
	delims Delimiters
}

// NewExpander validates delims and returns an Expander bound to them.
func NewExpander(delims Delimiters) (Expander, error) {
	if err := delims.Validate(); err != nil {
		return Expander{}, err
	}
	return Expander{delims: delims}, nil
}

// Delimiters returns the configured pair.
func (e Expander) Delimiters() Delimiters {
	return e.delims
}

// Expand substitutes bound placeholders in text.
func (e Expander) Expand(text string, binding Binding) string {
	return Expand(text, binding, e.delims)
}
