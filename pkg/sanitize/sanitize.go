// Package sanitize cleans rendered markup with bluemonday policies. Partial
// arguments are copied into output verbatim, so pages built from untrusted
// attribute values should pass through one of these policies.
package sanitize

import (
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Policy names accepted by Lookup.
const (
	PolicyNone   = "none"
	PolicyUGC    = "ugc"
	PolicyStrict = "strict"
)

// Sanitizer cleans a rendered document.
type Sanitizer interface {
	Sanitize(html []byte) []byte
}

type policySanitizer struct {
	once   sync.Once
	build  func() *bluemonday.Policy
	policy *bluemonday.Policy
}

func (s *policySanitizer) Sanitize(html []byte) []byte {
	s.once.Do(func() {
		s.policy = s.build()
	})
	return s.policy.SanitizeBytes(html)
}

var (
	ugc    = &policySanitizer{build: bluemonday.UGCPolicy}
	strict = &policySanitizer{build: bluemonday.StrictPolicy}
)

// UGC keeps common formatting, links and images while stripping scripts,
// event handlers and unsafe URLs.
func UGC() Sanitizer { return ugc }

// Strict removes every element and keeps only text.
func Strict() Sanitizer { return strict }

// Lookup returns the sanitizer for a policy name. "none" and the empty string
// return nil, meaning no sanitising.
func Lookup(name string) (Sanitizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyNone:
		return nil, nil
	case PolicyUGC:
		return UGC(), nil
	case PolicyStrict:
		return Strict(), nil
	default:
		return nil, fmt.Errorf("sanitize: unknown policy %q", name)
	}
}
