// Package normalize cleans user supplied text and folds identifiers for case-insensitive keys
// Text pipeline
// 1 UTF-8 repair drop invalid bytes
// 2 Strip control characters except \n \r \t
// 3 Unicode NFC composition
// 4 Trim surrounding whitespace
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UnknownLabel replaces an empty label when counting
const UnknownLabel = "unknown"

// pools of fresh transformer chains; transformers hold state and are not goroutine safe
var (
	textPool = sync.Pool{
		New: func() any {
			return transform.Chain(
				runes.Remove(runes.Predicate(isControl)),
				norm.NFC,
			)
		},
	}
	foldPool = sync.Pool{
		New: func() any {
			return transform.Chain(norm.NFC, cases.Fold())
		},
	}
)

// isControl matches C0 and C1 controls and DEL but keeps common whitespace
func isControl(r rune) bool {
	switch r {
	case '\n', '\r', '\t':
		return false
	}
	return unicode.IsControl(r)
}

// Text returns s with invalid bytes and control characters removed, composed to NFC and trimmed
func Text(s string) string {
	if s == "" {
		return ""
	}
	if isCleanASCII(s) {
		return strings.TrimSpace(s)
	}
	s = strings.ToValidUTF8(s, "")
	out := run(&textPool, s)
	return strings.TrimSpace(out)
}

// Key returns the case folded form of s used to group client ids and labels
func Key(s string) string {
	s = Text(s)
	if s == "" {
		return ""
	}
	return run(&foldPool, s)
}

// Label folds s like Key and maps an empty result to UnknownLabel
func Label(s string) string {
	if k := Key(s); k != "" {
		return k
	}
	return UnknownLabel
}

// Equal reports whether a and b fold to the same key
func Equal(a, b string) bool { return Key(a) == Key(b) }

func run(p *sync.Pool, s string) string {
	tr := p.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	p.Put(tr)
	if err != nil {
		return s
	}
	return out
}

// isCleanASCII is the fast path for printable ASCII input
func isCleanASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 || c == 0x7f || (c < 0x20 && c != '\n' && c != '\r' && c != '\t') {
			return false
		}
	}
	return true
}
