// Package normalize canonicalizes search terms before they reach the API
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 control characters become spaces
// 3 Decompose and remove combining marks
// 4 Unicode NFKC normalization
// 5 Case folding
// 6 Remove zero-width format characters
// 7 Width fold fullwidth to ASCII
// 8 Collapse whitespace to single spaces, trim, cap length
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// MaxTermRunes bounds a normalized term
const MaxTermRunes = 200

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct {
	max int
}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order mirrors the documented pipeline
		return transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,
		)
	},
}

// New constructs a Normalizer; limit <= 0 uses MaxTermRunes
func New(limit int) *Normalizer {
	if limit <= 0 {
		limit = MaxTermRunes
	}
	return &Normalizer{max: limit}
}

var std = New(0)

// Term normalizes s with the default limits
func Term(s string) string { return std.Normalize(s) }

// Normalize returns the normalized form of s following the pipeline described above
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToValidUTF8(s, "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return truncate(strings.Join(strings.Fields(ns), " "), n.max)
}

// truncate cuts s to limit runes and drops a trailing space the cut exposed
func truncate(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return strings.TrimRight(s[:i], " ")
		}
		count++
	}
	return s
}
