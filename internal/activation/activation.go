// Package activation checks app activation codes against a fixed allow-list.
package activation

import (
	"slices"
	"strings"
)

type Checker struct {
	codes []string
}

// NewChecker normalizes codes the same way lookups are normalized.
func NewChecker(codes []string) *Checker {
	c := &Checker{codes: make([]string, 0, len(codes))}
	for _, code := range codes {
		if n := Normalize(code); n != "" && !slices.Contains(c.codes, n) {
			c.codes = append(c.codes, n)
		}
	}
	return c
}

func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether code is on the list. Comparison ignores case and
// surrounding whitespace; an empty code is never valid.
func (c *Checker) Valid(code string) bool {
	n := Normalize(code)
	return n != "" && slices.Contains(c.codes, n)
}

func (c *Checker) Codes() []string {
	return slices.Clone(c.codes)
}
