// Package references parses and repairs the biblical references attached to
// bank questions.
package references

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"bijbelquiz.app/backend/internal/questionbank"
	"bijbelquiz.app/backend/internal/quiz"
)

// Reference is a parsed "Book chapter[:verse[-verse]]" string.
// Zero verses mean the whole chapter.
type Reference struct {
	Book       string
	Chapter    int
	StartVerse int
	EndVerse   int
}

var (
	enBook   = regexp.MustCompile(`^(\S+(?:\s+\S+)*)\s+(\d+)$`)
	enSecond = regexp.MustCompile(`^\d+`)
)

// Parse reads a reference. It accepts "Book 3", "Book 3:16", "Book 3:16-18",
// "Book 2 en 3" and a bare known book name.
func Parse(s string) (Reference, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Reference{}, false
	}

	if first, second, ok := strings.Cut(s, " en "); ok && !strings.Contains(second, " en ") {
		m := enBook.FindStringSubmatch(strings.TrimSpace(first))
		if m != nil && enSecond.MatchString(strings.TrimSpace(second)) {
			chapter, _ := strconv.Atoi(m[2])
			return Reference{Book: m[1], Chapter: chapter}, true
		}
	}

	i := strings.LastIndex(s, " ")
	if i < 0 {
		if _, ok := Lookup(s); ok {
			return Reference{Book: s, Chapter: 1}, true
		}
		return Reference{}, false
	}

	ref := Reference{Book: s[:i]}
	chapter, verses, hasVerses := strings.Cut(s[i+1:], ":")
	n, err := strconv.Atoi(chapter)
	if err != nil || n <= 0 {
		return Reference{}, false
	}
	ref.Chapter = n
	if hasVerses {
		start, end, isRange := strings.Cut(verses, "-")
		ref.StartVerse = atoi(start)
		if isRange {
			ref.EndVerse = atoi(end)
		}
	}
	return ref, true
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalize folds diacritics and drops punctuation, so "Ezechiël" and
// "Ezechiel" compare equal.
func normalize(name string) string {
	folded, _, err := transform.String(folder, strings.TrimSpace(name))
	if err != nil {
		folded = name
	}
	folded = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			return r
		}
		return -1
	}, folded)
	return strings.TrimSpace(folded)
}

var normalizedBooks = func() map[string]int {
	m := make(map[string]int, len(bookNumbers))
	for name, n := range bookNumbers {
		m[normalize(name)] = n
	}
	return m
}()

// Lookup returns the book number of name, ignoring diacritics.
func Lookup(name string) (int, bool) {
	n, ok := normalizedBooks[normalize(name)]
	return n, ok
}

// Failure is a question whose reference names an unknown book.
type Failure struct {
	ID   string
	Book string
}

// Valid reports whether ref resolves to a known book. Empty references are valid.
func Valid(ref string) bool {
	if strings.TrimSpace(ref) == "" {
		return true
	}
	parsed, ok := Parse(ref)
	if !ok {
		return false
	}
	_, ok = Lookup(parsed.Book)
	return ok
}

// Check returns the questions with an unresolvable reference. Entries that
// cannot be parsed at all are reported with the raw reference as book.
func Check(questions []quiz.Question) []Failure {
	var failures []Failure
	for _, q := range questions {
		if Valid(q.BiblicalReference) {
			continue
		}
		id := q.ID
		if id == "" {
			id = "unknown"
		}
		book := strings.TrimSpace(q.BiblicalReference)
		if parsed, ok := Parse(q.BiblicalReference); ok {
			book = parsed.Book
		}
		failures = append(failures, Failure{ID: id, Book: book})
	}
	return failures
}

// Change records one rewritten reference.
type Change struct {
	ID  string
	Old string
	New string
}

// Update rewrites legacy book names in the reference of each entry and
// returns what changed. No other key of an entry is touched.
func Update(entries []questionbank.Entry) []Change {
	var changes []Change
	for i := range entries {
		old, ok := entries[i].String(questionbank.KeyReference)
		if !ok {
			continue
		}
		updated := Rewrite(old)
		if updated == old {
			continue
		}
		entries[i].SetString(questionbank.KeyReference, updated, false)
		id, _ := entries[i].String(questionbank.KeyID)
		changes = append(changes, Change{ID: id, Old: old, New: updated})
	}
	return changes
}

// Rewrite replaces a legacy book name in a single reference.
func Rewrite(ref string) string {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return ref
	}

	if first, second, ok := strings.Cut(trimmed, " en "); ok {
		m := enBook.FindStringSubmatch(strings.TrimSpace(first))
		if m == nil {
			return ref
		}
		if book := canonicalName(m[1]); book != m[1] {
			return book + " " + m[2] + " en " + strings.TrimSpace(second)
		}
		return ref
	}

	i := strings.LastIndex(trimmed, " ")
	if i < 0 {
		if book := canonicalName(trimmed); book != trimmed {
			return book
		}
		return ref
	}
	if book := canonicalName(trimmed[:i]); book != trimmed[:i] {
		return book + trimmed[i:]
	}
	return ref
}

// canonicalName maps a legacy spelling, exact match first, then case-insensitively.
func canonicalName(book string) string {
	if name, ok := legacyNames[book]; ok {
		return name
	}
	for legacy, name := range legacyNames {
		if strings.EqualFold(legacy, book) {
			return name
		}
	}
	return book
}
