// Package questionbank reads and maintains the app's questions file.
package questionbank

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bijbelquiz.app/backend/internal/quiz"
)

var ErrNotFound = errors.New("questions file not found")

// Bank is the questions file shipped with the app: a JSON array of questions.
type Bank struct {
	path string
	mu   sync.RWMutex
}

func New(path string) *Bank {
	return &Bank{path: path}
}

func (b *Bank) Path() string { return b.path }

// Raw returns the file contents untouched.
func (b *Bank) Raw() ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Load parses every entry of the file.
func (b *Bank) Load() ([]quiz.Question, error) {
	data, err := b.Raw()
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode parses a questions document, such as the bank or an exported batch.
func Decode(data []byte) ([]quiz.Question, error) {
	var questions []quiz.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if questions == nil {
		questions = []quiz.Question{}
	}
	return questions, nil
}

// Save replaces the file with questions.
func (b *Bank) Save(questions []quiz.Question) error {
	if questions == nil {
		questions = []quiz.Question{}
	}
	return b.write(questions)
}

// SaveEntries replaces the file with raw entries, keeping keys that
// quiz.Question does not model.
func (b *Bank) SaveEntries(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	return b.write(entries)
}

func (b *Bank) write(v any) error {
	data, err := Encode(v)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return os.WriteFile(b.path, data, 0644)
}

// MergeResult reports what Merge did with a batch.
type MergeResult struct {
	Added   int
	Skipped []string
}

// Merge appends a batch to existing. Every added entry gets a fresh id and
// an empty category list when it has none; entries whose prompt is already
// present are skipped. Existing entries are returned untouched.
func Merge(existing, batch []Entry) ([]Entry, MergeResult) {
	var res MergeResult
	seen := make(map[string]struct{}, len(existing)+len(batch))
	for _, e := range existing {
		prompt, _ := e.String(KeyPrompt)
		seen[promptKey(prompt)] = struct{}{}
	}

	merged := append([]Entry(nil), existing...)
	for _, e := range batch {
		prompt, _ := e.String(KeyPrompt)
		key := promptKey(prompt)
		if _, dup := seen[key]; dup {
			res.Skipped = append(res.Skipped, prompt)
			continue
		}
		seen[key] = struct{}{}

		e = e.clone()
		e.SetString(KeyID, uuid.New().String(), true)
		if raw, ok := e.values[KeyCategories]; !ok || string(raw) == "null" {
			e.set(KeyCategories, json.RawMessage("[]"), false)
		}
		merged = append(merged, e)
		res.Added++
	}
	return merged, res
}

func promptKey(prompt string) string {
	return strings.ToLower(strings.Join(strings.Fields(prompt), " "))
}

// TypeStat is the number of questions of one type.
type TypeStat struct {
	Type  quiz.Type
	Count int
}

// Stats counts questions per type, sorted by type.
func Stats(questions []quiz.Question) []TypeStat {
	counts := make(map[quiz.Type]int)
	for _, q := range questions {
		counts[q.Type]++
	}

	result := make([]TypeStat, 0, len(counts))
	for t, n := range counts {
		result = append(result, TypeStat{Type: t, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Type < result[j].Type
	})
	return result
}
