package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bijbelquiz.app/backend/internal/questionbank"
)

const bankJSON = `[
  {
    "id": "q1",
    "vraag": "Wie bouwde de ark?",
    "juisteAntwoord": "Noach",
    "moeilijkheidsgraad": 1,
    "type": "mc",
    "categories": [],
    "fouteAntwoorden": ["Mozes", "Abraham", "David"],
    "biblicalReference": "Genesis 6:14"
  },
  {
    "id": "q2",
    "vraag": "Welke psalm begint met 'De HEER is mijn herder'?",
    "juisteAntwoord": "Psalm 23",
    "moeilijkheidsgraad": 2,
    "type": "mc",
    "categories": [],
    "fouteAntwoorden": ["Psalm 1", "Psalm 91", "Psalm 121"],
    "biblicalReference": "Psalm 23"
  }
]`

const batchJSON = `[
  {
    "vraag": "Jona zat in een vis",
    "juisteAntwoord": "Waar",
    "moeilijkheidsgraad": 1,
    "type": "tf",
    "categories": [],
    "fouteAntwoorden": ["Niet waar"]
  },
  {
    "vraag": "Wie bouwde de ark?",
    "juisteAntwoord": "Noach",
    "moeilijkheidsgraad": 1,
    "type": "mc",
    "categories": [],
    "fouteAntwoorden": ["Mozes", "Abraham", "David"]
  }
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "bijbelquiz", cmd.Use)
	for _, name := range []string{"serve", "author", "questions"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	questions, _, err := cmd.Find([]string{"questions"})
	require.NoError(t, err)
	assert.Len(t, questions.Commands(), 6)
}

func TestQuestionsStats(t *testing.T) {
	bank := writeFile(t, t.TempDir(), "questions.json", bankJSON)

	out, err := run(t, "questions", "stats", "--file", bank)

	require.NoError(t, err)
	assert.Contains(t, out, "2 questions")
	assert.Contains(t, out, "Meerkeuze")
}

func TestQuestionsValidate(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "questions", "validate", writeFile(t, dir, "batch.json", batchJSON))
	require.NoError(t, err)
	assert.Contains(t, out, "2 questions")

	out, err = run(t, "questions", "validate", "--file", writeFile(t, dir, "questions.json", bankJSON))
	require.Error(t, err)
	assert.Contains(t, out, "q2")
	assert.Contains(t, err.Error(), "1 error(s)")
}

func TestQuestionsMerge(t *testing.T) {
	dir := t.TempDir()
	bank := writeFile(t, dir, "questions.json", bankJSON)

	out, err := run(t, "questions", "merge", "--file", bank, writeFile(t, dir, "batch.json", batchJSON))

	require.NoError(t, err)
	assert.Contains(t, out, "added 1 question(s)")
	assert.Contains(t, out, "skipped duplicate: Wie bouwde de ark?")

	merged, err := questionbank.New(bank).Load()
	require.NoError(t, err)
	require.Len(t, merged, 3)
	assert.Equal(t, "Jona zat in een vis", merged[2].Prompt)
	assert.NotEmpty(t, merged[2].ID)
}

func TestQuestionsMerge_IntoMissingFile(t *testing.T) {
	dir := t.TempDir()
	bank := filepath.Join(dir, "questions.json")

	_, err := run(t, "questions", "merge", "--file", bank, writeFile(t, dir, "batch.json", batchJSON))

	require.NoError(t, err)
	merged, err := questionbank.New(bank).Load()
	require.NoError(t, err)
	assert.Len(t, merged, 2)
}

func TestQuestionsRefs(t *testing.T) {
	dir := t.TempDir()
	bank := writeFile(t, dir, "questions.json", bankJSON)

	out, err := run(t, "questions", "refs-check", "--file", bank)
	require.NoError(t, err)
	assert.Equal(t, "q2: Psalm\n", out)

	out, err = run(t, "questions", "refs-update", "--file", bank)
	require.NoError(t, err)
	assert.Contains(t, out, "Updated: Psalm 23 → Psalmen 23")

	backup, err := os.ReadFile(bank + ".backup")
	require.NoError(t, err)
	assert.Equal(t, bankJSON, string(backup))

	out, err = run(t, "questions", "refs-check", "--file", bank)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestQuestionsRefsUpdate_NoBackup(t *testing.T) {
	bank := writeFile(t, t.TempDir(), "questions.json", bankJSON)

	_, err := run(t, "questions", "refs-update", "--no-backup", "--file", bank)

	require.NoError(t, err)
	assert.NoFileExists(t, bank+".backup")
}

func TestQuestionsSheet(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "vragen.pdf")

	_, err := run(t, "questions", "sheet", "-o", output, writeFile(t, dir, "batch.json", batchJSON))

	require.NoError(t, err)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

const annotatedBankJSON = `[
  {
    "id": "q1",
    "vraag": "Wie zei: \"Ik & mijn huis, wij zullen de HEER dienen\"?",
    "juisteAntwoord": "Jozua",
    "moeilijkheidsgraad": "3",
    "type": "mc",
    "fouteAntwoorden": ["Mozes", "Kaleb", "Aäron"],
    "biblicalReference": "Jozua 24:15",
    "uitleg": "x"
  },
  {
    "id": "q2",
    "vraag": "Welke psalm begint met 'De HEER is mijn herder'?",
    "juisteAntwoord": "Psalm 23",
    "moeilijkheidsgraad": 2,
    "type": "mc",
    "categories": ["Psalmen"],
    "fouteAntwoorden": ["Psalm 1", "Psalm 91", "Psalm 121"],
    "biblicalReference": "Psalm 23",
    "uitleg": "y"
  }
]`

func loadEntries(t *testing.T, path string) []questionbank.Entry {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `Ik & mijn huis`)
	entries, err := questionbank.DecodeEntries(data)
	require.NoError(t, err)
	return entries
}

func TestQuestionsRewrites_KeepUnknownKeys(t *testing.T) {
	tests := []struct {
		name      string
		args      func(dir, bank string) []string
		wantCount int
		wantOut   string
	}{
		{
			name:      "refs-update",
			args:      func(dir, bank string) []string { return []string{"questions", "refs-update", "--file", bank} },
			wantCount: 2,
			wantOut:   "Updated: Psalm 23 → Psalmen 23",
		},
		{
			name: "merge",
			args: func(dir, bank string) []string {
				return []string{"questions", "merge", "--file", bank, writeFile(t, dir, "batch.json", batchJSON)}
			},
			wantCount: 4,
			wantOut:   "added 2 question(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			bank := writeFile(t, dir, "questions.json", annotatedBankJSON)

			out, err := run(t, tt.args(dir, bank)...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.wantOut)

			entries := loadEntries(t, bank)
			require.Len(t, entries, tt.wantCount)
			for i, want := range []string{"x", "y"} {
				uitleg, ok := entries[i].String("uitleg")
				require.True(t, ok)
				assert.Equal(t, want, uitleg)
			}
			difficulty, ok := entries[0].String("moeilijkheidsgraad")
			require.True(t, ok)
			assert.Equal(t, "3", difficulty)
			assert.False(t, entries[0].Has("categories"))

			backup, err := os.ReadFile(bank + ".backup")
			require.NoError(t, err)
			assert.Equal(t, annotatedBankJSON, string(backup))
		})
	}
}

func TestQuestionsRefsCheck_Max(t *testing.T) {
	cmd := newRootCommand()
	refsCheck, _, err := cmd.Find([]string{"questions", "refs-check"})
	require.NoError(t, err)
	assert.Equal(t, "100", refsCheck.Flags().Lookup("max").DefValue)

	bank := writeFile(t, t.TempDir(), "questions.json", bankJSON)
	out, err := run(t, "questions", "refs-check", "--max", "1", "--file", bank)
	require.NoError(t, err)
	assert.Empty(t, out)
}
