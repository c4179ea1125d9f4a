package questionbank

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bijbelquiz.app/backend/internal/quiz"
)

const sample = `[
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
    "vraag": "Jona zat in een vis",
    "juisteAntwoord": "Waar",
    "moeilijkheidsgraad": 2,
    "type": "tf",
    "categories": [],
    "fouteAntwoorden": ["Niet waar"]
  }
]`

func writeBank(t *testing.T, content string) *Bank {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return New(path)
}

func TestBank_Raw(t *testing.T) {
	b := writeBank(t, sample)

	data, err := b.Raw()
	require.NoError(t, err)
	assert.Equal(t, sample, string(data))

	_, err = New(filepath.Join(t.TempDir(), "missing.json")).Raw()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBank_Load(t *testing.T) {
	questions, err := writeBank(t, sample).Load()
	require.NoError(t, err)

	require.Len(t, questions, 2)
	assert.Equal(t, "Genesis 6:14", questions[0].BiblicalReference)
	assert.Equal(t, quiz.TypeTrueFalse, questions[1].Type)

	_, err = writeBank(t, `{"not": "an array"}`).Load()
	assert.Error(t, err)
}

func TestBank_SaveRoundTrip(t *testing.T) {
	b := writeBank(t, sample)
	questions, err := b.Load()
	require.NoError(t, err)

	require.NoError(t, b.Save(questions))

	reloaded, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, questions, reloaded)

	raw, err := b.Raw()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  {\n    \"id\": \"q1\"")
}

func TestMerge(t *testing.T) {
	existing, err := DecodeEntries([]byte(sample))
	require.NoError(t, err)
	batch, err := DecodeEntries([]byte(`[
		{"vraag": "  jona ZAT in een  vis ", "juisteAntwoord": "Waar", "type": "tf"},
		{"vraag": "Mozes leidde het volk _____ uit Egypte", "juisteAntwoord": "Israël", "type": "fitb", "categories": null},
		{"vraag": "Mozes leidde het volk _____ uit Egypte", "juisteAntwoord": "Israël", "type": "fitb"}
	]`))
	require.NoError(t, err)

	merged, res := Merge(existing, batch)

	assert.Equal(t, 1, res.Added)
	assert.Equal(t, []string{"  jona ZAT in een  vis ", "Mozes leidde het volk _____ uit Egypte"}, res.Skipped)
	require.Len(t, merged, 3)
	assert.Equal(t, existing, merged[:2])

	added := merged[2]
	assert.Equal(t, []string{KeyID, "vraag", "juisteAntwoord", "type", KeyCategories}, added.Keys())
	id, ok := added.String(KeyID)
	require.True(t, ok)
	assert.NotEmpty(t, id)
	assert.False(t, batch[1].Has(KeyID))

	data, err := Encode(merged[2:])
	require.NoError(t, err)
	var questions []quiz.Question
	require.NoError(t, json.Unmarshal(data, &questions))
	assert.Equal(t, "Israël", questions[0].CorrectAnswer)
	assert.Equal(t, []string{}, questions[0].Categories)
}

func TestBank_SaveEntriesKeepsUnknownKeys(t *testing.T) {
	const doc = `[
  {
    "vraag": "Wie schreef \"Psalm 23\" & <Psalm 51>?",
    "id": "q1",
    "moeilijkheidsgraad": "3",
    "uitleg": {"bron": "x"},
    "biblicalReference": "Psalm 23"
  }
]
`
	b := writeBank(t, doc)
	raw, err := b.Raw()
	require.NoError(t, err)
	entries, err := DecodeEntries(raw)
	require.NoError(t, err)

	require.NoError(t, b.SaveEntries(entries))

	saved, err := b.Raw()
	require.NoError(t, err)
	assert.Contains(t, string(saved), `& <Psalm 51>`)
	assert.NotContains(t, string(saved), `\u0026`)
	assert.JSONEq(t, doc, string(saved))

	reloaded, err := DecodeEntries(saved)
	require.NoError(t, err)
	assert.Equal(t, []string{"vraag", "id", "moeilijkheidsgraad", "uitleg", "biblicalReference"}, reloaded[0].Keys())
}

func TestDecodeEntries(t *testing.T) {
	entries, err := DecodeEntries([]byte("null"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = DecodeEntries([]byte(`["not an object"]`))
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = DecodeEntries([]byte(`{"not": "an array"}`))
	assert.Error(t, err)
}

func TestEntry_SetString(t *testing.T) {
	var e Entry
	e.SetString(KeyPrompt, "Wie bouwde de ark?", false)
	e.SetString(KeyID, "q9", true)
	e.SetString(KeyPrompt, "Wie bouwde de ark & waarom?", true)

	assert.Equal(t, []string{KeyID, KeyPrompt}, e.Keys())
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "q9", "vraag": "Wie bouwde de ark & waarom?"}`, string(data))

	_, ok := e.String("missing")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	questions, err := Decode([]byte(sample))
	require.NoError(t, err)
	questions = append(questions, quiz.NewTrueFalse("De aarde is plat", quiz.False, 1))

	assert.Equal(t, []TypeStat{
		{Type: quiz.TypeMultipleChoice, Count: 1},
		{Type: quiz.TypeTrueFalse, Count: 2},
	}, Stats(questions))
}
