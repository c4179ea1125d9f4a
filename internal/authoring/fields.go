package authoring

import "bijbelquiz.app/backend/internal/quiz"

type InputKind string

const (
	InputText   InputKind = "text"
	InputSelect InputKind = "select"
)

// FieldSpec describes one input of the authoring form.
type FieldSpec struct {
	ID          string
	Label       string
	Kind        InputKind
	Required    bool
	Placeholder string
	Options     []string
}

// Field identifiers, shared with the browser form.
const (
	FieldPrompt        = "vraag"
	FieldCorrectAnswer = "juisteAntwoord"
	FieldDistractor1   = "fouteAntwoord1"
	FieldDistractor2   = "fouteAntwoord2"
	FieldDistractor3   = "fouteAntwoord3"
	FieldDifficulty    = "difficulty"
)

var distractorFields = []string{FieldDistractor1, FieldDistractor2, FieldDistractor3}

const (
	placeholderAnswer     = "Typ hier het juiste antwoord..."
	placeholderDistractor = "Typ hier een fout antwoord..."
)

// RenderFields returns the inputs for a question type, in display order.
// Unknown types render no fields.
func RenderFields(t quiz.Type) []FieldSpec {
	switch t {
	case quiz.TypeMultipleChoice:
		return append([]FieldSpec{
			{ID: FieldPrompt, Label: "Vraag:", Kind: InputText, Required: true, Placeholder: "Typ hier de vraag..."},
			{ID: FieldCorrectAnswer, Label: "Juiste antwoord:", Kind: InputText, Required: true, Placeholder: placeholderAnswer},
		}, distractorSpecs()...)
	case quiz.TypeFillInTheBlank:
		return append([]FieldSpec{
			{
				ID:          FieldPrompt,
				Label:       "Vraag (gebruik " + quiz.BlankMarker + " voor het invulveld):",
				Kind:        InputText,
				Required:    true,
				Placeholder: "Bijv. Mozes leidde het volk " + quiz.BlankMarker + " uit Egypte",
			},
			{ID: FieldCorrectAnswer, Label: "Juiste antwoord:", Kind: InputText, Required: true, Placeholder: placeholderAnswer},
		}, distractorSpecs()...)
	case quiz.TypeTrueFalse:
		return []FieldSpec{
			{ID: FieldPrompt, Label: "Stelling:", Kind: InputText, Required: true, Placeholder: "Typ hier de stelling..."},
			{ID: FieldCorrectAnswer, Label: "Is dit waar?", Kind: InputSelect, Required: true, Options: []string{quiz.True, quiz.False}},
		}
	}
	return nil
}

func distractorSpecs() []FieldSpec {
	specs := make([]FieldSpec, len(distractorFields))
	for i, id := range distractorFields {
		label := ""
		if i == 0 {
			label = "Foute antwoorden:"
		}
		specs[i] = FieldSpec{ID: id, Label: label, Kind: InputText, Required: true, Placeholder: placeholderDistractor}
	}
	return specs
}

// DifficultyField is the difficulty selector. It sits outside the
// type-specific fields and keeps its value across type switches.
func DifficultyField() FieldSpec {
	return FieldSpec{
		ID:       FieldDifficulty,
		Label:    "Moeilijkheidsgraad:",
		Kind:     InputSelect,
		Required: true,
		Options:  []string{"1", "2", "3", "4", "5"},
	}
}
