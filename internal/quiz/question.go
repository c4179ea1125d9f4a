package quiz

import "strings"

// Type is the wire tag of a question kind in the questions file.
type Type string

const (
	TypeMultipleChoice Type = "mc"
	TypeFillInTheBlank Type = "fitb"
	TypeTrueFalse      Type = "tf"
)

// Canonical answers for true/false statements.
const (
	True  = "Waar"
	False = "Niet waar"
)

// BlankMarker marks the gap in a fill-in-the-blank prompt.
const BlankMarker = "_____"

// Types lists every question kind in form order.
var Types = []Type{TypeMultipleChoice, TypeFillInTheBlank, TypeTrueFalse}

func ParseType(s string) (Type, bool) {
	for _, t := range Types {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

func (t Type) Label() string {
	switch t {
	case TypeMultipleChoice:
		return "Meerkeuze"
	case TypeFillInTheBlank:
		return "Invulvraag"
	case TypeTrueFalse:
		return "Waar/Niet waar"
	}
	return string(t)
}

// DistractorCount is the number of wrong answers a question of this type carries.
func (t Type) DistractorCount() int {
	switch t {
	case TypeMultipleChoice, TypeFillInTheBlank:
		return 3
	case TypeTrueFalse:
		return 1
	}
	return 0
}

// Next returns the type that follows t in form order, wrapping around.
func (t Type) Next() Type {
	for i, v := range Types {
		if v == t {
			return Types[(i+1)%len(Types)]
		}
	}
	return Types[0]
}

// Question is one quiz item as stored in the questions file and in exported batches.
// ID and BiblicalReference are only present on questions that live in the bank.
type Question struct {
	ID                string   `json:"id,omitempty"`
	Prompt            string   `json:"vraag" validate:"notblank"`
	CorrectAnswer     string   `json:"juisteAntwoord" validate:"notblank"`
	Difficulty        int      `json:"moeilijkheidsgraad"`
	Type              Type     `json:"type" validate:"oneof=mc fitb tf"`
	Categories        []string `json:"categories"`
	Distractors       []string `json:"fouteAntwoorden" validate:"dive,notblank"`
	BiblicalReference string   `json:"biblicalReference,omitempty"`
}

// NewChoice builds a multiple-choice or fill-in-the-blank question from raw input.
func NewChoice(t Type, prompt, correct string, distractors []string, difficulty int) Question {
	trimmed := make([]string, len(distractors))
	for i, d := range distractors {
		trimmed[i] = strings.TrimSpace(d)
	}
	return Question{
		Prompt:        strings.TrimSpace(prompt),
		CorrectAnswer: strings.TrimSpace(correct),
		Difficulty:    difficulty,
		Type:          t,
		Categories:    []string{},
		Distractors:   trimmed,
	}
}

// NewTrueFalse builds a statement question. Any answer other than True is
// stored as False and the single distractor is always the opposite value.
func NewTrueFalse(prompt, answer string, difficulty int) Question {
	correct, wrong := False, True
	if strings.TrimSpace(answer) == True {
		correct, wrong = True, False
	}
	return Question{
		Prompt:        strings.TrimSpace(prompt),
		CorrectAnswer: correct,
		Difficulty:    difficulty,
		Type:          TypeTrueFalse,
		Categories:    []string{},
		Distractors:   []string{wrong},
	}
}

// Opposite returns the other canonical true/false answer.
func Opposite(answer string) string {
	if answer == True {
		return False
	}
	return True
}

func HasBlank(prompt string) bool { return strings.Contains(prompt, BlankMarker) }
