package authoring

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"bijbelquiz.app/backend/internal/logger"
	"bijbelquiz.app/backend/internal/questionbank"
	"bijbelquiz.app/backend/internal/quiz"
)

var (
	ErrValidation        = errors.New("required fields are missing")
	ErrNoBackup          = errors.New("no backup found")
	ErrEmptyList         = errors.New("no questions to export")
	ErrClearNotRequested = errors.New("clear was not requested")
	ErrUnknownType       = errors.New("unknown question type")
	ErrUnknownField      = errors.New("unknown field")
	ErrInvalidOption     = errors.New("invalid option")
)

// Messages shown to the author.
const (
	MsgAdded        = "Vraag toegevoegd!"
	MsgMissing      = "Vul alle verplichte velden in."
	MsgRestored     = "Backup hersteld!"
	MsgNoBackup     = "Geen backup gevonden."
	MsgCleared      = "Alle vragen verwijderd!"
	MsgNothingToGet = "Geen vragen toegevoegd!"
	MsgDownload     = "Download gestart!"
	MsgExportFailed = "Download mislukt."
	MsgSaveFailed   = "Backup opslaan mislukt."
	MsgStaleBackup  = "Download gestart, maar de backup kon niet worden gewist."
)

// Controller drives the authoring form. It owns the session question list;
// nothing else mutates it. Every error it returns has already been shown to
// the author through the Notifier, so callers may ignore it.
type Controller struct {
	backup   *Backup
	notifier Notifier
	exporter Exporter

	current    quiz.Type
	form       *Form
	difficulty string
	questions  []quiz.Question
	confirming bool
}

// NewController restores the last selected type and, when a backup exists,
// the question list of the previous session.
func NewController(backup *Backup, notifier Notifier, exporter Exporter) *Controller {
	c := &Controller{
		backup:     backup,
		notifier:   notifier,
		exporter:   exporter,
		current:    quiz.TypeMultipleChoice,
		difficulty: DifficultyField().Options[0],
		questions:  []quiz.Question{},
	}
	if t, ok := backup.LoadType(); ok {
		c.current = t
	}
	c.form = NewForm(RenderFields(c.current))

	if questions, ok := backup.Load(); ok {
		c.questions = questions
		c.notifier.Notify(MsgRestored, false)
	}
	return c
}

func (c *Controller) Type() quiz.Type { return c.current }
func (c *Controller) Fields() []FieldSpec { return c.form.Fields() }
func (c *Controller) Value(id string) string { return c.form.Value(id) }
func (c *Controller) Difficulty() string { return c.difficulty }
func (c *Controller) Count() int { return len(c.questions) }
func (c *Controller) ConfirmingClear() bool { return c.confirming }
func (c *Controller) Questions() []quiz.Question { return slices.Clone(c.questions) }

// ChangeType renders a fresh field set for t, dropping every entered value.
func (c *Controller) ChangeType(t quiz.Type) error {
	if _, ok := quiz.ParseType(string(t)); !ok {
		c.notifier.Notify(fmt.Sprintf("Onbekend vraagtype: %s", t), true)
		return fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	c.current = t
	c.form = NewForm(RenderFields(t))
	c.saveType()
	return nil
}

func (c *Controller) SetField(id, value string) error {
	return c.form.Set(id, value)
}

func (c *Controller) SetDifficulty(value string) error {
	if !slices.Contains(DifficultyField().Options, value) {
		return fmt.Errorf("%w: difficulty %q", ErrInvalidOption, value)
	}
	c.difficulty = value
	return nil
}

// Submit validates the form and appends the question. On success the
// fields are reset while the selected type is kept.
func (c *Controller) Submit() error {
	q, ok := c.candidate()
	if !ok {
		c.notifier.Notify(MsgMissing, true)
		return ErrValidation
	}
	if err := quiz.Validate(q); err != nil {
		logger.Log.Debug("rejected question", zap.Error(err))
		c.notifier.Notify(MsgMissing, true)
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	c.questions = append(c.questions, q)
	c.save()
	c.notifier.Notify(MsgAdded, false)

	c.form = NewForm(RenderFields(c.current))
	c.difficulty = DifficultyField().Options[0]
	c.saveType()
	return nil
}

func (c *Controller) candidate() (quiz.Question, bool) {
	difficulty, _ := strconv.Atoi(c.difficulty)
	prompt := c.form.Value(FieldPrompt)
	answer := c.form.Value(FieldCorrectAnswer)

	switch c.current {
	case quiz.TypeMultipleChoice, quiz.TypeFillInTheBlank:
		distractors := make([]string, len(distractorFields))
		for i, id := range distractorFields {
			distractors[i] = c.form.Value(id)
		}
		q := quiz.NewChoice(c.current, prompt, answer, distractors, difficulty)
		if q.Prompt == "" || q.CorrectAnswer == "" || slices.Contains(q.Distractors, "") {
			return q, false
		}
		return q, true
	case quiz.TypeTrueFalse:
		q := quiz.NewTrueFalse(prompt, answer, difficulty)
		if q.Prompt == "" || answer == "" {
			return q, false
		}
		return q, true
	}
	return quiz.Question{}, false
}

// RequestClear opens the confirmation step of "clear all".
func (c *Controller) RequestClear() { c.confirming = true }

func (c *Controller) CancelClear() { c.confirming = false }

// ConfirmClear empties the list. It only acts after RequestClear.
func (c *Controller) ConfirmClear() error {
	if !c.confirming {
		return ErrClearNotRequested
	}
	c.confirming = false
	c.questions = []quiz.Question{}
	c.save()
	c.notifier.Notify(MsgCleared, false)
	return nil
}

// Restore replaces the session list with the backup.
func (c *Controller) Restore() error {
	questions, ok := c.backup.Load()
	if !ok {
		c.notifier.Notify(MsgNoBackup, true)
		return ErrNoBackup
	}
	c.questions = questions
	c.notifier.Notify(MsgRestored, false)
	return nil
}

// Download exports the list as indented JSON and then starts a new batch:
// the list and its backup are emptied once the export succeeded.
func (c *Controller) Download() error {
	if len(c.questions) == 0 {
		c.notifier.Notify(MsgNothingToGet, true)
		return ErrEmptyList
	}
	data, err := questionbank.Encode(c.questions)
	if err != nil {
		c.notifier.Notify(MsgExportFailed, true)
		return err
	}
	if err := c.exporter.Export(ExportFilename, data); err != nil {
		logger.Log.Error("export failed", zap.Error(err))
		c.notifier.Notify(MsgExportFailed, true)
		return fmt.Errorf("export: %w", err)
	}
	c.notifier.Notify(MsgDownload, false)

	c.questions = []quiz.Question{}
	if err := c.backup.Save(c.questions); err != nil {
		logger.Log.Error("clearing backup after export failed", zap.Error(err))
		c.notifier.Notify(MsgStaleBackup, true)
	}
	return nil
}

func (c *Controller) save() {
	if err := c.backup.Save(c.questions); err != nil {
		logger.Log.Error("saving question backup failed", zap.Error(err))
		c.notifier.Notify(MsgSaveFailed, true)
	}
}

func (c *Controller) saveType() {
	if err := c.backup.SaveType(c.current); err != nil {
		logger.Log.Warn("saving last question type failed", zap.Error(err))
		c.notifier.Notify(MsgSaveFailed, true)
	}
}
