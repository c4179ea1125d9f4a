package quiz

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var ErrInvalid = errors.New("invalid question")

type checker struct {
	validate *validator.Validate
	trans    ut.Translator
}

var getChecker = sync.OnceValues(newChecker)

func newChecker() (*checker, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(jsonTagName)
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("failed to register notblank validation: %w", err)
	}
	validate.RegisterStructValidation(questionShape, Question{})

	messages := map[string]string{
		"notblank":        "{0} must not be blank",
		"distractorcount": "{0} has the wrong number of answers for this type",
		"truefalse":       "{0} must be \"" + True + "\" or \"" + False + "\"",
		"opposite":        "{0} must be the opposite of the correct answer",
	}
	for tag, text := range messages {
		tag, text := tag, text
		if err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		}); err != nil {
			return nil, fmt.Errorf("failed to register %s translation: %w", tag, err)
		}
	}

	return &checker{validate: validate, trans: trans}, nil
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// questionShape enforces the per-type answer layout.
func questionShape(sl validator.StructLevel) {
	q := sl.Current().Interface().(Question)
	want := q.Type.DistractorCount()
	if want > 0 && len(q.Distractors) != want {
		sl.ReportError(q.Distractors, "fouteAntwoorden", "Distractors", "distractorcount", "")
		return
	}
	if q.Type != TypeTrueFalse {
		return
	}
	if q.CorrectAnswer != True && q.CorrectAnswer != False {
		sl.ReportError(q.CorrectAnswer, "juisteAntwoord", "CorrectAnswer", "truefalse", "")
		return
	}
	if q.Distractors[0] != Opposite(q.CorrectAnswer) {
		sl.ReportError(q.Distractors, "fouteAntwoorden", "Distractors", "opposite", "")
	}
}

// Validate checks q against the invariants of its type. The returned error
// wraps ErrInvalid and lists every failing field.
func Validate(q Question) error {
	c, err := getChecker()
	if err != nil {
		return err
	}
	err = c.validate.Struct(q)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Translate(c.trans))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
