package authoring

import (
	"fmt"
	"slices"
)

// Form holds the current values of a rendered field set.
type Form struct {
	fields []FieldSpec
	values map[string]string
}

// NewForm starts every text field blank and every select on its first option.
func NewForm(fields []FieldSpec) *Form {
	f := &Form{fields: fields, values: make(map[string]string, len(fields))}
	for _, spec := range fields {
		f.values[spec.ID] = initialValue(spec)
	}
	return f
}

func initialValue(spec FieldSpec) string {
	if spec.Kind == InputSelect && len(spec.Options) > 0 {
		return spec.Options[0]
	}
	return ""
}

func (f *Form) Fields() []FieldSpec { return slices.Clone(f.fields) }

func (f *Form) Field(id string) (FieldSpec, bool) {
	for _, spec := range f.fields {
		if spec.ID == id {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

func (f *Form) Value(id string) string { return f.values[id] }

func (f *Form) Set(id, value string) error {
	spec, ok := f.Field(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, id)
	}
	if spec.Kind == InputSelect && value != "" && !slices.Contains(spec.Options, value) {
		return fmt.Errorf("%w: %q is not an option of %q", ErrInvalidOption, value, id)
	}
	f.values[id] = value
	return nil
}
