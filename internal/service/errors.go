package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"care-compliance/internal/evaluator"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidTransition is returned when a note cannot move to the requested status.
	ErrInvalidTransition = errors.New("invalid note status transition")
	// ErrNoteNotEditable is returned when editing a signed or locked note.
	ErrNoteNotEditable = errors.New("note is not editable")
	// ErrNoteIncomplete is returned when signing a note with an empty section.
	ErrNoteIncomplete = errors.New("note has empty sections")
	// ErrNoteExists is returned when a session already has a note.
	ErrNoteExists = errors.New("session already has a note")
	// ErrNotifierDisabled is returned when alerts are sent without a delivery channel.
	ErrNotifierDisabled = errors.New("alert delivery is not configured")
	// ErrValidation wraps every input validation failure.
	ErrValidation = errors.New("validation failed")
)

// ValidationError lists the invalid fields of an input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, problem := range e.Fields {
		parts = append(parts, field+" "+problem)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("ratio", func(fl validator.FieldLevel) bool {
		_, ok := evaluator.ParseRatio(fl.Field().String())
		return ok
	})
	return v
}

// Validate checks struct tags and returns a *ValidationError on failure.
func Validate(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return &ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "ratio":
		return `must look like "1:4"`
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "url":
		return "must be a URL"
	default:
		return "is invalid"
	}
}
