package entity

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validation messages returned to API clients.
// The wording is part of the public contract and must not be changed.
const (
	MsgTitleNull       = "Le titre ne peut être nul"
	MsgTitleTooShort   = "Le titre doit avoir au minimun 5 caractères"
	MsgTitleTooLong    = "Le titre ne doit excéder les 255 caratères"
	MsgContentNull     = "Le contenu du news ne peut être vide"
	MsgContentTooShort = "Le contenu doit au minimum avoir 10 caratères"
	MsgContentTooLong  = "Le contenu ne doit excéder les 1 000 caractères"
)

// Length bounds, counted in Unicode code points.
const (
	TitleMinLength   = 5
	TitleMaxLength   = 225
	ContentMinLength = 10
	// ContentMaxLength is the intended upper bound for content.
	// It is not enforced by DefaultConstraints.
	ContentMaxLength = 1000
)

// FieldRule describes the constraints of a single string field.
// Max == 0 disables the upper bound.
type FieldRule struct {
	Field       string
	Min         int
	Max         int
	NullMessage string
	MinMessage  string
	MaxMessage  string
}

func (r FieldRule) tag() string {
	if r.Max > 0 {
		return fmt.Sprintf("min=%d,max=%d", r.Min, r.Max)
	}
	return fmt.Sprintf("min=%d", r.Min)
}

// Constraints groups the rules applied to a News.
type Constraints struct {
	Title   FieldRule
	Content FieldRule
}

// DefaultConstraints returns the rules the API enforces.
func DefaultConstraints() Constraints {
	return Constraints{
		Title: FieldRule{
			Field:       "title",
			Min:         TitleMinLength,
			Max:         TitleMaxLength,
			NullMessage: MsgTitleNull,
			MinMessage:  MsgTitleTooShort,
			MaxMessage:  MsgTitleTooLong,
		},
		Content: FieldRule{
			Field:       "content",
			Min:         ContentMinLength,
			Max:         0,
			NullMessage: MsgContentNull,
			MinMessage:  MsgContentTooShort,
			MaxMessage:  MsgContentTooLong,
		},
	}
}

// Validator checks News fields against a set of Constraints.
// It is safe for concurrent use.
type Validator struct {
	rules    Constraints
	validate *validator.Validate
}

// NewValidator creates a Validator for the given constraints.
func NewValidator(rules Constraints) *Validator {
	return &Validator{
		rules:    rules,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Rules returns the constraints in effect.
func (v *Validator) Rules() Constraints {
	return v.rules
}

// ValidateFields checks optional title and content values.
// A nil value reports the field's null message; a present value is checked
// against its length bounds. All violations are returned together as
// ValidationErrors, or nil when both fields are valid.
func (v *Validator) ValidateFields(title, content *string) error {
	var errs ValidationErrors
	if ve := v.check(v.rules.Title, title); ve != nil {
		errs = append(errs, ve)
	}
	if ve := v.check(v.rules.Content, content); ve != nil {
		errs = append(errs, ve)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate checks a complete News.
func (v *Validator) Validate(n *News) error {
	if n == nil {
		return ErrInvalidInput
	}
	return v.ValidateFields(&n.Title, &n.Content)
}

func (v *Validator) check(rule FieldRule, value *string) *ValidationError {
	if value == nil {
		return &ValidationError{Field: rule.Field, Message: rule.NullMessage}
	}

	err := v.validate.Var(*value, rule.tag())
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: rule.Field, Message: err.Error()}
	}

	switch fieldErrs[0].Tag() {
	case "max":
		return &ValidationError{Field: rule.Field, Message: rule.MaxMessage}
	default:
		return &ValidationError{Field: rule.Field, Message: rule.MinMessage}
	}
}
