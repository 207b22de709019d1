// Package validation checks request payloads and turns failures into
// client-facing messages.
package validation

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Matches local@domain.tld with no whitespace and a single @ per part.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Error is a field-level failure safe to show to the caller.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Struct validates s and returns the first failure as *Error. Messages can be
// overridden per "Field.tag" key; otherwise a generic one is used.
func (v *Validator) Struct(s interface{}, messages map[string]string) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return New(fe.Field(), msg)
	}
	return New(fe.Field(), fe.Field()+" is invalid")
}

func EmailShape(email string) bool {
	return emailShape.MatchString(email)
}
