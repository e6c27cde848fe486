// Package prompt provides flow.Prompter implementations.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/meikuraledutech/flow"
)

// ErrInvalidInput is returned for submissions that fail validation.
var ErrInvalidInput = errors.New("prompt: invalid input")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateWait checks that a wait lasts at least one day and that its time
// of day is formatted HH:MM.
func ValidateWait(p flow.WaitParams) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", strings.ToLower(fe.Field()), fe.Param())
	case "required":
		return fmt.Sprintf("%s is required", strings.ToLower(fe.Field()))
	case "datetime":
		return fmt.Sprintf("%s must be formatted HH:MM", strings.ToLower(fe.Field()))
	}
	return fmt.Sprintf("%s is invalid (%s)", strings.ToLower(fe.Field()), fe.Tag())
}
