package http

import (
	"dispatch/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// requestValidator adapts go-playground/validator to echo's Validator interface.
type requestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates the validator registered on the echo instance.
func NewRequestValidator() *requestValidator { //nolint:revive //echo only needs the interface
	return &requestValidator{validate: validator.New()}
}

// Validate checks struct tags and converts failures into the 400 error family.
func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}
