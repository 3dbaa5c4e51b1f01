package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shareity/backend/internal/repositories"
)

// Error kinds surfaced to callers. Service errors wrap exactly one of these.
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrInvalidTransition  = errors.New("invalid transition")
)

var validate = validator.New()

func validateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	return nil
}

// notFound converts a repository miss into ErrNotFound and passes other errors through
func notFound(err error, what, id string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, what, id)
	}
	return err
}
