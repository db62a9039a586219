package shared

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is returned when an entity fails its field rules
var ErrValidation = NewDomainError("VALIDATION_ERROR", "Validation failed")

var (
	structValidator *validator.Validate
	structOnce      sync.Once
)

// NewValidator returns a validator configured the way domain packages use it
func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// ValidateStruct checks struct tags and wraps failures in ErrValidation
func ValidateStruct(v interface{}) error {
	structOnce.Do(func() { structValidator = NewValidator() })
	if err := structValidator.Struct(v); err != nil {
		return ErrValidation.WithMessage(DescribeValidation(err))
	}
	return nil
}

// DescribeValidation renders validator errors as "Field failed \"tag\"" pairs
// with the top level struct name stripped from each namespace.
func DescribeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		parts = append(parts, fmt.Sprintf("%s failed %q", ns, fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
