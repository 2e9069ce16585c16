// Package validation holds the pure domain validators and registers them as
// custom binding tags on gin's validator engine.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ReservedUsername cannot be registered because it collides with the
// /users/me profile route.
const ReservedUsername = "me"

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

var (
	ErrFutureYear       = errors.New("year must not be greater than the current year")
	ErrReservedUsername = errors.New("username is reserved")
	ErrInvalidUsername  = errors.New("username contains invalid characters")
	ErrInvalidSlug      = errors.New("slug contains invalid characters")
)

// ValidateYear rejects release years after the current year.
func ValidateYear(year int) error {
	if year > time.Now().Year() {
		return ErrFutureYear
	}
	return nil
}

func ValidateUsername(username string) error {
	if username == ReservedUsername {
		return ErrReservedUsername
	}
	if !usernameRe.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func ValidateSlug(slug string) error {
	if !slugRe.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}

// RegisterCustom adds the domain validators as binding tags ("pastyear",
// "username", "slug") so DTOs can declare them next to the builtin rules.
func RegisterCustom() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("pastyear", func(fl validator.FieldLevel) bool {
		return ValidateYear(int(fl.Field().Int())) == nil
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return ValidateUsername(fl.Field().String()) == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return ValidateSlug(fl.Field().String()) == nil
	})
}
