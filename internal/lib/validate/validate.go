package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// emailRe accepts quoted local parts, bracketed IPv4 domains and standard
// dotted-label domains; whitespace and angle brackets in the local part are
// rejected.
var emailRe = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}))$`)

// New builds the request validator with the email_strict rule registered.
func New() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("email_strict", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})

	return v
}
