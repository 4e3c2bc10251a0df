package validation

import (
	"errors"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation marks a missing or malformed user input caught before any
// network call.
var ErrValidation = errors.New("validation failed")

// Error describes the first field that failed validation. Message is the
// text shown next to the field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *Error) Unwrap() error { return ErrValidation }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.Split(field.Tag.Get("form"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates v against its `validate` tags. On failure it returns an
// *Error for the first failing field carrying message.
func Struct(v any, message string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &Error{Field: verrs[0].Field(), Message: message}
	}
	return &Error{Message: message}
}

// New returns a validation error for field.
func New(field, message string) error {
	return &Error{Field: field, Message: message}
}

// ValidateOrigin checks that an origin is an absolute http(s) URL with a host.
func ValidateOrigin(origin string) error {
	if origin == "" {
		return New("origin", "origin is required")
	}

	u, err := url.Parse(origin)
	if err != nil {
		return New("origin", "invalid URL format")
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return New("origin", "origin must use http:// or https:// scheme")
	}

	if u.Host == "" {
		return New("origin", "origin must have a valid host")
	}

	return nil
}
