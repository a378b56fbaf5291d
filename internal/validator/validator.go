package validator

import (
	"fmt"
	"net"
	"path"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator represents a validator instance
type Validator struct {
	validate *validator.Validate
}

// New creates a new validator instance
func New() *Validator {
	once.Do(func() {
		validate = validator.New()

		// Register custom validation functions
		_ = validate.RegisterValidation("socketuri", validateSocketURI)
		_ = validate.RegisterValidation("fieldpath", validateFieldPath)

		// Use mapstructure tag names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})

	return &Validator{
		validate: validate,
	}
}

// Struct validates a struct
func (v *Validator) Struct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); ok {
			return fmt.Errorf("invalid validation error: %w", err)
		}

		var errMsgs []string
		for _, err := range err.(validator.ValidationErrors) {
			errMsgs = append(errMsgs, formatError(err))
		}
		return fmt.Errorf("validation failed: %s", strings.Join(errMsgs, "; "))
	}
	return nil
}

// Var validates a single variable
func (v *Validator) Var(field any, tag string) error {
	return v.validate.Var(field, tag)
}

// formatError formats a validation error
func formatError(err validator.FieldError) string {
	field := err.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, err.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, err.Param())
	case "socketuri":
		return fmt.Sprintf("%s must be unix://<absolute path>, unix:<path> or host:port", field)
	case "fieldpath":
		return fmt.Sprintf("%s must be a dotted key path", field)
	default:
		return fmt.Sprintf("%s failed on tag %s", field, err.Tag())
	}
}

// validateSocketURI accepts the address forms the daemon dials: unix
// sockets and TCP host:port pairs. Quotes, backslashes and control
// characters are rejected as they would need escaping inside the JSON string.
func validateSocketURI(fl validator.FieldLevel) bool {
	addr := fl.Field().String()
	if addr == "" || needsEscape(addr) {
		return false
	}

	if p, ok := strings.CutPrefix(addr, "unix://"); ok {
		return path.IsAbs(p) && len(p) > 1
	}
	if p, ok := strings.CutPrefix(addr, "unix:"); ok {
		return p != ""
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	return port != "" && !strings.Contains(host, "/")
}

func needsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 || c == 0x7f || c == '"' || c == '\\' {
			return true
		}
	}
	return false
}

// validateFieldPath checks a dotted path such as Server.Address
func validateFieldPath(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	if p == "" {
		return false
	}
	for _, part := range strings.Split(p, ".") {
		if part == "" || strings.ContainsAny(part, "\"") {
			return false
		}
	}
	return true
}
