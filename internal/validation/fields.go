// Package validation holds the field rules shared by every resource:
// required sets, closed enum sets keyed by field name, trimmed length
// bounds, email format, and password strength. Each check returns the
// first failing rule as a business error, so callers can abort before
// authorization or any repository work happens.
package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/taskhub-api/internal/apperr"
	"github.com/oksasatya/taskhub-api/internal/dispatch"
	"github.com/oksasatya/taskhub-api/internal/domain/entity"
)

var validate = validator.New()

// enumFields is the closed-set registry keyed by field name, shared by
// users and tasks alike.
var enumFields = map[string][]string{
	"status":   entity.TaskStatusValues(),
	"priority": entity.TaskPriorityValues(),
	"role":     entity.RoleValues(),
}

// RequireFields checks that every named field is present in the
// payload. The first missing field wins.
func RequireFields(p dispatch.Payload, fields ...string) error {
	for _, f := range fields {
		if !p.Has(f) {
			return apperr.Businessf("Missing required field: %s", f)
		}
	}
	return nil
}

// RequireUpdatable checks that at least one recognized updatable field
// is present. Unknown fields are ignored, not rejected.
func RequireUpdatable(p dispatch.Payload, allowed ...string) error {
	for _, f := range allowed {
		if p.Has(f) {
			return nil
		}
	}
	return apperr.Business("No valid fields to update")
}

// Enum checks membership of value in the closed set registered for the
// field. Fields without a registered set pass.
func Enum(field, value string) error {
	allowed, ok := enumFields[field]
	if !ok {
		return nil
	}
	for _, v := range allowed {
		if value == v {
			return nil
		}
	}
	return apperr.Businessf("Invalid %s: %s", field, value)
}

// Length enforces trimmed string bounds. A required field that trims
// to nothing reports emptiness rather than a character count.
func Length(field, value string, min, max int) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" && min > 0 {
		return apperr.Businessf("%s cannot be empty", fieldLabel(field))
	}
	if len(trimmed) < min {
		return apperr.Businessf("%s must be at least %d characters", fieldLabel(field), min)
	}
	if max > 0 && len(trimmed) > max {
		return apperr.Businessf("%s must be at most %d characters", fieldLabel(field), max)
	}
	return nil
}

// Email checks address format.
func Email(value string) error {
	if err := validate.Var(value, "required,email"); err != nil {
		return apperr.Businessf("Invalid email: %s", value)
	}
	return nil
}

// Password enforces the strength rules: minimum length, then an
// uppercase letter, then a digit. First failing rule wins.
func Password(value string) error {
	if len(value) < 8 {
		return apperr.Business("Password must be at least 8 characters long")
	}
	var hasUpper, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return apperr.Business("Password must contain at least one uppercase letter")
	}
	if !hasDigit {
		return apperr.Business("Password must contain at least one number")
	}
	return nil
}

// fieldLabel renders a payload key as a human-readable label, e.g.
// "full_name" -> "Full name".
func fieldLabel(field string) string {
	label := strings.ReplaceAll(field, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
