package validation

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/you-humble/colixy-dashboard/internal/model"
)

const (
	CodeRequired    = "required"
	CodeTooLong     = "too_long"
	CodeTooShort    = "too_short"
	CodeNegative    = "must_not_be_negative"
	CodeNotPositive = "must_be_positive"
	CodeInvalid     = "invalid"
	CodeMismatch    = "mismatch"
	CodeDuplicate   = "duplicate"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

// Required, like the other checks, keeps the first violation recorded for a field.
func Required(field, value string, v model.Violations) {
	if strings.TrimSpace(value) == "" {
		set(v, field, CodeRequired)
	}
}

func MaxLen(field, value string, limit int, v model.Violations) {
	if utf8.RuneCountInString(value) > limit {
		set(v, field, CodeTooLong)
	}
}

func MinLen(field, value string, limit int, v model.Violations) {
	if value != "" && utf8.RuneCountInString(strings.TrimSpace(value)) < limit {
		set(v, field, CodeTooShort)
	}
}

func NonNegativeDecimal(field string, val decimal.Decimal, v model.Violations) {
	if val.IsNegative() {
		set(v, field, CodeNegative)
	}
}

func NonNegativeInt(field string, val int64, v model.Violations) {
	if val < 0 {
		set(v, field, CodeNegative)
	}
}

func PositiveInt(field string, val int64, v model.Violations) {
	if val <= 0 {
		set(v, field, CodeNotPositive)
	}
}

func Email(field, value string, v model.Violations) {
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		set(v, field, CodeInvalid)
	}
}

func Phone(field, value string, v model.Violations) {
	if value != "" && !phonePattern.MatchString(value) {
		set(v, field, CodeInvalid)
	}
}

func Check(field string, ok bool, code string, v model.Violations) {
	if !ok {
		set(v, field, code)
	}
}

// Err returns a *model.ValidationError when v holds violations.
func Err(v model.Violations) error {
	if v.Empty() {
		return nil
	}
	return &model.ValidationError{Violations: v}
}

func set(v model.Violations, field, code string) {
	if _, exists := v[field]; !exists {
		v[field] = code
	}
}
