package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/colixy-dashboard/internal/model"
)

func TestChecks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		check func(v model.Violations)
		want  model.Violations
	}{
		{"required blank", func(v model.Violations) { Required("name", "  ", v) }, model.Violations{"name": CodeRequired}},
		{"required ok", func(v model.Violations) { Required("name", "x", v) }, model.Violations{}},
		{"max len counts runes", func(v model.Violations) { MaxLen("name", "ééé", 3, v) }, model.Violations{}},
		{"max len exceeded", func(v model.Violations) { MaxLen("name", "abcd", 3, v) }, model.Violations{"name": CodeTooLong}},
		{"min len", func(v model.Violations) { MinLen("name", "a", 2, v) }, model.Violations{"name": CodeTooShort}},
		{"negative price", func(v model.Violations) { NonNegativeDecimal("price", decimal.NewFromInt(-1), v) }, model.Violations{"price": CodeNegative}},
		{"zero quantity", func(v model.Violations) { PositiveInt("quantity", 0, v) }, model.Violations{"quantity": CodeNotPositive}},
		{"bad email", func(v model.Violations) { Email("email", "not-an-email", v) }, model.Violations{"email": CodeInvalid}},
		{"good email", func(v model.Violations) { Email("email", "ops@colixy.tn", v) }, model.Violations{}},
		{"bad phone", func(v model.Violations) { Phone("phone", "22-abc", v) }, model.Violations{"phone": CodeInvalid}},
		{"good phone", func(v model.Violations) { Phone("phone", "+216 22 123 456", v) }, model.Violations{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := model.Violations{}
			tt.check(v)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestFirstViolationWins(t *testing.T) {
	t.Parallel()

	v := model.Violations{}
	Required("name", "", v)
	MaxLen("name", "", 0, v)
	assert.Equal(t, CodeRequired, v["name"])

	err := Err(v)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.NoError(t, Err(model.Violations{}))
}
