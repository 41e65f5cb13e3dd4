package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCredit(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	assert.True(t, ValidCredit(nil)) // unset is always acceptable
	assert.True(t, ValidCredit(f(0)))
	assert.True(t, ValidCredit(f(3)))
	assert.True(t, ValidCredit(f(4.5)))
	assert.True(t, ValidCredit(f(MaxCredit)))

	assert.False(t, ValidCredit(f(-1)))
	assert.False(t, ValidCredit(f(MaxCredit+1)))
	assert.False(t, ValidCredit(f(math.NaN())))
	assert.False(t, ValidCredit(f(math.Inf(1))))
}

func TestStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("Fall 2024").WithMaxLength(SemesterNameMaxLength).Validate())
	assert.False(t, NewStringValidation("").Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).Validate())
	assert.False(t, NewStringValidation("x").WithMinLength(2).Validate())
	assert.False(t, NewStringValidation("toolongtoolong").WithMaxLength(5).Validate())
	assert.True(t, NewStringValidation("user@example.com").WithPattern(CompiledPatterns.Email).Validate())
	assert.False(t, NewStringValidation("not-an-email").WithPattern(CompiledPatterns.Email).Validate())
}
