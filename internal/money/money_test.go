package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(0))
	assert.NoError(t, Check(1250.50))

	assert.ErrorIs(t, Check(-1), ErrInvalidAmount)
	assert.ErrorIs(t, Check(math.NaN()), ErrInvalidAmount)
	assert.ErrorIs(t, Check(math.Inf(1)), ErrInvalidAmount)
	assert.ErrorIs(t, Check(1e17), ErrInvalidAmount)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "50.00", Format(50))
	assert.Equal(t, "1250.50", Format(1250.5))
	assert.Equal(t, "0.00", Format(0))
}
