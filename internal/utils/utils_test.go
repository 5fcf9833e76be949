package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		id, err := ToID("42")
		assert.NoError(t, err)
		assert.Equal(t, 42, id)
	})

	t.Run("NotANumber", func(t *testing.T) {
		_, err := ToID("abc")
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("Zero", func(t *testing.T) {
		_, err := ToID("0")
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := ToID("-3")
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestPointerHelpers(t *testing.T) {
	assert.Equal(t, "x", *StrPtr("x"))
	assert.Equal(t, 7, *IntPtr(7))
	assert.Equal(t, "", PtrString(nil))
	assert.Equal(t, "y", PtrString(StrPtr("y")))
}
