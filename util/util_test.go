package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoolToU8(t *testing.T) {
	assert.Equal(t, uint8(1), BoolToU8(true))
	assert.Equal(t, uint8(0), BoolToU8(false))
}

func TestTickCounter(t *testing.T) {
	tc := NewTickCounter(10)

	assert.False(t, tc.Tick(9))
	assert.True(t, tc.Tick(1))
	assert.False(t, tc.Tick(9))
	assert.True(t, tc.Tick(11))
}
