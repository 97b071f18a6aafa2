package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ushitora-anqou/aqchip/bus"
)

func TestTimersDecrementAt60Hz(t *testing.T) {
	// 600 Hz clock: one decrement every 10 ticks.
	timer := NewTimer(bus.NewBus(), 600)
	timer.SetDelay(3)
	timer.SetSound(1)

	timer.Update(9)
	assert.Equal(t, uint8(3), timer.Delay())
	assert.True(t, timer.SoundActive())

	timer.Update(1)
	assert.Equal(t, uint8(2), timer.Delay())
	assert.False(t, timer.SoundActive())

	timer.Update(10)
	timer.Update(10)
	assert.Equal(t, uint8(0), timer.Delay())
}

func TestTimersSaturateAtZero(t *testing.T) {
	timer := NewTimer(bus.NewBus(), 600)

	for i := 0; i < 5; i++ {
		timer.Update(10)
	}
	assert.Equal(t, uint8(0), timer.Delay())
	assert.False(t, timer.SoundActive())
}
