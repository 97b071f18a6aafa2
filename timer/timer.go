package timer

import (
	"github.com/ushitora-anqou/aqchip/bus"
	"github.com/ushitora-anqou/aqchip/constant"
	"github.com/ushitora-anqou/aqchip/util"
)

// Timer holds the delay and sound registers. Both count down to zero at
// 60 Hz regardless of the instruction clock, so the decrement cadence is
// derived from the configured clock speed.
type Timer struct {
	bus          *bus.Bus
	delay, sound uint8
	tick         *util.TickCounter
}

func NewTimer(bus *bus.Bus, clockHz uint) *Timer {
	return &Timer{
		bus:  bus,
		tick: util.NewTickCounter(clockHz / constant.TIMER_HZ),
	}
}

func (t *Timer) Delay() uint8 {
	return t.delay
}

func (t *Timer) SetDelay(val uint8) {
	t.delay = val
}

func (t *Timer) SetSound(val uint8) {
	t.sound = val
}

func (t *Timer) SoundActive() bool {
	return t.sound > 0
}

func (t *Timer) Update(tick uint) {
	if !t.tick.Tick(tick) {
		return
	}
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}
