package apu

import (
	"math"

	"github.com/ushitora-anqou/aqchip/bus"
	"github.com/ushitora-anqou/aqchip/constant"
)

// APU synthesizes the CHIP-8 buzzer: a fixed-frequency square wave that
// plays while the sound timer is above zero. The instruction clock is far
// slower than the sample rate, so each tick yields a fractional number of
// samples accumulated across calls.
type APU struct {
	bus            *bus.Bus
	buffer         []float32
	bufferIndex    int
	samplesPerTick float64
	sampleAcc      float64
	phase          float64
}

func NewAPU(bus *bus.Bus, clockHz uint) *APU {
	return &APU{
		bus:            bus,
		buffer:         make([]float32, constant.AUDIO_SAMPLES*constant.CHANNELS),
		samplesPerTick: float64(constant.AUDIO_FREQ) / float64(clockHz),
	}
}

// Update advances the synthesizer by the given number of ticks and
// reports whether the sample buffer is full and ready to be enqueued.
func (apu *APU) Update(tick uint) bool {
	apu.sampleAcc += float64(tick) * apu.samplesPerTick

	full := false
	for apu.sampleAcc >= 1 {
		apu.sampleAcc -= 1

		var sample float32
		if apu.bus.Timer.SoundActive() {
			if apu.phase < 0.5 {
				sample = 0.25
			} else {
				sample = -0.25
			}
			apu.phase += float64(constant.BUZZER_FREQ) / float64(constant.AUDIO_FREQ)
			apu.phase -= math.Floor(apu.phase)
		}

		for ch := 0; ch < constant.CHANNELS; ch++ {
			apu.buffer[apu.bufferIndex] = sample
			apu.bufferIndex++
		}
		if apu.bufferIndex == len(apu.buffer) {
			apu.bufferIndex = 0
			full = true
		}
	}

	return full
}

func (apu *APU) GetAudioBuffer() []float32 {
	return apu.buffer
}
