package main

import (
	"github.com/ushitora-anqou/aqchip/apu"
	"github.com/ushitora-anqou/aqchip/bus"
	"github.com/ushitora-anqou/aqchip/config"
	"github.com/ushitora-anqou/aqchip/constant"
	"github.com/ushitora-anqou/aqchip/cpu"
	"github.com/ushitora-anqou/aqchip/keypad"
	"github.com/ushitora-anqou/aqchip/mmu"
	"github.com/ushitora-anqou/aqchip/ppu"
	"github.com/ushitora-anqou/aqchip/timer"
	"github.com/ushitora-anqou/aqchip/window"
)

type AqChip struct {
	bus        *bus.Bus
	cpu        *cpu.CPU
	ppu        *ppu.PPU
	mmu        *mmu.MMU
	timer      *timer.Timer
	apu        *apu.APU
	keypad     *keypad.Keypad
	wind       window.Window
	frameTicks uint
	cnt        uint
}

func NewAqChip(wind window.Window, rom []uint8, cfg *config.Configuration) (*AqChip, error) {
	// Build the components
	bus := bus.NewBus()
	mmu, err := mmu.NewMMU(bus, rom)
	if err != nil {
		return nil, err
	}
	cpu := cpu.NewCPU(bus, cpu.Quirks{
		LegacyShift: cfg.LegacyShift,
		LegacyIndex: cfg.LegacyIndex,
	})
	ppu := ppu.NewPPU(bus, cfg.WrapSprites)
	timer := timer.NewTimer(bus, cfg.ClockHz)
	apu := apu.NewAPU(bus, cfg.ClockHz)
	keypad := keypad.NewKeypad()

	// Build up the bus
	bus.Register(mmu, ppu, timer, keypad, wind)

	return &AqChip{
		bus:        bus,
		cpu:        cpu,
		ppu:        ppu,
		mmu:        mmu,
		timer:      timer,
		apu:        apu,
		keypad:     keypad,
		wind:       wind,
		frameTicks: cfg.ClockHz / constant.TIMER_HZ,
	}, nil
}

// Update emulates one frame worth of instructions and flushes the
// framebuffer to the window.
func (a *AqChip) Update(event *window.WindowEvent) error {
	a.keypad.SetState(event.Keys)

	for a.cnt < a.frameTicks {
		tick, err := a.cpu.Step()
		if err != nil {
			return err
		}
		a.timer.Update(tick)
		if a.apu.Update(tick) {
			err := a.wind.EnqueueAudioBuffer(a.apu.GetAudioBuffer())
			if err != nil {
				return err
			}
		}
		a.cnt += tick
	}
	a.cnt -= a.frameTicks

	return a.ppu.Flush()
}
