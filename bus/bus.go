package bus

type MMU interface {
	Get8(addr uint16) uint8
	Get16(addr uint16) uint16
	Set8(addr uint16, val uint8)
	Set16(addr uint16, val uint16)
}

type PPU interface {
	Clear()
	DrawSprite(x, y uint8, sprite []uint8) bool
}

type Timer interface {
	Delay() uint8
	SetDelay(val uint8)
	SetSound(val uint8)
	SoundActive() bool
}

type Keypad interface {
	Pressed(key uint8) bool
	TakeReleasedKey() (uint8, bool)
}

type LCD interface {
	DrawLine(ly int, scanline []uint8) error
}

type Bus struct {
	MMU
	PPU
	Timer
	Keypad
	LCD
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Register(mmu MMU, ppu PPU, timer Timer, keypad Keypad, lcd LCD) {
	b.MMU = mmu
	b.PPU = ppu
	b.Timer = timer
	b.Keypad = keypad
	b.LCD = lcd
}
