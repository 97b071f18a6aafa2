package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ushitora-anqou/aqchip/bus"
)

type fakeLCD struct {
	lines map[int][]uint8
}

func newFakeLCD() *fakeLCD {
	return &fakeLCD{lines: map[int][]uint8{}}
}

func (lcd *fakeLCD) DrawLine(ly int, scanline []uint8) error {
	line := make([]uint8, len(scanline))
	copy(line, scanline)
	lcd.lines[ly] = line
	return nil
}

func newTestPPU(wrap bool) (*PPU, *fakeLCD) {
	b := bus.NewBus()
	ppu := NewPPU(b, wrap)
	lcd := newFakeLCD()
	b.Register(nil, ppu, nil, nil, lcd)
	return ppu, lcd
}

func TestDrawSpriteXOR(t *testing.T) {
	ppu, _ := newTestPPU(false)

	collision := ppu.DrawSprite(1, 2, []uint8{0b10100000})
	assert.False(t, collision)
	assert.Equal(t, uint8(1), ppu.Pixel(1, 2))
	assert.Equal(t, uint8(0), ppu.Pixel(2, 2))
	assert.Equal(t, uint8(1), ppu.Pixel(3, 2))

	// Overlapping draw flips the shared pixel and reports the collision.
	collision = ppu.DrawSprite(3, 2, []uint8{0b10000000})
	assert.True(t, collision)
	assert.Equal(t, uint8(0), ppu.Pixel(3, 2))

	collision = ppu.DrawSprite(3, 2, []uint8{0b10000000})
	assert.False(t, collision)
	assert.Equal(t, uint8(1), ppu.Pixel(3, 2))
}

func TestDrawSpriteStartCoordinatesWrap(t *testing.T) {
	ppu, _ := newTestPPU(false)

	ppu.DrawSprite(LCD_WIDTH+1, LCD_HEIGHT+2, []uint8{0b10000000})
	assert.Equal(t, uint8(1), ppu.Pixel(1, 2))
}

func TestDrawSpriteClipsAtBorder(t *testing.T) {
	ppu, _ := newTestPPU(false)

	ppu.DrawSprite(LCD_WIDTH-1, LCD_HEIGHT-1, []uint8{0b11000000, 0b11000000})
	assert.Equal(t, uint8(1), ppu.Pixel(LCD_WIDTH-1, LCD_HEIGHT-1))
	// Nothing spilled to the opposite side.
	assert.Equal(t, uint8(0), ppu.Pixel(0, LCD_HEIGHT-1))
	assert.Equal(t, uint8(0), ppu.Pixel(LCD_WIDTH-1, 0))
	assert.Equal(t, uint8(0), ppu.Pixel(0, 0))
}

func TestDrawSpriteWrapQuirk(t *testing.T) {
	ppu, _ := newTestPPU(true)

	ppu.DrawSprite(LCD_WIDTH-1, LCD_HEIGHT-1, []uint8{0b11000000, 0b11000000})
	assert.Equal(t, uint8(1), ppu.Pixel(LCD_WIDTH-1, LCD_HEIGHT-1))
	assert.Equal(t, uint8(1), ppu.Pixel(0, LCD_HEIGHT-1))
	assert.Equal(t, uint8(1), ppu.Pixel(LCD_WIDTH-1, 0))
	assert.Equal(t, uint8(1), ppu.Pixel(0, 0))
}

func TestClear(t *testing.T) {
	ppu, _ := newTestPPU(false)

	ppu.DrawSprite(0, 0, []uint8{0xff})
	ppu.Clear()
	for x := 0; x < 8; x++ {
		assert.Equal(t, uint8(0), ppu.Pixel(x, 0))
	}
}

func TestFlushPushesDirtyFramebufferOnce(t *testing.T) {
	ppu, lcd := newTestPPU(false)

	ppu.DrawSprite(0, 3, []uint8{0b10000000})
	assert.NoError(t, ppu.Flush())
	assert.Len(t, lcd.lines, LCD_HEIGHT)
	assert.Equal(t, uint8(1), lcd.lines[3][0])

	// Clean framebuffer: no redraw.
	lcd.lines = map[int][]uint8{}
	assert.NoError(t, ppu.Flush())
	assert.Len(t, lcd.lines, 0)
}
