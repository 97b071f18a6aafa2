package ppu

import (
	"github.com/ushitora-anqou/aqchip/bus"
	"github.com/ushitora-anqou/aqchip/constant"
)

const LCD_WIDTH = constant.LCD_WIDTH
const LCD_HEIGHT = constant.LCD_HEIGHT

type PPU struct {
	bus   *bus.Bus
	fb    [LCD_WIDTH * LCD_HEIGHT]uint8
	wrap  bool
	dirty bool
}

func NewPPU(bus *bus.Bus, wrapSprites bool) *PPU {
	return &PPU{
		bus:  bus,
		wrap: wrapSprites,
	}
}

func (ppu *PPU) Clear() {
	ppu.fb = [LCD_WIDTH * LCD_HEIGHT]uint8{}
	ppu.dirty = true
}

// DrawSprite XORs an 8xN sprite onto the framebuffer and reports whether
// any lit pixel was erased. The start coordinates wrap around the screen;
// pixels past the border are clipped unless wrapping is enabled.
func (ppu *PPU) DrawSprite(x, y uint8, sprite []uint8) bool {
	baseX := int(x) % LCD_WIDTH
	baseY := int(y) % LCD_HEIGHT
	collision := false

	for row, line := range sprite {
		py := baseY + row
		if py >= LCD_HEIGHT {
			if !ppu.wrap {
				break
			}
			py %= LCD_HEIGHT
		}
		for col := 0; col < 8; col++ {
			if (line>>(7-col))&1 == 0 {
				continue
			}
			px := baseX + col
			if px >= LCD_WIDTH {
				if !ppu.wrap {
					continue
				}
				px %= LCD_WIDTH
			}
			off := py*LCD_WIDTH + px
			if ppu.fb[off] != 0 {
				collision = true
			}
			ppu.fb[off] ^= 1
		}
	}

	ppu.dirty = true
	return collision
}

func (ppu *PPU) Pixel(x, y int) uint8 {
	return ppu.fb[y*LCD_WIDTH+x]
}

// Flush pushes the framebuffer to the LCD line by line. It is a no-op
// unless the framebuffer changed since the last call.
func (ppu *PPU) Flush() error {
	if !ppu.dirty {
		return nil
	}
	for ly := 0; ly < LCD_HEIGHT; ly++ {
		err := ppu.bus.LCD.DrawLine(ly, ppu.fb[ly*LCD_WIDTH:(ly+1)*LCD_WIDTH])
		if err != nil {
			return err
		}
	}
	ppu.dirty = false
	return nil
}
