package mmu

import (
	"fmt"

	"github.com/ushitora-anqou/aqchip/bus"
	"github.com/ushitora-anqou/aqchip/constant"
)

// Built-in hexadecimal font, one 5-byte glyph per digit 0-F.
var font = [5 * 16]uint8{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}

type MMU struct {
	/*
		MEMORY MAP

		0000-004F  Reserved for the interpreter on the COSMAC VIP
		0050-009F  Built-in font (16 glyphs of 5 bytes)
		00A0-01FF  Reserved
		0200-0FFF  Program ROM and work RAM
	*/
	bus *bus.Bus
	mem [constant.MEMORY_SIZE]uint8
}

func NewMMU(bus *bus.Bus, rom []uint8) (*MMU, error) {
	if len(rom) == 0 {
		return nil, fmt.Errorf("Empty ROM image")
	}
	if len(rom) > constant.MEMORY_SIZE-constant.PROGRAM_START {
		return nil, fmt.Errorf(
			"ROM image too large: %d bytes (maximum is %d)",
			len(rom),
			constant.MEMORY_SIZE-constant.PROGRAM_START,
		)
	}

	mmu := &MMU{bus: bus}
	copy(mmu.mem[constant.FONT_START:], font[:])
	copy(mmu.mem[constant.PROGRAM_START:], rom)
	return mmu, nil
}

// The address space is 12 bits wide; out-of-range accesses wrap around.
func (mmu *MMU) Get8(addr uint16) uint8 {
	return mmu.mem[addr&0x0fff]
}

func (mmu *MMU) Set8(addr uint16, val uint8) {
	mmu.mem[addr&0x0fff] = val
}

// Get16 reads a big-endian word; opcodes are stored high byte first.
func (mmu *MMU) Get16(addr uint16) uint16 {
	hi := (uint16)(mmu.Get8(addr))
	lo := (uint16)(mmu.Get8(addr + 1))
	return (hi << 8) | lo
}

func (mmu *MMU) Set16(addr uint16, val uint16) {
	mmu.Set8(addr, uint8(val>>8))
	mmu.Set8(addr+1, uint8(val))
}

// FontAddr returns the address of the built-in glyph for digit (0-F).
func FontAddr(digit uint8) uint16 {
	return constant.FONT_START + 5*uint16(digit&0x0f)
}
