package mmu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ushitora-anqou/aqchip/bus"
	"github.com/ushitora-anqou/aqchip/constant"
)

func TestNewMMULoadsROMAndFont(t *testing.T) {
	rom := []uint8{0x12, 0x34, 0x56}
	mmu, err := NewMMU(bus.NewBus(), rom)
	require.NoError(t, err)

	for i, b := range rom {
		assert.Equal(t, b, mmu.Get8(uint16(constant.PROGRAM_START+i)))
	}

	// First glyph ("0") starts with 0xf0, last glyph ("F") ends with 0x80.
	assert.Equal(t, uint8(0xf0), mmu.Get8(constant.FONT_START))
	assert.Equal(t, uint8(0x80), mmu.Get8(constant.FONT_START+5*16-1))
}

func TestNewMMURejectsBadROM(t *testing.T) {
	_, err := NewMMU(bus.NewBus(), nil)
	assert.Error(t, err)

	tooLarge := make([]uint8, constant.MEMORY_SIZE-constant.PROGRAM_START+1)
	_, err = NewMMU(bus.NewBus(), tooLarge)
	assert.Error(t, err)

	justFits := make([]uint8, constant.MEMORY_SIZE-constant.PROGRAM_START)
	_, err = NewMMU(bus.NewBus(), justFits)
	assert.NoError(t, err)
}

func TestGet16IsBigEndian(t *testing.T) {
	mmu, err := NewMMU(bus.NewBus(), []uint8{0x12, 0x34})
	require.NoError(t, err)

	assert.Equal(t, uint16(0x1234), mmu.Get16(constant.PROGRAM_START))

	mmu.Set16(0x400, 0xbeef)
	assert.Equal(t, uint8(0xbe), mmu.Get8(0x400))
	assert.Equal(t, uint8(0xef), mmu.Get8(0x401))
}

func TestAddressWrapsAround(t *testing.T) {
	mmu, err := NewMMU(bus.NewBus(), []uint8{0xaa})
	require.NoError(t, err)

	mmu.Set8(0x123, 0x55)
	assert.Equal(t, uint8(0x55), mmu.Get8(0x1123))
}

func TestFontAddr(t *testing.T) {
	assert.Equal(t, uint16(constant.FONT_START), FontAddr(0x0))
	assert.Equal(t, uint16(constant.FONT_START+5*0xf), FontAddr(0xf))
	// Only the low nibble selects the glyph.
	assert.Equal(t, FontAddr(0x3), FontAddr(0xf3))
}

func TestNewROM(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "game.ch8")
	require.NoError(t, os.WriteFile(path, []uint8{0x00, 0xe0}, 0o644))
	rom, err := NewROM(path)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0x00, 0xe0}, rom.Data())

	empty := filepath.Join(dir, "empty.ch8")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = NewROM(empty)
	assert.Error(t, err)

	tooLarge := filepath.Join(dir, "large.ch8")
	require.NoError(t, os.WriteFile(tooLarge, make([]uint8, constant.MEMORY_SIZE), 0o644))
	_, err = NewROM(tooLarge)
	assert.Error(t, err)

	_, err = NewROM(filepath.Join(dir, "missing.ch8"))
	assert.Error(t, err)
}
