package mmu

import (
	"os"

	"github.com/pkg/errors"

	"github.com/ushitora-anqou/aqchip/constant"
)

type ROM struct {
	data []uint8
}

func NewROM(filePath string) (*ROM, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read ROM image")
	}

	if len(src) == 0 {
		return nil, errors.Errorf("ROM image is empty: %s", filePath)
	}
	if len(src) > constant.MEMORY_SIZE-constant.PROGRAM_START {
		return nil, errors.Errorf(
			"ROM image too large: %d bytes (maximum is %d)",
			len(src),
			constant.MEMORY_SIZE-constant.PROGRAM_START,
		)
	}

	return &ROM{data: src}, nil
}

func (rom *ROM) Data() []uint8 {
	return rom.data
}
