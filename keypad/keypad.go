package keypad

import (
	"github.com/ushitora-anqou/aqchip/constant"
)

// Keypad tracks the 16-key hex pad as a bitmask. The frontend pushes the
// whole key state once per frame; releases are remembered so that a
// wait-for-key instruction completes on release, as on the COSMAC VIP.
type Keypad struct {
	state       uint16
	released    uint8
	hasReleased bool
}

func NewKeypad() *Keypad {
	return &Keypad{}
}

func (k *Keypad) SetState(state uint16) {
	up := k.state &^ state
	for key := uint8(0); key < constant.NUM_KEYS; key++ {
		if (up>>key)&1 != 0 {
			k.released = key
			k.hasReleased = true
		}
	}
	k.state = state
}

func (k *Keypad) Pressed(key uint8) bool {
	return (k.state>>(key&0x0f))&1 != 0
}

// TakeReleasedKey pops the most recently released key, if any.
func (k *Keypad) TakeReleasedKey() (uint8, bool) {
	if !k.hasReleased {
		return 0, false
	}
	k.hasReleased = false
	return k.released, true
}
