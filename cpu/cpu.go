package cpu

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ushitora-anqou/aqchip/bus"
	"github.com/ushitora-anqou/aqchip/constant"
	"github.com/ushitora-anqou/aqchip/mmu"
	"github.com/ushitora-anqou/aqchip/util"
)

func dbgpr(format string, v ...interface{}) {
	util.Trace(format, v...)
}

func add8(x, y uint8) (uint8, bool) {
	// Thanks to: https://cs.opensource.google/go/go/+/refs/tags/go1.17.6:src/math/bits/bits.go;l=354
	sum := x + y
	carryOut := (((x & y) | ((x | y) &^ sum)) >> 7) != 0
	return sum, carryOut
}

func sub8(x, y uint8) (uint8, bool) {
	// Thanks to: https://cs.opensource.google/go/go/+/refs/tags/go1.17.6:src/math/bits/bits.go;l=380
	diff := x - y
	borrowOut := (((^x & y) | (^(x ^ y) & diff)) >> 7) != 0
	return diff, borrowOut
}

// Quirks selects between the COSMAC VIP behavior and the de-facto modern
// behavior of the ambiguous instructions. The defaults (all false) are the
// modern ones, which most ROMs found in the wild expect.
type Quirks struct {
	// 8xy6/8xyE shift Vy into Vx instead of shifting Vx in place.
	LegacyShift bool
	// Fx55/Fx65 leave I pointing one past the last register stored.
	LegacyIndex bool
}

type CPU struct {
	bus        *bus.Bus
	v          [constant.NUM_REGISTERS]uint8
	i          uint16
	pc         uint16
	stack      [constant.STACK_DEPTH]uint16
	sp         uint8
	rng        *rand.Rand
	quirks     Quirks
	waitingKey bool
}

func NewCPU(bus *bus.Bus, quirks Quirks) *CPU {
	return &CPU{
		bus:    bus,
		pc:     constant.PROGRAM_START,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		quirks: quirks,
	}
}

// SetRandSource replaces the RNG used by RND Vx, byte.
func (cpu *CPU) SetRandSource(src rand.Source) {
	cpu.rng = rand.New(src)
}

func (cpu *CPU) PC() uint16 {
	return cpu.pc
}
func (cpu *CPU) SP() uint8 {
	return cpu.sp
}
func (cpu *CPU) I() uint16 {
	return cpu.i
}
func (cpu *CPU) V(index uint8) uint8 {
	return cpu.v[index&0x0f]
}
func (cpu *CPU) SetPC(pc uint16) {
	cpu.pc = pc
}
func (cpu *CPU) SetI(i uint16) {
	cpu.i = i
}
func (cpu *CPU) SetV(index, val uint8) {
	cpu.v[index&0x0f] = val
}
func (cpu *CPU) IncPC(val int) {
	cpu.SetPC((uint16)((int)(cpu.PC()) + val))
}

func (cpu *CPU) push16(val uint16) error {
	if cpu.sp >= constant.STACK_DEPTH {
		return fmt.Errorf("Stack overflow: CALL at 0x%04x exceeds %d levels", cpu.PC(), constant.STACK_DEPTH)
	}
	cpu.stack[cpu.sp] = val
	cpu.sp++
	return nil
}

func (cpu *CPU) pop16() (uint16, error) {
	if cpu.sp == 0 {
		return 0, fmt.Errorf("Stack underflow: RET at 0x%04x with no caller", cpu.PC())
	}
	cpu.sp--
	return cpu.stack[cpu.sp], nil
}

// Step fetches and executes one instruction and returns the number of
// ticks it consumed (currently always one).
func (cpu *CPU) Step() (uint, error) {
	opcode := cpu.bus.MMU.Get16(cpu.PC())
	op := opcode >> 12
	addr := opcode & 0x0fff
	x := uint8(opcode>>8) & 0x0f
	y := uint8(opcode>>4) & 0x0f
	kk := uint8(opcode)
	n := uint8(opcode) & 0x0f

	switch {
	case opcode == 0x00e0: // CLS
		dbgpr("0x%04x: CLS", cpu.PC())
		cpu.bus.PPU.Clear()
		cpu.IncPC(2)

	case opcode == 0x00ee: // RET
		dbgpr("0x%04x: RET", cpu.PC())
		ret, err := cpu.pop16()
		if err != nil {
			return 0, err
		}
		cpu.SetPC(ret)

	case op == 0x0: // SYS addr
		// Machine code routines of the host 1802 CPU; no modern ROM uses them.
		dbgpr("0x%04x: SYS 0x%03x (ignored)", cpu.PC(), addr)
		cpu.IncPC(2)

	case op == 0x1: // JP addr
		dbgpr("0x%04x: JP 0x%03x", cpu.PC(), addr)
		cpu.SetPC(addr)

	case op == 0x2: // CALL addr
		dbgpr("0x%04x: CALL 0x%03x", cpu.PC(), addr)
		if err := cpu.push16(cpu.PC() + 2); err != nil {
			return 0, err
		}
		cpu.SetPC(addr)

	case op == 0x3: // SE Vx, byte
		dbgpr("0x%04x: SE V%X, 0x%02x", cpu.PC(), x, kk)
		if cpu.V(x) == kk {
			cpu.IncPC(4)
		} else {
			cpu.IncPC(2)
		}

	case op == 0x4: // SNE Vx, byte
		dbgpr("0x%04x: SNE V%X, 0x%02x", cpu.PC(), x, kk)
		if cpu.V(x) != kk {
			cpu.IncPC(4)
		} else {
			cpu.IncPC(2)
		}

	case op == 0x5 && n == 0x0: // SE Vx, Vy
		dbgpr("0x%04x: SE V%X, V%X", cpu.PC(), x, y)
		if cpu.V(x) == cpu.V(y) {
			cpu.IncPC(4)
		} else {
			cpu.IncPC(2)
		}

	case op == 0x6: // LD Vx, byte
		dbgpr("0x%04x: LD V%X, 0x%02x", cpu.PC(), x, kk)
		cpu.SetV(x, kk)
		cpu.IncPC(2)

	case op == 0x7: // ADD Vx, byte (no carry flag)
		dbgpr("0x%04x: ADD V%X, 0x%02x", cpu.PC(), x, kk)
		cpu.SetV(x, cpu.V(x)+kk)
		cpu.IncPC(2)

	case op == 0x8:
		if err := cpu.stepALU(x, y, n); err != nil {
			return 0, err
		}
		cpu.IncPC(2)

	case op == 0x9 && n == 0x0: // SNE Vx, Vy
		dbgpr("0x%04x: SNE V%X, V%X", cpu.PC(), x, y)
		if cpu.V(x) != cpu.V(y) {
			cpu.IncPC(4)
		} else {
			cpu.IncPC(2)
		}

	case op == 0xa: // LD I, addr
		dbgpr("0x%04x: LD I, 0x%03x", cpu.PC(), addr)
		cpu.SetI(addr)
		cpu.IncPC(2)

	case op == 0xb: // JP V0, addr
		dbgpr("0x%04x: JP V0, 0x%03x", cpu.PC(), addr)
		cpu.SetPC(addr + uint16(cpu.V(0)))

	case op == 0xc: // RND Vx, byte
		dbgpr("0x%04x: RND V%X, 0x%02x", cpu.PC(), x, kk)
		cpu.SetV(x, uint8(cpu.rng.Intn(0x100))&kk)
		cpu.IncPC(2)

	case op == 0xd: // DRW Vx, Vy, nibble
		dbgpr("0x%04x: DRW V%X, V%X, %d", cpu.PC(), x, y, n)
		sprite := make([]uint8, n)
		for row := uint16(0); row < uint16(n); row++ {
			sprite[row] = cpu.bus.MMU.Get8(cpu.I() + row)
		}
		collision := cpu.bus.PPU.DrawSprite(cpu.V(x), cpu.V(y), sprite)
		cpu.SetV(0xf, util.BoolToU8(collision))
		cpu.IncPC(2)

	case op == 0xe && kk == 0x9e: // SKP Vx
		dbgpr("0x%04x: SKP V%X", cpu.PC(), x)
		if cpu.bus.Keypad.Pressed(cpu.V(x)) {
			cpu.IncPC(4)
		} else {
			cpu.IncPC(2)
		}

	case op == 0xe && kk == 0xa1: // SKNP Vx
		dbgpr("0x%04x: SKNP V%X", cpu.PC(), x)
		if !cpu.bus.Keypad.Pressed(cpu.V(x)) {
			cpu.IncPC(4)
		} else {
			cpu.IncPC(2)
		}

	case op == 0xf && kk == 0x07: // LD Vx, DT
		dbgpr("0x%04x: LD V%X, DT", cpu.PC(), x)
		cpu.SetV(x, cpu.bus.Timer.Delay())
		cpu.IncPC(2)

	case op == 0xf && kk == 0x0a: // LD Vx, K
		// Blocks until a key is released; PC stays here until then.
		if !cpu.waitingKey {
			// A release recorded before the wait began must not satisfy it.
			cpu.bus.Keypad.TakeReleasedKey()
			cpu.waitingKey = true
			return 1, nil
		}
		key, ok := cpu.bus.Keypad.TakeReleasedKey()
		if !ok {
			return 1, nil
		}
		cpu.waitingKey = false
		dbgpr("0x%04x: LD V%X, K (got %X)", cpu.PC(), x, key)
		cpu.SetV(x, key)
		cpu.IncPC(2)

	case op == 0xf && kk == 0x15: // LD DT, Vx
		dbgpr("0x%04x: LD DT, V%X", cpu.PC(), x)
		cpu.bus.Timer.SetDelay(cpu.V(x))
		cpu.IncPC(2)

	case op == 0xf && kk == 0x18: // LD ST, Vx
		dbgpr("0x%04x: LD ST, V%X", cpu.PC(), x)
		cpu.bus.Timer.SetSound(cpu.V(x))
		cpu.IncPC(2)

	case op == 0xf && kk == 0x1e: // ADD I, Vx
		dbgpr("0x%04x: ADD I, V%X", cpu.PC(), x)
		cpu.SetI(cpu.I() + uint16(cpu.V(x)))
		cpu.IncPC(2)

	case op == 0xf && kk == 0x29: // LD F, Vx
		dbgpr("0x%04x: LD F, V%X", cpu.PC(), x)
		cpu.SetI(mmu.FontAddr(cpu.V(x)))
		cpu.IncPC(2)

	case op == 0xf && kk == 0x33: // LD B, Vx
		dbgpr("0x%04x: LD B, V%X", cpu.PC(), x)
		val := cpu.V(x)
		cpu.bus.MMU.Set8(cpu.I(), val/100)
		cpu.bus.MMU.Set8(cpu.I()+1, (val/10)%10)
		cpu.bus.MMU.Set8(cpu.I()+2, val%10)
		cpu.IncPC(2)

	case op == 0xf && kk == 0x55: // LD [I], Vx
		dbgpr("0x%04x: LD [I], V%X", cpu.PC(), x)
		for reg := uint8(0); reg <= x; reg++ {
			cpu.bus.MMU.Set8(cpu.I()+uint16(reg), cpu.V(reg))
		}
		if cpu.quirks.LegacyIndex {
			cpu.SetI(cpu.I() + uint16(x) + 1)
		}
		cpu.IncPC(2)

	case op == 0xf && kk == 0x65: // LD Vx, [I]
		dbgpr("0x%04x: LD V%X, [I]", cpu.PC(), x)
		for reg := uint8(0); reg <= x; reg++ {
			cpu.SetV(reg, cpu.bus.MMU.Get8(cpu.I()+uint16(reg)))
		}
		if cpu.quirks.LegacyIndex {
			cpu.SetI(cpu.I() + uint16(x) + 1)
		}
		cpu.IncPC(2)

	default:
		return 0, fmt.Errorf("Illegal instr: 0x%04x at 0x%04x", opcode, cpu.PC())
	}

	return 1, nil
}

// stepALU executes the 8xyn group. VF is written last so that flag
// results win when x or y is F.
func (cpu *CPU) stepALU(x, y, n uint8) error {
	vx, vy := cpu.V(x), cpu.V(y)

	switch n {
	case 0x0: // LD Vx, Vy
		dbgpr("0x%04x: LD V%X, V%X", cpu.PC(), x, y)
		cpu.SetV(x, vy)

	case 0x1: // OR Vx, Vy
		dbgpr("0x%04x: OR V%X, V%X", cpu.PC(), x, y)
		cpu.SetV(x, vx|vy)

	case 0x2: // AND Vx, Vy
		dbgpr("0x%04x: AND V%X, V%X", cpu.PC(), x, y)
		cpu.SetV(x, vx&vy)

	case 0x3: // XOR Vx, Vy
		dbgpr("0x%04x: XOR V%X, V%X", cpu.PC(), x, y)
		cpu.SetV(x, vx^vy)

	case 0x4: // ADD Vx, Vy
		dbgpr("0x%04x: ADD V%X, V%X", cpu.PC(), x, y)
		res, carry := add8(vx, vy)
		cpu.SetV(x, res)
		cpu.SetV(0xf, util.BoolToU8(carry))

	case 0x5: // SUB Vx, Vy
		dbgpr("0x%04x: SUB V%X, V%X", cpu.PC(), x, y)
		res, borrow := sub8(vx, vy)
		cpu.SetV(x, res)
		cpu.SetV(0xf, util.BoolToU8(!borrow))

	case 0x6: // SHR Vx {, Vy}
		dbgpr("0x%04x: SHR V%X, V%X", cpu.PC(), x, y)
		src := vx
		if cpu.quirks.LegacyShift {
			src = vy
		}
		cpu.SetV(x, src>>1)
		cpu.SetV(0xf, src&1)

	case 0x7: // SUBN Vx, Vy
		dbgpr("0x%04x: SUBN V%X, V%X", cpu.PC(), x, y)
		res, borrow := sub8(vy, vx)
		cpu.SetV(x, res)
		cpu.SetV(0xf, util.BoolToU8(!borrow))

	case 0xe: // SHL Vx {, Vy}
		dbgpr("0x%04x: SHL V%X, V%X", cpu.PC(), x, y)
		src := vx
		if cpu.quirks.LegacyShift {
			src = vy
		}
		cpu.SetV(x, src<<1)
		cpu.SetV(0xf, src>>7)

	default:
		return fmt.Errorf("Illegal instr: 0x8%X%X%X at 0x%04x", x, y, n, cpu.PC())
	}

	return nil
}
