package lcdfb

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/BeatGlow/lcdfb/conn"
)

// Register is a word offset in the controller register block.
type Register uint

// Controller registers.
const (
	Enable       Register = 0 // Display enable, bit 0
	FramePointer Register = 1 // Frame buffer physical base address

	numRegisters = 2
)

func (r Register) String() string {
	switch r {
	case Enable:
		return "ENABLE"
	case FramePointer:
		return "FRAME_POINTER"
	default:
		return fmt.Sprintf("Register(%d)", uint(r))
	}
}

// Registers is a mapped controller register block. Accesses are 32 bits wide and
// are not reordered relative to each other.
type Registers struct {
	mapper conn.Mapper
	mem    conn.Mem
	words  []uint32
}

// MapRegisters maps the register window described by res.
func MapRegisters(m conn.Mapper, res conn.Resource) (*Registers, error) {
	if res.Len < numRegisters*4 {
		return nil, fmt.Errorf("%w: register window %s too small", ErrMapFailed, res)
	}
	if res.Start%4 != 0 {
		return nil, fmt.Errorf("%w: register window %s not word aligned", ErrMapFailed, res)
	}
	mem, err := m.Map(res.Start, res.Len)
	if err != nil {
		return nil, fmt.Errorf("%w: registers %s: %w", ErrMapFailed, res, err)
	}
	b := mem.Bytes()
	if len(b) < numRegisters*4 {
		_ = m.Unmap(mem)
		return nil, fmt.Errorf("%w: registers %s: short mapping", ErrMapFailed, res)
	}
	return &Registers{
		mapper: m,
		mem:    mem,
		words:  unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), numRegisters),
	}, nil
}

// Write stores v in register r.
func (regs *Registers) Write(r Register, v uint32) {
	atomic.StoreUint32(regs.word(r), v)
}

// Read loads register r.
func (regs *Registers) Read(r Register) uint32 {
	return atomic.LoadUint32(regs.word(r))
}

func (regs *Registers) word(r Register) *uint32 {
	if r >= numRegisters {
		panic(fmt.Sprintf("lcdfb: register offset %d out of range", uint(r)))
	}
	return &regs.words[r]
}

// PhysAddr is the physical base of the register block.
func (regs *Registers) PhysAddr() uint64 {
	return regs.mem.PhysAddr()
}

// Close unmaps the registers.
func (regs *Registers) Close() error {
	return regs.mapper.Unmap(regs.mem)
}

func (regs *Registers) String() string {
	return fmt.Sprintf("registers at %#x", regs.PhysAddr())
}
