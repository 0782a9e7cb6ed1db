// Package conntest implements a fake physical memory provider for tests.
//
// Memory keeps its backing storage per physical address, so tests can inspect
// register and pixel contents after a mapping has been released.
package conntest

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/BeatGlow/lcdfb/conn"
)

// Errors returned on misuse of the provider.
var (
	ErrNotLive   = errors.New("conntest: memory is not live")
	ErrWrongKind = errors.New("conntest: memory released with the wrong strategy")
	ErrWrongSize = errors.New("conntest: free size does not match allocation")
)

// Kind tells how a Block was obtained.
type Kind uint8

const (
	Allocated Kind = iota
	Mapped
)

func (k Kind) String() string {
	if k == Mapped {
		return "mapped"
	}
	return "allocated"
}

// Block is a piece of fake physical memory.
type Block struct {
	kind  Kind
	phys  uint64
	size  int
	words []uint32
	live  bool
}

func (b *Block) Bytes() []byte {
	if len(b.words) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&b.words[0])), b.size)
}

func (b *Block) PhysAddr() uint64 { return b.phys }

// Words is the 32-bit view of the block.
func (b *Block) Words() []uint32 { return b.words }

func (b *Block) String() string {
	return fmt.Sprintf("%s %#x (%d bytes)", b.kind, b.phys, b.size)
}

// Call records one provider call.
type Call struct {
	Op   string
	Phys uint64
	Size int
}

// Memory is a fake conn.Memory.
type Memory struct {
	// Page is the page size, 4096 when zero.
	Page int

	// AllocBase is the physical address of the first allocation, 0x40000000 when zero.
	AllocBase uint64

	// AllocErr fails every Alloc when set.
	AllocErr error

	// MapErr fails Map for the listed physical addresses.
	MapErr map[uint64]error

	// Fill is written to freshly allocated memory, to catch missing clears.
	Fill byte

	// Calls is the call log, in order.
	Calls []Call

	next   uint64
	blocks map[uint64]*Block
	live   map[*Block]struct{}
}

// New returns a Memory with defaults.
func New() *Memory {
	return &Memory{Fill: 0xa5}
}

func (m *Memory) PageSize() int {
	if m.Page == 0 {
		return 4096
	}
	return m.Page
}

func (m *Memory) Alloc(size int) (conn.Mem, error) {
	m.Calls = append(m.Calls, Call{Op: "alloc", Size: size})
	if m.AllocErr != nil {
		return nil, m.AllocErr
	}
	if size <= 0 || size%m.PageSize() != 0 {
		return nil, fmt.Errorf("conntest: allocation of %d bytes is not page aligned", size)
	}
	if m.next == 0 {
		m.next = m.AllocBase
		if m.next == 0 {
			m.next = 0x40000000
		}
	}
	b := m.block(Allocated, m.next, size)
	m.next += uint64(size)
	for i := range b.words {
		b.words[i] = uint32(m.Fill) * 0x01010101
	}
	return b, nil
}

func (m *Memory) Free(mem conn.Mem, size int) error {
	m.Calls = append(m.Calls, Call{Op: "free", Phys: mem.PhysAddr(), Size: size})
	b, err := m.release(mem, Allocated)
	if err != nil {
		return err
	}
	if b.size != size {
		return ErrWrongSize
	}
	return nil
}

func (m *Memory) Map(phys uint64, size int) (conn.Mem, error) {
	m.Calls = append(m.Calls, Call{Op: "map", Phys: phys, Size: size})
	if err := m.MapErr[phys]; err != nil {
		return nil, err
	}
	if b, ok := m.blocks[phys]; ok && b.size >= size {
		b.kind, b.live = Mapped, true
		m.live[b] = struct{}{}
		return b, nil
	}
	return m.block(Mapped, phys, size), nil
}

func (m *Memory) Unmap(mem conn.Mem) error {
	m.Calls = append(m.Calls, Call{Op: "unmap", Phys: mem.PhysAddr()})
	_, err := m.release(mem, Mapped)
	return err
}

// Live is the number of allocations and mappings not yet released.
func (m *Memory) Live() int {
	return len(m.live)
}

// Count returns how many times op was called.
func (m *Memory) Count(op string) (n int) {
	for _, c := range m.Calls {
		if c.Op == op {
			n++
		}
	}
	return
}

// Ops returns the operation names of the call log.
func (m *Memory) Ops() []string {
	ops := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Block returns the backing storage at phys, live or not.
func (m *Memory) Block(phys uint64) *Block {
	return m.blocks[phys]
}

func (m *Memory) block(kind Kind, phys uint64, size int) *Block {
	if m.blocks == nil {
		m.blocks = make(map[uint64]*Block)
		m.live = make(map[*Block]struct{})
	}
	b := &Block{
		kind:  kind,
		phys:  phys,
		size:  size,
		words: make([]uint32, (size+3)/4),
		live:  true,
	}
	m.blocks[phys] = b
	m.live[b] = struct{}{}
	return b
}

func (m *Memory) release(mem conn.Mem, kind Kind) (*Block, error) {
	b, ok := mem.(*Block)
	if !ok || !b.live {
		return nil, ErrNotLive
	}
	if b.kind != kind {
		return nil, ErrWrongKind
	}
	b.live = false
	delete(m.live, b)
	return b, nil
}

var _ conn.Memory = (*Memory)(nil)
