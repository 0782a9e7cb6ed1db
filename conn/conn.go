// Package conn defines how the driver reaches physical memory: register windows and
// frame buffer storage are both handed out by a Memory provider.
package conn

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrMapFailed   = errors.New("conn: map failed")
	ErrOutOfMemory = errors.New("conn: out of memory")
)

// Mem is a section of physical memory visible to the CPU.
type Mem interface {
	// Bytes is the CPU view of the memory.
	Bytes() []byte

	// PhysAddr is the physical (bus) address of the first byte.
	PhysAddr() uint64
}

// Allocator hands out physically contiguous, cache coherent memory.
type Allocator interface {
	// PageSize is the allocation granularity in bytes.
	PageSize() int

	// Alloc allocates size bytes, size must be a multiple of PageSize.
	Alloc(size int) (Mem, error)

	// Free returns memory obtained from Alloc, size is the size passed to Alloc.
	Free(m Mem, size int) error
}

// Mapper maps physical address ranges that are owned by someone else.
type Mapper interface {
	// Map the physical range [phys, phys+size) read/write.
	Map(phys uint64, size int) (Mem, error)

	// Unmap a range obtained from Map.
	Unmap(m Mem) error
}

// Memory is a provider that can both allocate and map.
type Memory interface {
	Allocator
	Mapper
}

// Resource describes a physical memory window, as supplied by platform discovery.
type Resource struct {
	// Start is the physical base address.
	Start uint64

	// Len is the window length in bytes.
	Len int
}

func (r Resource) String() string {
	return fmt.Sprintf("[mem %#08x-%#08x]", r.Start, r.Start+uint64(r.Len)-1)
}

// PageAlign rounds size up to a multiple of pageSize.
func PageAlign(size, pageSize int) int {
	if pageSize <= 0 {
		return size
	}
	return (size + pageSize - 1) / pageSize * pageSize
}
