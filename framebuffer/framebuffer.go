// Package framebuffer owns the pixel storage scanned out by the LCD controller.
//
// Storage is either allocated by the driver (coherent, physically contiguous memory)
// or provided by the platform at a fixed physical address and only mapped. The two
// come back from Acquire as distinct Region variants, and Release tears each down
// with its own strategy: allocated memory is freed, provided memory is unmapped.
package framebuffer

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/BeatGlow/lcdfb/conn"
)

// BytesPerPixel for packed 24-bit RGB.
const BytesPerPixel = 3

// Errors
var (
	ErrMapFailed   = conn.ErrMapFailed
	ErrOutOfMemory = conn.ErrOutOfMemory
	ErrReleased    = errors.New("framebuffer: region already released")
	ErrSize        = errors.New("framebuffer: invalid size")
)

// Ownership of a Region.
type Ownership uint8

const (
	// Allocated memory is owned by the driver and freed on release.
	Allocated Ownership = iota

	// ExternallyProvided memory is owned by the platform and only unmapped on release.
	ExternallyProvided
)

func (o Ownership) String() string {
	switch o {
	case Allocated:
		return "allocated"
	case ExternallyProvided:
		return "externally provided"
	default:
		return fmt.Sprintf("Ownership(%d)", uint8(o))
	}
}

// Options describe the storage to acquire.
type Options struct {
	// XResVirtual and YResVirtual are the buffer dimensions in pixels.
	XResVirtual int
	YResVirtual int

	// PhysAddr is a fixed physical buffer address, 0 to allocate.
	PhysAddr uint64
}

// Size of the buffer in bytes.
func (o Options) Size() int {
	return o.XResVirtual * o.YResVirtual * BytesPerPixel
}

// Region is an acquired frame buffer. The only implementations are the ones
// returned by Acquire.
type Region interface {
	// Bytes is the CPU view of the pixel storage, Len bytes long.
	Bytes() []byte

	// PhysAddr is the physical base address, stable for the region lifetime.
	PhysAddr() uint64

	// Len is the buffer length in bytes.
	Len() int

	// Ownership tells who owns the memory.
	Ownership() Ownership

	region()
}

type baseRegion struct {
	mem      conn.Mem
	size     int
	released bool
}

func (r *baseRegion) Bytes() []byte    { return r.mem.Bytes()[:r.size] }
func (r *baseRegion) PhysAddr() uint64 { return r.mem.PhysAddr() }
func (r *baseRegion) Len() int         { return r.size }
func (r *baseRegion) region()          {}

// allocatedRegion carries what Free needs: the allocator and the rounded-up size.
type allocatedRegion struct {
	baseRegion
	alloc     conn.Allocator
	allocSize int
}

func (r *allocatedRegion) Ownership() Ownership { return Allocated }

func (r *allocatedRegion) String() string {
	return fmt.Sprintf("allocated frame buffer %#x (%d of %d bytes)", r.PhysAddr(), r.size, r.allocSize)
}

// mappedRegion carries what Unmap needs: the mapper.
type mappedRegion struct {
	baseRegion
	mapper conn.Mapper
}

func (r *mappedRegion) Ownership() Ownership { return ExternallyProvided }

func (r *mappedRegion) String() string {
	return fmt.Sprintf("mapped frame buffer %#x (%d bytes)", r.PhysAddr(), r.size)
}

// Acquire obtains and clears the frame buffer storage.
//
// With a fixed physical address the range is mapped and the allocator is never
// called, otherwise a page aligned coherent buffer is allocated.
func Acquire(m conn.Memory, opts Options) (Region, error) {
	size := opts.Size()
	if opts.XResVirtual <= 0 || opts.YResVirtual <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, opts.XResVirtual, opts.YResVirtual)
	}

	var r Region
	if opts.PhysAddr != 0 {
		mem, err := m.Map(opts.PhysAddr, size)
		if err != nil {
			return nil, fmt.Errorf("%w: frame buffer %#x (%d bytes): %w", ErrMapFailed, opts.PhysAddr, size, err)
		}
		r = &mappedRegion{
			baseRegion: baseRegion{mem: mem, size: size},
			mapper:     m,
		}
	} else {
		allocSize := conn.PageAlign(size, m.PageSize())
		mem, err := m.Alloc(allocSize)
		if err != nil {
			return nil, fmt.Errorf("%w: frame buffer of %d bytes: %w", ErrOutOfMemory, allocSize, err)
		}
		r = &allocatedRegion{
			baseRegion: baseRegion{mem: mem, size: size},
			alloc:      m,
			allocSize:  allocSize,
		}
	}

	// The controller may already be fetching from this memory.
	clearIO(r.Bytes())
	return r, nil
}

// clearIO zeroes device memory with 32-bit stores that are neither merged nor
// elided. Bytes outside a word aligned middle are stored one at a time.
func clearIO(b []byte) {
	n := 0
	for ; n < len(b) && uintptr(unsafe.Pointer(&b[n]))%4 != 0; n++ {
		b[n] = 0
	}
	if words := (len(b) - n) / 4; words > 0 {
		w := unsafe.Slice((*uint32)(unsafe.Pointer(&b[n])), words)
		for i := range w {
			atomic.StoreUint32(&w[i], 0)
		}
		n += words * 4
	}
	for ; n < len(b); n++ {
		b[n] = 0
	}
}

// Release tears a Region down with the strategy matching its ownership. Releasing
// the same Region twice returns ErrReleased and leaves the memory provider alone.
func Release(r Region) error {
	switch r := r.(type) {
	case *allocatedRegion:
		if r.released {
			return ErrReleased
		}
		r.released = true
		return r.alloc.Free(r.mem, r.allocSize)

	case *mappedRegion:
		if r.released {
			return ErrReleased
		}
		r.released = true
		return r.mapper.Unmap(r.mem)

	default:
		panic(fmt.Sprintf("framebuffer: release of foreign region %T", r))
	}
}
