package conn

import (
	"github.com/juju/errors"
	"golang.org/x/sys/unix"
	"periph.io/x/host/v3/pmem"
)

// Host is the Memory provider of the running system. Allocations are locked
// physical pages from periph's pmem, fixed ranges are mapped through /dev/mem.
//
// Both require root privileges.
type Host struct{}

// PageSize returns the system page size.
func (Host) PageSize() int {
	return unix.Getpagesize()
}

// Alloc allocates physically contiguous memory.
func (h Host) Alloc(size int) (Mem, error) {
	if size <= 0 || size%h.PageSize() != 0 {
		return nil, errors.NotValidf("allocation size %d", size)
	}
	m, err := pmem.Alloc(size)
	if err != nil {
		return nil, errors.Annotatef(err, "conn: allocate %d bytes", size)
	}
	return m, nil
}

// Free releases memory returned by Alloc.
func (Host) Free(m Mem, size int) error {
	a, ok := m.(*pmem.MemAlloc)
	if !ok {
		return errors.NotValidf("memory %T", m)
	}
	if n := len(a.Bytes()); n != size {
		return errors.Errorf("conn: free of %d bytes at %#x, allocated %d", size, a.PhysAddr(), n)
	}
	return errors.Annotatef(a.Close(), "conn: free %#x", a.PhysAddr())
}

// Map maps a fixed physical range.
func (Host) Map(phys uint64, size int) (Mem, error) {
	v, err := pmem.Map(phys, size)
	if err != nil {
		return nil, errors.Annotatef(err, "conn: map %#x (%d bytes)", phys, size)
	}
	return v, nil
}

// Unmap releases a mapping returned by Map.
func (Host) Unmap(m Mem) error {
	v, ok := m.(*pmem.View)
	if !ok {
		return errors.NotValidf("mapping %T", m)
	}
	return errors.Annotatef(v.Close(), "conn: unmap %#x", v.PhysAddr())
}

var _ Memory = Host{}
