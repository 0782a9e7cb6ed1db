package conntest

import (
	"errors"
	"testing"
)

func TestMemoryAccounting(t *testing.T) {
	m := New()

	a, err := m.Alloc(8192)
	if err != nil {
		t.Fatal(err)
	}
	if a.Bytes()[0] != m.Fill {
		t.Errorf("expected fresh allocation to be filled with %#02x", m.Fill)
	}
	v, err := m.Map(0x1000, 8)
	if err != nil {
		t.Fatal(err)
	}
	if n := m.Live(); n != 2 {
		t.Fatalf("expected 2 live blocks, got %d", n)
	}

	if err = m.Unmap(a); !errors.Is(err, ErrWrongKind) {
		t.Errorf("expected unmap of allocation to fail with %v, got %v", ErrWrongKind, err)
	}
	if err = m.Free(v, 8); !errors.Is(err, ErrWrongKind) {
		t.Errorf("expected free of mapping to fail with %v, got %v", ErrWrongKind, err)
	}
	if err = m.Free(a, 8192); err != nil {
		t.Error(err)
	}
	if err = m.Free(a, 8192); !errors.Is(err, ErrNotLive) {
		t.Errorf("expected double free to fail with %v, got %v", ErrNotLive, err)
	}
	if err = m.Unmap(v); err != nil {
		t.Error(err)
	}
	if n := m.Live(); n != 0 {
		t.Errorf("expected no live blocks, got %d", n)
	}
}

func TestMemoryMapPersists(t *testing.T) {
	m := New()
	v, _ := m.Map(0x2000, 8)
	v.(*Block).Words()[1] = 0xdeadbeef
	_ = m.Unmap(v)

	v, _ = m.Map(0x2000, 8)
	if w := v.(*Block).Words()[1]; w != 0xdeadbeef {
		t.Errorf("expected word to persist across mappings, got %#08x", w)
	}
}

func TestMemoryAllocAlignment(t *testing.T) {
	m := New()
	if _, err := m.Alloc(100); err == nil {
		t.Error("expected unaligned allocation to fail")
	}
}
