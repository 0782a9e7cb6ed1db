package lcdfb

import (
	"errors"
	"testing"

	"github.com/BeatGlow/lcdfb/conn"
	"github.com/BeatGlow/lcdfb/conn/conntest"
)

const testRegisterBase = 0x43c00000

var testRegisterWindow = conn.Resource{Start: testRegisterBase, Len: 8}

func TestRegisters(t *testing.T) {
	m := conntest.New()
	regs, err := MapRegisters(m, testRegisterWindow)
	if err != nil {
		t.Fatal(err)
	}

	regs.Write(Enable, 1)
	regs.Write(FramePointer, 0x3e000000)

	words := m.Block(testRegisterBase).Words()
	if words[0] != 1 {
		t.Errorf("expected ENABLE at word 0 to be 1, got %#x", words[0])
	}
	if words[1] != 0x3e000000 {
		t.Errorf("expected FRAME_POINTER at word 1 to be %#x, got %#x", 0x3e000000, words[1])
	}
	if v := regs.Read(FramePointer); v != 0x3e000000 {
		t.Errorf("expected read back of %#x, got %#x", 0x3e000000, v)
	}
	if v := regs.PhysAddr(); v != testRegisterBase {
		t.Errorf("expected physical address %#x, got %#x", testRegisterBase, v)
	}

	if err = regs.Close(); err != nil {
		t.Fatal(err)
	}
	if n := m.Live(); n != 0 {
		t.Errorf("expected registers to be unmapped, %d live", n)
	}
}

func TestRegistersOffsetOutOfRange(t *testing.T) {
	regs, err := MapRegisters(conntest.New(), conn.Resource{Start: testRegisterBase, Len: 16})
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic writing register 2")
		}
	}()
	regs.Write(Register(2), 0)
}

func TestMapRegistersErrors(t *testing.T) {
	tests := []struct {
		name string
		res  conn.Resource
		fail bool
	}{
		{"too small", conn.Resource{Start: testRegisterBase, Len: 4}, false},
		{"unaligned", conn.Resource{Start: testRegisterBase + 2, Len: 8}, false},
		{"map error", testRegisterWindow, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			m := conntest.New()
			if test.fail {
				m.MapErr = map[uint64]error{test.res.Start: errors.New("busy")}
			}
			if _, err := MapRegisters(m, test.res); !errors.Is(err, ErrMapFailed) {
				it.Errorf("expected %v, got %v", ErrMapFailed, err)
			}
			if n := m.Live(); n != 0 {
				it.Errorf("expected nothing mapped, %d live", n)
			}
		})
	}
}

func TestRegisterString(t *testing.T) {
	if v := FramePointer.String(); v != "FRAME_POINTER" {
		t.Errorf("unexpected name %q", v)
	}
	if v := Register(7).String(); v != "Register(7)" {
		t.Errorf("unexpected name %q", v)
	}
}
