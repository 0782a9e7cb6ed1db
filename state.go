package lcdfb

import (
	"fmt"
	"log"
)

// State of the display.
type State uint8

const (
	Disabled State = iota
	Enabled
)

func (s State) String() string {
	if s == Enabled {
		return "enabled"
	}
	return "disabled"
}

// BlankMode is a display power state request, numbered like the Linux FB_BLANK_* modes.
type BlankMode uint8

const (
	Unblank           BlankMode = iota // Display on
	BlankNormal                        // Display off, power on
	BlankVSyncSuspend                  // Vertical sync suspended
	BlankHSyncSuspend                  // Horizontal sync suspended
	BlankPowerDown                     // Powered down
)

func (m BlankMode) String() string {
	switch m {
	case Unblank:
		return "unblank"
	case BlankNormal:
		return "normal"
	case BlankVSyncSuspend:
		return "vsync suspend"
	case BlankHSyncSuspend:
		return "hsync suspend"
	case BlankPowerDown:
		return "power down"
	default:
		return fmt.Sprintf("BlankMode(%d)", uint8(m))
	}
}

// Panel drives the controller enable bit. The controller has no partial power
// states, so every blank mode turns the display off.
type Panel struct {
	regs  *Registers
	state State
}

// NewPanel returns a Panel in the Disabled state. The hardware is not touched.
func NewPanel(regs *Registers) *Panel {
	return &Panel{regs: regs}
}

// State returns the last state written to the hardware.
func (p *Panel) State() State {
	return p.state
}

// Unblank enables the display.
func (p *Panel) Unblank() {
	p.regs.Write(Enable, 1)
	p.state = Enabled
}

// Blank applies mode. There is no feedback from the hardware, so it always succeeds.
// Unknown modes leave the display as it is.
func (p *Panel) Blank(mode BlankMode) error {
	switch mode {
	case Unblank:
		p.Unblank()
	case BlankNormal, BlankVSyncSuspend, BlankHSyncSuspend, BlankPowerDown:
		p.regs.Write(Enable, 0)
		p.state = Disabled
	default:
		if debug {
			log.Printf("lcdfb: blank %s ignored", mode)
		}
		return nil
	}
	if debug {
		log.Printf("lcdfb: blank %s: display %s", mode, p.state)
	}
	return nil
}
