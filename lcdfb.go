// Package lcdfb is the core of a frame buffer driver for a fixed-function LCD
// controller with two 32-bit registers: an enable bit at word 0 and the frame buffer
// physical base address at word 1.
//
// [Assign] brings a controller up: it maps the registers, acquires 24-bit packed RGB
// frame buffer memory, points the controller at it, enables the display and
// registers the resulting [Surface] with a graphics [Framework]. [Driver.Release]
// tears it down again. Everything acquired during Assign is released in reverse
// order if a later step fails.
//
// The driver does no locking; the framework is expected to serialize calls.
package lcdfb

import (
	"errors"
	"os"

	"github.com/BeatGlow/lcdfb/conn"
	"github.com/BeatGlow/lcdfb/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("LCDFB_DEBUG") != ""
}

// Errors
var (
	ErrMapFailed          = conn.ErrMapFailed
	ErrOutOfMemory        = conn.ErrOutOfMemory
	ErrIndexOutOfRange    = pixel.ErrIndexOutOfRange
	ErrRegistrationFailed = errors.New("lcdfb: registration failed")
	ErrInvalidConfig      = errors.New("lcdfb: invalid configuration")
)
