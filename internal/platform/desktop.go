package platform

import (
	"image"
	"log"
	"math"
	"runtime"
	"sync"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"

	"github.com/stigoleg/keep-moving/internal/motion"
)

// Desktop reads the primary display's bounds and warps the real cursor.
//
// The engine works with y growing upward from the bottom of the screen, while
// the OS places the origin at the top-left corner of the display, so MoveTo
// flips y against the last bounds it reported.
type Desktop struct {
	mu     sync.Mutex
	bounds image.Rectangle
}

// NewDesktop returns a Display backed by the real desktop.
func NewDesktop() *Desktop {
	return &Desktop{}
}

// Bounds returns the size of the active display. It prefers the display
// rectangle reported by the screenshot backend and falls back to robotgo's
// main screen size.
func (d *Desktop) Bounds() (motion.Size, bool) {
	rect, ok := activeDisplay()
	if !ok {
		return motion.Size{}, false
	}

	d.mu.Lock()
	d.bounds = rect
	d.mu.Unlock()

	return motion.Size{Width: float64(rect.Dx()), Height: float64(rect.Dy())}, true
}

// MoveTo warps the cursor to p, given in engine space.
func (d *Desktop) MoveTo(p motion.Point) {
	d.mu.Lock()
	rect := d.bounds
	d.mu.Unlock()

	if rect.Empty() {
		return
	}

	at := toScreen(rect, p)
	robotgo.Move(at.X, at.Y)
}

// toScreen maps an engine point onto the pixel grid of rect. Engine space is
// inclusive on [0, width] and [0, height], so the result is clamped to the
// last pixel row and column to keep the cursor on this display.
func toScreen(rect image.Rectangle, p motion.Point) image.Point {
	x := rect.Min.X + int(math.Round(p.X))
	y := rect.Max.Y - 1 - int(math.Round(p.Y))
	return image.Point{
		X: min(max(x, rect.Min.X), rect.Max.X-1),
		Y: min(max(y, rect.Min.Y), rect.Max.Y-1),
	}
}

func activeDisplay() (image.Rectangle, bool) {
	if screenshot.NumActiveDisplays() > 0 {
		if rect := screenshot.GetDisplayBounds(0); !rect.Empty() {
			return rect, true
		}
	}

	w, h := robotgo.GetScreenSize()
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(0, 0, w, h), true
}

// CheckActivitySimulationCapability checks if the cursor can be driven on this
// system. It should be called before starting so the user gets early feedback.
func CheckActivitySimulationCapability() SimulationCapability {
	if _, ok := activeDisplay(); !ok {
		log.Printf("platform: no active display found")
		return SimulationCapability{
			ErrorMessage: "No active display found",
			Instructions: displayInstructions,
		}
	}

	capability := SimulationCapability{CanSimulate: true}
	if runtime.GOOS == "darwin" {
		capability.Instructions = accessibilityInstructions
	}
	return capability
}
