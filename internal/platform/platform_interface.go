package platform

import "github.com/stigoleg/keep-moving/internal/motion"

// Display is the desktop as seen by the motion engine: a source of screen
// bounds and a cursor that can be warped.
type Display interface {
	motion.Screen
	motion.Cursor
}

// SimulationCapability represents the result of checking if cursor movement will work
type SimulationCapability struct {
	// CanSimulate indicates whether cursor movement will work on this system
	CanSimulate bool

	// ErrorMessage is a user-friendly error message if movement won't work
	ErrorMessage string

	// Instructions provides step-by-step instructions to fix the issue
	Instructions string
}
