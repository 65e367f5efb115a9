package platform

// Default global hotkey chords, in gohook key names. The last key is the one
// that completes the chord.
var (
	DefaultPauseHotkey = []string{"p", "ctrl", "alt"}
	DefaultQuitHotkey  = []string{"q", "ctrl", "alt"}
)

const (
	accessibilityInstructions = "Enable Accessibility for the process that moves the cursor. " +
		"If you run from Terminal, enable Terminal in System Settings, Privacy and Security, Accessibility."
	displayInstructions = "Make sure a graphical session is running and DISPLAY or WAYLAND_DISPLAY is set."
)
