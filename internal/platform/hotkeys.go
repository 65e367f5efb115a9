package platform

import (
	"context"
	"log"
	"strings"

	hook "github.com/robotn/gohook"
)

// Hotkeys listens for global key chords while the program runs in the
// background.
type Hotkeys struct {
	Pause []string
	Quit  []string
}

// DefaultHotkeys returns the default pause and quit chords.
func DefaultHotkeys() Hotkeys {
	return Hotkeys{Pause: DefaultPauseHotkey, Quit: DefaultQuitHotkey}
}

// Listen registers the chords and blocks until ctx is cancelled. onPause and
// onQuit run on the hook's event goroutine.
func (h Hotkeys) Listen(ctx context.Context, onPause, onQuit func()) {
	if len(h.Pause) > 0 && onPause != nil {
		hook.Register(hook.KeyDown, h.Pause, func(e hook.Event) {
			log.Printf("hotkeys: %s pressed", Chord(h.Pause))
			onPause()
		})
	}
	if len(h.Quit) > 0 && onQuit != nil {
		hook.Register(hook.KeyDown, h.Quit, func(e hook.Event) {
			log.Printf("hotkeys: %s pressed", Chord(h.Quit))
			onQuit()
		})
	}

	s := hook.Start()
	go func() {
		<-ctx.Done()
		hook.End()
	}()

	log.Printf("hotkeys: listening (pause=%s, quit=%s)", Chord(h.Pause), Chord(h.Quit))
	<-hook.Process(s)
	log.Printf("hotkeys: stopped")
}

// Chord renders a gohook key list the way users type it, modifiers first:
// []string{"p", "ctrl", "alt"} becomes "ctrl+alt+p".
func Chord(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	parts := append(append([]string{}, keys[1:]...), keys[0])
	return strings.Join(parts, "+")
}
