package platform

import (
	"image"
	"testing"

	"github.com/stigoleg/keep-moving/internal/motion"
)

func TestChord(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{
			name: "empty",
			keys: nil,
			want: "",
		},
		{
			name: "single key",
			keys: []string{"p"},
			want: "p",
		},
		{
			name: "default pause",
			keys: DefaultPauseHotkey,
			want: "ctrl+alt+p",
		},
		{
			name: "default quit",
			keys: DefaultQuitHotkey,
			want: "ctrl+alt+q",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Chord(tt.keys); got != tt.want {
				t.Errorf("Chord(%v) = %q, want %q", tt.keys, got, tt.want)
			}
		})
	}
}

func TestChordDoesNotMutateInput(t *testing.T) {
	keys := []string{"p", "ctrl", "alt"}
	_ = Chord(keys)
	if keys[0] != "p" || keys[1] != "ctrl" || keys[2] != "alt" {
		t.Errorf("Chord modified its input: %v", keys)
	}
}

func TestDefaultHotkeys(t *testing.T) {
	h := DefaultHotkeys()
	if Chord(h.Pause) == Chord(h.Quit) {
		t.Error("pause and quit hotkeys must differ")
	}
}

func TestToScreen(t *testing.T) {
	primary := image.Rect(0, 0, 1920, 1080)
	secondary := image.Rect(1920, -200, 3200, 824)

	tests := []struct {
		name string
		rect image.Rectangle
		p    motion.Point
		want image.Point
	}{
		{"bottom left corner", primary, motion.Point{X: 0, Y: 0}, image.Pt(0, 1079)},
		{"top right corner", primary, motion.Point{X: 1920, Y: 1080}, image.Pt(1919, 0)},
		{"fractional bottom edge", primary, motion.Point{X: 0.4, Y: 0.4}, image.Pt(0, 1079)},
		{"fractional right edge", primary, motion.Point{X: 1919.6, Y: 540}, image.Pt(1919, 539)},
		{"center", primary, motion.Point{X: 960, Y: 540}, image.Pt(960, 539)},
		{"outside rounds back in", primary, motion.Point{X: -3, Y: 1200}, image.Pt(0, 0)},
		{"offset display bottom left", secondary, motion.Point{X: 0, Y: 0}, image.Pt(1920, 823)},
		{"offset display top right", secondary, motion.Point{X: 1280, Y: 1024}, image.Pt(3199, -200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toScreen(tt.rect, tt.p)
			if got != tt.want {
				t.Errorf("toScreen(%v, %v) = %v, want %v", tt.rect, tt.p, got, tt.want)
			}
			if !got.In(tt.rect) {
				t.Errorf("toScreen(%v, %v) = %v is outside the display", tt.rect, tt.p, got)
			}
		})
	}
}

func TestDesktopImplementsDisplay(t *testing.T) {
	var _ Display = NewDesktop()
}
