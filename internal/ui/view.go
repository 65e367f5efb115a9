package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/stigoleg/keep-moving/internal/motion"
)

// View renders the current state of the model to a string.
func View(m Model) string {
	if m.ShowHelp {
		return helpView(m.version)
	}

	switch m.State {
	case stateMenu:
		return menuView(m)
	case stateTimedInput:
		return timedInputView(m)
	case stateRunning:
		return runningView(m)
	}

	return ""
}

func menuView(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("Keep Moving"))
	b.WriteString("\n\n")

	b.WriteString(Current.Unselected.Render("Select an option:"))
	b.WriteString("\n\n")

	menuItems := []string{
		"Keep cursor moving indefinitely",
		"Keep cursor moving for X minutes",
		"Quit",
	}

	for i, opt := range menuItems {
		if i == m.Selected {
			b.WriteString(Current.Selected.Render("> " + opt))
		} else {
			b.WriteString(Current.Unselected.Render("  " + opt))
		}
		b.WriteString("\n")
	}

	if m.ErrorMessage != "" {
		b.WriteString("\n" + Current.Error.Render(m.ErrorMessage))
	}

	b.WriteString("\n\n" + m.help.View(keys.ForState(stateMenu)))
	return b.String()
}

func timedInputView(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("Enter Duration"))
	b.WriteString("\n\n")

	b.WriteString(Current.Unselected.Render("Enter duration in minutes:"))
	b.WriteString("\n")
	input := m.Input
	if input == "" {
		input = " "
	}
	b.WriteString(Current.InputBox.Render(input))
	b.WriteString("\n\n")

	b.WriteString(m.help.View(keys.ForState(stateTimedInput)))

	if m.ErrorMessage != "" {
		b.WriteString("\n\n" + Current.Error.Render(m.ErrorMessage))
	}

	return b.String()
}

func runningView(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("Keep Moving Active"))
	b.WriteString("\n\n")

	b.WriteString(phaseView(m.Status.Motion.Pause.Phase))
	b.WriteString("\n")

	st := m.Status.Motion
	b.WriteString(Current.Detail.Render(fmt.Sprintf("position  %.0f, %.0f", st.Position.X, st.Position.Y)))
	b.WriteString("\n")
	b.WriteString(Current.Detail.Render(fmt.Sprintf("heading   %.0f°", st.Heading*180/math.Pi)))
	b.WriteString("\n")
	b.WriteString(Current.Detail.Render(fmt.Sprintf("speed     %.2fx", st.SpeedMultiplier)))
	b.WriteString("\n")
	b.WriteString(Current.Detail.Render(fmt.Sprintf("screen    %s", m.Status.Health)))
	b.WriteString("\n")

	if m.Duration > 0 {
		remaining := m.TimeRemaining()
		minutes := int(remaining.Minutes())
		seconds := int(remaining.Seconds()) % 60
		b.WriteString("\n")
		b.WriteString(Current.Countdown.Render(fmt.Sprintf("%d:%02d remaining", minutes, seconds)))
		b.WriteString("\n")

		pct := 1.0 - float64(remaining)/float64(m.Duration)
		bar := m.progress
		if bar.Width == 0 {
			bar = newProgress()
		}
		b.WriteString(" " + bar.ViewAs(math.Min(math.Max(pct, 0), 1)))
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.help.View(keys.ForState(stateRunning)))

	if m.ErrorMessage != "" {
		b.WriteString("\n\n" + Current.Error.Render(m.ErrorMessage))
	}

	return b.String()
}

func phaseView(p motion.Phase) string {
	switch p {
	case motion.SlowingDown:
		return Current.SlowingStatus.Render("Slowing down")
	case motion.Paused:
		return Current.PausedStatus.Render("Paused")
	default:
		return Current.MovingStatus.Render("Moving")
	}
}

// HelpView renders the command line usage shown by --help.
func HelpView(version string) string {
	return helpView(version)
}

func helpView(version string) string {
	title := "Keep-Moving Help"
	if version != "" {
		title += " " + version
	}

	help := title + `

Usage:
  keepmoving [flags]

Flags:
  -d, --duration string   Duration to keep the cursor moving (e.g., "2h30m" or "150")
  -c, --clock string      Keep moving until a time of day (e.g., "22:00" or "10:00PM")
      --headless          Run without the terminal interface
      --no-hotkeys        Disable the global pause and quit hotkeys
      --seed int          Seed for reproducible motion (0 uses the current time)
      --log string        Log file used by the terminal interface (default "debug.log")
  -v, --version           Show version information
  -h, --help              Show help message

Examples:
  keepmoving                   # Start with interactive TUI
  keepmoving -d 2h30m          # Move for 2 hours and 30 minutes
  keepmoving -d 150            # Move for 150 minutes
  keepmoving -c 17:30          # Move until 17:30
  keepmoving --headless        # Move until interrupted

Hotkeys:
  ctrl+alt+p : Pause or resume
  ctrl+alt+q : Quit

Navigation:
  ↑/k, ↓/j   : Navigate menu
  Enter      : Select option
  p/Space    : Pause or resume while running
  h          : Show this help
  q/Esc      : Quit/Back

Press 'h' or 'Esc' to close help`

	return Current.Help.Render(help)
}
