package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stigoleg/keep-moving/internal/ui"
	"github.com/stigoleg/keep-moving/internal/util"
)

// ErrHelp is returned when the user asked for usage information.
var ErrHelp = flag.ErrHelp

type Config struct {
	// Duration is how long to run; zero means indefinitely.
	Duration time.Duration

	// Clock is the wall-clock time the session ends at, when set with --clock.
	Clock time.Time

	Headless    bool
	Hotkeys     bool
	Seed        int64
	LogFile     string
	ShowVersion bool
}

// FormatError renders a flag error for the terminal.
func FormatError(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "Invalid duration format:") || strings.Contains(msg, "invalid time format:") {
		parts := strings.SplitN(msg, "\n\n", 2)
		if len(parts) == 2 {
			errorBox := ui.Current.Help.
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#FF4040"))

			header := lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF4040")).
				Render(parts[0])

			details := lipgloss.NewStyle().
				Foreground(lipgloss.Color("#999999")).
				Render(parts[1])

			return errorBox.Render(fmt.Sprintf("%s\n\n%s", header, details))
		}
	}
	return ui.Current.Error.Render(msg)
}

// ParseFlags parses os.Args. version is shown in the --help output.
func ParseFlags(version string) (*Config, error) {
	return ParseFlagsWithNow(version, time.Now())
}

// ParseFlagsWithNow parses os.Args relative to now, which anchors --clock.
func ParseFlagsWithNow(version string, now time.Time) (*Config, error) {
	return parse(os.Args[1:], version, now, os.Stdout)
}

func parse(args []string, version string, now time.Time, out io.Writer) (*Config, error) {
	flags := flag.NewFlagSet("keepmoving", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {
		fmt.Fprint(out, ui.HelpView(version))
	}

	duration := flags.String("duration", "", "Duration to keep the cursor moving (e.g., \"2h30m\" or \"150\")")
	flags.StringVar(duration, "d", "", "Duration to keep the cursor moving (e.g., \"2h30m\" or \"150\")")
	clock := flags.String("clock", "", "Time to keep the cursor moving until (e.g., \"22:00\" or \"10:00PM\")")
	flags.StringVar(clock, "c", "", "Time to keep the cursor moving until (e.g., \"22:00\" or \"10:00PM\")")
	headless := flags.Bool("headless", false, "Run without the terminal UI")
	noHotkeys := flags.Bool("no-hotkeys", false, "Disable the global pause and quit hotkeys")
	seed := flags.Int64("seed", 0, "Random seed for reproducible movement (0 = time based)")
	logFile := flags.String("log", "debug.log", "Log file used while the terminal UI is shown")
	showVersion := flags.Bool("version", false, "Show version information")
	flags.BoolVar(showVersion, "v", false, "Show version information")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, err
	}

	cfg := &Config{
		Headless:    *headless,
		Hotkeys:     !*noHotkeys,
		Seed:        *seed,
		LogFile:     *logFile,
		ShowVersion: *showVersion,
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	if *duration != "" && *clock != "" {
		return nil, errors.New("use either --duration or --clock, not both")
	}

	if *duration != "" {
		d, err := util.ParseDuration(*duration)
		if err != nil {
			return nil, err
		}
		cfg.Duration = d
	}

	if *clock != "" {
		d, err := util.DurationUntil(*clock, now)
		if err != nil {
			return nil, err
		}
		cfg.Duration = d
		cfg.Clock = now.Add(d)
	}

	return cfg, nil
}
