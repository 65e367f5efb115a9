package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/keep-moving/internal/keepalive"
)

// Model holds the current state of the UI, including user input and keeper state.
type Model struct {
	State        state
	Selected     int
	Input        string
	KeepAlive    *keepalive.Keeper
	ErrorMessage string
	StartTime    time.Time
	Duration     time.Duration
	ShowHelp     bool

	// Status is the keeper snapshot taken on the last refresh.
	Status keepalive.Status

	version  string
	help     help.Model
	progress progress.Model
}

// NewModel returns the menu model driving k.
func NewModel(k *keepalive.Keeper) Model {
	return Model{
		State:     stateMenu,
		KeepAlive: k,
		help:      NewHelpModel(),
		progress:  newProgress(),
	}
}

// InitialModelWithDuration returns a model that is already running. A zero
// duration runs indefinitely.
func InitialModelWithDuration(k *keepalive.Keeper, d time.Duration) Model {
	m := NewModel(k)

	var err error
	if d > 0 {
		err = k.StartTimed(d)
	} else {
		err = k.StartIndefinite()
	}
	if err != nil {
		m.ErrorMessage = err.Error()
		return m
	}

	m.State = stateRunning
	m.StartTime = time.Now()
	m.Duration = d
	m.Status = k.Snapshot()
	return m
}

// SetVersion sets the version shown in the help view.
func (m *Model) SetVersion(v string) {
	m.version = v
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.State == stateRunning {
		return refresh()
	}
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := Update(msg, m)
	return newModel, cmd
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}

// TimeRemaining returns the remaining duration of a timed session
func (m Model) TimeRemaining() time.Duration {
	if m.State != stateRunning {
		return 0
	}
	elapsed := time.Since(m.StartTime)
	remaining := m.Duration - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

func newProgress() progress.Model {
	return progress.New(
		progress.WithGradient("#7D56F4", "#43BF6D"),
		progress.WithWidth(20),
		progress.WithoutPercentage(),
	)
}
