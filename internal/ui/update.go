package ui

import (
	"strconv"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const refreshInterval = 200 * time.Millisecond

// statusMsg is sent when the running view should refresh
type statusMsg time.Time

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.ShowHelp {
		switch {
		case key.Matches(msg, keys.ToggleHelp), key.Matches(msg, keys.Back):
			m.ShowHelp = false
		case key.Matches(msg, keys.Quit):
			return m.quit()
		}
		return m, nil
	}

	switch m.State {
	case stateMenu:
		return updateMenu(msg, m)
	case stateTimedInput:
		return updateTimedInput(msg, m)
	case stateRunning:
		return updateRunning(msg, m)
	}
	return m, nil
}

func updateMenu(msg tea.Msg, m Model) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.Selected < 2 {
			m.Selected++
		}
	case key.Matches(keyMsg, keys.ToggleHelp):
		m.ShowHelp = true
	case key.Matches(keyMsg, keys.Select):
		switch m.Selected {
		case 0:
			if err := m.KeepAlive.StartIndefinite(); err != nil {
				m.ErrorMessage = err.Error()
				return m, nil
			}
			return m.startRunning(0), refresh()
		case 1:
			m.State = stateTimedInput
			m.Input = ""
			m.ErrorMessage = ""
		case 2:
			return m.quit()
		}
	case key.Matches(keyMsg, keys.Quit), key.Matches(keyMsg, keys.Back):
		return m.quit()
	}
	return m, nil
}

func updateTimedInput(msg tea.Msg, m Model) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Submit):
		if m.Input == "" {
			m.ErrorMessage = "Please enter a duration"
			return m, nil
		}
		minutes, err := strconv.Atoi(m.Input)
		if err != nil {
			m.ErrorMessage = "Invalid duration"
			return m, nil
		}
		if minutes <= 0 {
			m.ErrorMessage = "Duration must be positive"
			return m, nil
		}
		d := time.Duration(minutes) * time.Minute
		if err := m.KeepAlive.StartTimed(d); err != nil {
			m.ErrorMessage = err.Error()
			return m, nil
		}
		return m.startRunning(d), refresh()
	case key.Matches(keyMsg, keys.Back):
		m.State = stateMenu
		m.ErrorMessage = ""
	case key.Matches(keyMsg, keys.Backspace):
		if len(m.Input) > 0 {
			m.Input = m.Input[:len(m.Input)-1]
			m.ErrorMessage = ""
		}
	case keyMsg.String() == "ctrl+c":
		return m.quit()
	default:
		s := keyMsg.String()
		if len(s) == 1 && unicode.IsDigit(rune(s[0])) && len(m.Input) < 4 {
			m.Input += s
			m.ErrorMessage = ""
		}
	}
	return m, nil
}

func updateRunning(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.Status = m.KeepAlive.Snapshot()
		expired := m.Duration > 0 && time.Since(m.StartTime) >= m.Duration
		if expired || !m.Status.Running {
			return m.stopRunning(), nil
		}
		return m, refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Pause):
			m.KeepAlive.TogglePause()
			m.Status = m.KeepAlive.Snapshot()
		case key.Matches(msg, keys.Stop):
			return m.stopRunning(), nil
		case key.Matches(msg, keys.ToggleHelp):
			m.ShowHelp = true
		case key.Matches(msg, keys.Quit):
			return m.quit()
		}
	}
	return m, nil
}

func (m Model) startRunning(d time.Duration) Model {
	m.State = stateRunning
	m.StartTime = time.Now()
	m.Duration = d
	m.ErrorMessage = ""
	m.Status = m.KeepAlive.Snapshot()
	return m
}

func (m Model) stopRunning() Model {
	if err := m.KeepAlive.Stop(); err != nil {
		m.ErrorMessage = err.Error()
	} else {
		m.ErrorMessage = ""
	}
	m.State = stateMenu
	m.Duration = 0
	m.Status = m.KeepAlive.Snapshot()
	return m
}

func (m Model) quit() (Model, tea.Cmd) {
	if m.KeepAlive != nil && m.KeepAlive.IsRunning() {
		if err := m.KeepAlive.Stop(); err != nil {
			m.ErrorMessage = err.Error()
		}
	}
	return m, tea.Quit
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return statusMsg(t)
	})
}
