package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// runState is the dashboard's lifecycle phase shown in the footer badge.
type runState int

const (
	stateRunning runState = iota
	statePaused
	stateDone
	stateError
)

// FooterModel renders the bottom bar: a status badge and the key help.
type FooterModel struct {
	help  help.Model
	keys  KeyMap
	state runState
	width int
}

// NewFooterModel creates the footer with the given key bindings.
func NewFooterModel(keys KeyMap) FooterModel {
	return FooterModel{help: help.New(), keys: keys}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
	f.help.Width = w
}

// SetState updates the status badge.
func (f *FooterModel) SetState(s runState) {
	f.state = s
}

// ToggleHelp switches between the short and the full key listing.
func (f *FooterModel) ToggleHelp() {
	f.help.ShowAll = !f.help.ShowAll
}

// HelpExpanded reports whether the full listing is shown.
func (f FooterModel) HelpExpanded() bool { return f.help.ShowAll }

// Height returns how many terminal rows the footer occupies.
func (f FooterModel) Height() int {
	if f.help.ShowAll {
		return 5
	}
	return 1
}

// View renders the footer.
func (f FooterModel) View() string {
	var badge string
	switch f.state {
	case statePaused:
		badge = statusPausedStyle.Render(" PAUSED ")
	case stateDone:
		badge = statusDoneStyle.Render(" DONE ")
	case stateError:
		badge = statusErrorStyle.Render(" ERROR ")
	default:
		badge = statusRunningStyle.Render(" RUNNING ")
	}

	helpView := helpStyle.Render(f.help.View(f.keys))
	return lipgloss.JoinHorizontal(lipgloss.Top, badge, " ", helpView)
}
