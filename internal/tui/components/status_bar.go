package components

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	statusBarErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)
)

const statusBarHints = "q:quit a:add e/enter:edit date x:clear date d:delete j/k:move"

// StatusBar represents the status bar component
type StatusBar struct {
	width   int
	message string
	isError bool
}

// NewStatusBar creates a new status bar
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetWidth sets the width of the status bar
func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// SetMessage shows msg in place of the key hints until cleared.
func (sb *StatusBar) SetMessage(msg string) {
	sb.message = msg
	sb.isError = false
}

// SetError shows msg highlighted as an error.
func (sb *StatusBar) SetError(msg string) {
	sb.message = msg
	sb.isError = true
}

// Clear returns the bar to the key hints.
func (sb *StatusBar) Clear() {
	sb.message = ""
	sb.isError = false
}

// Message returns the message currently shown, if any.
func (sb *StatusBar) Message() string {
	return sb.message
}

// View renders the status bar
func (sb *StatusBar) View() string {
	text := statusBarHints
	style := statusBarStyle
	if sb.message != "" {
		text = sb.message
		if sb.isError {
			style = statusBarErrorStyle
		}
	}

	if sb.width > 5 && len(text) > sb.width-2 {
		text = text[:sb.width-5] + "..."
	}

	return style.Width(sb.width).Render(text)
}
