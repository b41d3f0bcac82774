// Package ui keeps the notification shown in the footer of the interactive browser.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zalukaj-cli/zalukaj/style"
)

// Lifetime is how long a notification stays visible.
var Lifetime = 4 * time.Second

// NotifyMsg shows a notification.
type NotifyMsg struct {
	Header  string
	Message string
}

type clearMsg struct {
	at time.Time
}

// Model holds the current notification.
type Model struct {
	header     string
	message    string
	notifiedAt time.Time
}

// Notify returns a command showing a notification.
func Notify(header, message string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Header: header, Message: message}
	}
}

// Update handles NotifyMsg and the delayed clearing. Other messages are ignored.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotifyMsg:
		m.header = msg.Header
		m.message = msg.Message
		m.notifiedAt = time.Now()

		at := m.notifiedAt
		return tea.Tick(Lifetime, func(time.Time) tea.Msg {
			return clearMsg{at: at}
		})
	case clearMsg:
		// a newer notification keeps its own timer
		if msg.at.Equal(m.notifiedAt) {
			m.header, m.message = "", ""
		}
	}
	return nil
}

// Current returns the visible notification.
func (m *Model) Current() (header, message string, ok bool) {
	return m.header, m.message, m.message != "" || m.header != ""
}

// View appends the notification below mainContent.
func (m *Model) View(mainContent string) string {
	header, message, ok := m.Current()
	if !ok {
		return mainContent
	}

	var b strings.Builder
	b.WriteString(mainContent)
	b.WriteString("\n  ")
	if header != "" {
		b.WriteString(style.Tag(style.Base, style.Peach)(header))
		b.WriteString(" ")
	}
	b.WriteString(style.Fg(style.Subtext)(message))
	return b.String()
}
