package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zalukaj-cli/zalukaj/internal/ui"
	"github.com/zalukaj-cli/zalukaj/log"
	"github.com/zalukaj-cli/zalukaj/router"
)

// promptMsg asks the user to pick one of options. The index, or -1, is sent to answer.
type promptMsg struct {
	title   string
	options []string
	answer  chan<- int
}

// host forwards route notifications and prompts to the running program.
// Routes run inside commands, so Select may block until the user answers.
type host struct {
	send func(tea.Msg)
}

func (h *host) Notify(header, message string) {
	log.WithFields(log.Fields{"header": header}).Info(message)
	h.send(ui.NotifyMsg{Header: header, Message: message})
}

func (h *host) Select(title string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, router.ErrCancelled
	}

	answer := make(chan int, 1)
	h.send(promptMsg{title: title, options: options, answer: answer})

	index := <-answer
	if index < 0 || index >= len(options) {
		return -1, router.ErrCancelled
	}
	return index, nil
}
