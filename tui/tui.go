// Package tui is the interactive catalog browser.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zalukaj-cli/zalukaj/router"
)

// Dispatcher runs routes.
type Dispatcher interface {
	Dispatch(ctx context.Context, path string) (*router.Result, error)
}

type Options struct {
	// Router builds the dispatcher that reports to the given host.
	Router func(host router.Host) Dispatcher

	// Player is the player executable, see player.New.
	Player string

	// Path is the first route to open. Defaults to the index.
	Path string

	// Continue starts at the watch history.
	Continue bool
}

// Run starts the browser and blocks until it quits.
func Run(options *Options) error {
	h := &host{}
	bubble := newBubble(options, options.Router(h))

	program := tea.NewProgram(bubble, tea.WithAltScreen())
	h.send = program.Send

	_, err := program.Run()
	bubble.shutdown()
	return err
}
