// Package player launches an external video player for a resolved stream and
// reports how much of it was watched.
package player

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/zalukaj-cli/zalukaj/log"
	"github.com/zalukaj-cli/zalukaj/util"
)

// Player is a playback backend.
type Player interface {
	// Play starts playback of url, sending headers with every request the player makes.
	Play(url, title string, headers map[string]string) error

	// GetPercentWatched returns the playback position relative to the duration (0-100).
	GetPercentWatched() (float64, error)

	// IsRunning reports whether the player still responds.
	IsRunning() bool

	// Wait returns a channel closed when the player exits.
	Wait() <-chan struct{}

	// Close stops the player and releases its resources.
	Close() error
}

// New returns the backend for the given executable name or path.
// mpv is driven over its IPC socket, anything else is started through the system opener.
func New(name string) (Player, error) {
	if name == "" {
		name = "mpv"
	}

	if !isMPV(name) {
		return NewExternal(name), nil
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("player %q not found: %w", name, err)
	}
	return NewMPV(path), nil
}

func isMPV(name string) bool {
	return strings.EqualFold(util.FileStem(name), "mpv")
}

// pollInterval is how often Watch samples the playback position.
var pollInterval = time.Second

// Watch plays url and blocks until the player exits or ctx is done.
// It returns the furthest position reached, in percent.
func Watch(ctx context.Context, p Player, url, title string, headers map[string]string) (float64, error) {
	if err := p.Play(url, title, headers); err != nil {
		return 0, err
	}
	defer func() {
		if err := p.Close(); err != nil {
			log.Warn(err)
		}
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var furthest float64
	for {
		select {
		case <-ctx.Done():
			return furthest, ctx.Err()
		case <-p.Wait():
			return furthest, nil
		case <-ticker.C:
			percent, err := p.GetPercentWatched()
			if err != nil {
				log.Debugf("polling position: %s", err)
				continue
			}
			if percent > furthest {
				furthest = percent
			}
		}
	}
}
