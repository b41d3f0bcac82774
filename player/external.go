package player

import (
	"errors"
	"os/exec"
	"sync"

	"github.com/zalukaj-cli/zalukaj/open"
)

// ErrNoPosition is returned by players that cannot report the playback position.
var ErrNoPosition = errors.New("player does not report its position")

// External hands the stream to any other application through the system opener.
// Request headers cannot be passed along, so it only suits streams that do not check them.
type External struct {
	app string

	mu     sync.Mutex
	cmd    *exec.Cmd
	exited chan struct{}
}

func NewExternal(app string) *External {
	exited := make(chan struct{})
	close(exited)
	return &External{app: app, exited: exited}
}

func (e *External) Play(url, _ string, _ map[string]string) error {
	target, err := sanitizeMediaTarget(url)
	if err != nil {
		return err
	}

	cmd, err := open.Command(target, e.app)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}

	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	e.mu.Lock()
	e.cmd = cmd
	e.exited = exited
	e.mu.Unlock()
	return nil
}

func (e *External) GetPercentWatched() (float64, error) {
	return 0, ErrNoPosition
}

func (e *External) IsRunning() bool {
	select {
	case <-e.Wait():
		return false
	default:
		return true
	}
}

func (e *External) Wait() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exited
}

func (e *External) Close() error {
	if !e.IsRunning() {
		return nil
	}
	e.mu.Lock()
	cmd := e.cmd
	e.mu.Unlock()
	return killProcess(cmd)
}
