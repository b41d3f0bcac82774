package inline

import (
	"fmt"
	"io"

	"github.com/samber/mo"
	"github.com/zalukaj-cli/zalukaj/log"
	"github.com/zalukaj-cli/zalukaj/router"
)

// Notification is a message a route reported while running.
type Notification struct {
	Header  string `json:"header"`
	Message string `json:"message"`
}

// Host answers route prompts without a terminal.
// Notifications are written to errOut and kept for the JSON output.
type Host struct {
	errOut        io.Writer
	pick          mo.Option[Picker]
	notifications []Notification
}

// NewHost returns a host writing notifications to errOut.
// Without a picker every prompt is answered with its first option.
func NewHost(errOut io.Writer, pick mo.Option[Picker]) *Host {
	return &Host{errOut: errOut, pick: pick}
}

func (h *Host) Notify(header, message string) {
	log.WithFields(log.Fields{"header": header}).Info(message)
	h.notifications = append(h.notifications, Notification{Header: header, Message: message})
	if h.errOut != nil {
		_, _ = fmt.Fprintf(h.errOut, "%s: %s\n", header, message)
	}
}

func (h *Host) Select(title string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, router.ErrCancelled
	}

	index := 0
	if pick, ok := h.pick.Get(); ok {
		index = pick(options)
	}

	if index < 0 || index >= len(options) {
		log.Warnf("%s: nothing picked from %v", title, options)
		return -1, router.ErrCancelled
	}

	log.Infof("%s: picked %s", title, options[index])
	return index, nil
}

// Notifications returns what was reported so far.
func (h *Host) Notifications() []Notification {
	return h.notifications
}
