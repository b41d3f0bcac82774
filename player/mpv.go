package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/zalukaj-cli/zalukaj/constant"
	"github.com/zalukaj-cli/zalukaj/log"
	"golang.org/x/exp/slices"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV drives mpv over its JSON-IPC socket.
type MPV struct {
	binary     string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	mu         sync.Mutex
	requestID  int
}

// NewMPV returns an idle player that runs binary.
func NewMPV(binary string) *MPV {
	exited := make(chan struct{})
	close(exited)
	return &MPV{binary: binary, exited: exited}
}

// Play starts mpv with url. Only the socket, title and headers are passed so the user's mpv.conf applies.
func (m *MPV) Play(rawURL, title string, headers map[string]string) error {
	target, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.socketPath == "" {
		random := make([]byte, 4)
		if _, err := rand.Read(random); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.Zalukaj, random))
	}

	m.cmd = exec.Command(m.binary, arguments(m.socketPath, target, sanitizeTitle(title), headers)...)
	m.cmd.SysProcAttr = sysProcAttr()

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	exited := make(chan struct{})
	m.exited = exited
	go func() {
		_ = m.cmd.Wait()
		close(exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warn("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

// arguments builds the mpv command line. Headers are sorted so the line is stable.
func arguments(socket, target, title string, headers map[string]string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + socket,
		"--force-media-title=" + title,
		"--force-window=yes",
	}

	if len(headers) > 0 {
		names := lo.Keys(headers)
		slices.Sort(names)

		fields := lo.Map(names, func(name string, _ int) string {
			return name + ": " + strings.ReplaceAll(headers[name], ",", "%2C")
		})
		args = append(args, "--http-header-fields="+strings.Join(fields, ","))
	}

	return append(args, "--", target)
}

func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			_ = conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) GetPercentWatched() (float64, error) {
	pos, err := m.getFloatProperty("time-pos")
	if err != nil {
		return 0, err
	}

	duration, err := m.getFloatProperty("duration")
	if err != nil || duration <= 0 {
		return 0, err
	}

	return pos / duration * 100, nil
}

func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand("get_property", "pid")
	return err == nil
}

// Close asks mpv to quit, killing it after a grace period, and removes the socket.
func (m *MPV) Close() error {
	if m.socketPath == "" {
		return nil
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	if err := os.Remove(m.socketPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	m.socketPath = ""
	return nil
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	value, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected number, got %T", name, data)
	}
	return value, nil
}

// sanitizeMediaTarget accepts http(s) URLs and local paths, rejecting anything that could be read as a flag.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	switch {
	case l == "":
		return "", fmt.Errorf("empty URL")
	case strings.ContainsAny(l, "\x00\n\r"):
		return "", fmt.Errorf("invalid control characters in URL")
	case strings.HasPrefix(l, "-"):
		return "", fmt.Errorf("url must not start with '-'")
	}

	if !strings.Contains(l, "://") {
		return filepath.Clean(l), nil
	}

	u, err := url.Parse(l)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return l, nil
	default:
		return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
	}
}

// sanitizeTitle flattens whitespace so the title fits a single argument.
func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
