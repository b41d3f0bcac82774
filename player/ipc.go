package player

import (
	"encoding/json"
	"fmt"
	"net"
	"time"
)

type ipcCommand struct {
	Command   []interface{} `json:"command"`
	RequestID int           `json:"request_id"`
}

// ipcMessage is either a reply (RequestID set) or an event mpv pushes unprompted.
type ipcMessage struct {
	Data      interface{} `json:"data"`
	Error     string      `json:"error"`
	Event     string      `json:"event"`
	RequestID int         `json:"request_id"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = time.Second
)

// sendCommand sends one command, retrying transient socket failures.
func (m *MPV) sendCommand(command ...interface{}) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		m.requestID++
		result, err := send(m.socketPath, ipcCommand{Command: command, RequestID: m.requestID})
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command failed after %d attempts: %w", maxRetries, lastErr)
}

// send writes a command and reads messages until the matching reply arrives.
func send(socketPath string, command ipcCommand) (interface{}, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	payload, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	decoder := json.NewDecoder(conn)
	for {
		var msg ipcMessage
		if err := decoder.Decode(&msg); err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}

		if msg.Event != "" || msg.RequestID != command.RequestID {
			continue
		}

		if msg.Error != "" && msg.Error != "success" {
			return nil, fmt.Errorf("mpv error: %s", msg.Error)
		}
		return msg.Data, nil
	}
}
