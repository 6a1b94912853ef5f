package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

// mpv JSON IPC: one JSON object per line. Replies carry the request_id of
// the command; asynchronous event lines may arrive before them.
type ipcRequest struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

type ipcReply struct {
	Event     string `json:"event"`
	RequestID int64  `json:"request_id"`
	Data      any    `json:"data"`
	Error     string `json:"error"`
}

const (
	ipcAttempts   = 3
	ipcRetryDelay = 100 * time.Millisecond
	ipcDeadline   = time.Second
)

var requestIDs atomic.Int64

// errIPCReply is an error answered by mpv itself. It is not retried.
var errIPCReply = errors.New("mpv refused the command")

// sendCommand runs command on the instance socket, retrying connection
// failures.
func (m *mpvInstance) sendCommand(command []any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	for attempt := 0; attempt < ipcAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(ipcRetryDelay)
		}

		var data any
		if data, err = ipcCall(m.socketPath, command); err == nil || errors.Is(err, errIPCReply) {
			return data, err
		}
	}

	return nil, fmt.Errorf("%v: %w", command[0], err)
}

func ipcCall(socketPath string, command []any) (any, error) {
	conn, err := net.DialTimeout("unix", socketPath, ipcDeadline)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(ipcDeadline)); err != nil {
		return nil, err
	}

	id := requestIDs.Add(1)
	if err := json.NewEncoder(conn).Encode(ipcRequest{Command: command, RequestID: id}); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var reply ipcReply
		if err := json.Unmarshal(scanner.Bytes(), &reply); err != nil {
			return nil, fmt.Errorf("malformed reply: %w", err)
		}

		if reply.Event != "" || reply.RequestID != id {
			continue
		}

		if reply.Error != "" && reply.Error != "success" {
			return nil, fmt.Errorf("%w: %s", errIPCReply, reply.Error)
		}
		return reply.Data, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, errors.New("socket closed before the reply")
}
