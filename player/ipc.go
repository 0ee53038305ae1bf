package player

import (
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// command is the mpv JSON IPC envelope, e.g.
// {"command": ["loadfile", "/path/video.mp4", "replace"]}
type command struct {
	Command []interface{} `json:"command"`
}

func loadFileCommand(path string) command {
	return command{Command: []interface{}{"loadfile", path, "replace"}}
}

func seekCommand(offset float64) command {
	return command{Command: []interface{}{"set_property", "time-pos", offset}}
}

// CommandSender delivers one command to mpv and returns its raw response.
type CommandSender interface {
	Send(cmd command) ([]byte, error)
}

// IPC talks to mpv over its unix IPC socket, one connection per command.
type IPC struct {
	socketPath  string
	dialTimeout time.Duration
}

func NewIPC(socketPath string) *IPC {
	return &IPC{
		socketPath:  socketPath,
		dialTimeout: 2 * time.Second,
	}
}

func (c *IPC) Send(cmd command) ([]byte, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mpv socket: %w", err)
	}
	defer conn.Close()

	data, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mpv command: %w", err)
	}

	if _, err := conn.Write(append(data, '\n')); err != nil {
		return nil, fmt.Errorf("failed to write mpv command: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(c.dialTimeout))
	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to read mpv response: %w", err)
	}

	return buf[:n], nil
}
