package socket

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Client represents a Unix socket client for sending commands
type Client struct {
	socketPath string
	timeout    time.Duration
}

// FindRunningInstance finds the socket of the most recently started
// instance. Returns the socket path and PID, or an error if not found
func FindRunningInstance() (string, int, error) {
	var newest string
	var newestTime time.Time
	err := filepath.WalkDir(SocketDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() || !strings.HasPrefix(name, socketPrefix) || !strings.HasSuffix(name, socketSuffix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest, newestTime = path, info.ModTime()
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return "", 0, fmt.Errorf("error scanning socket directory: %w", err)
	}
	if newest == "" {
		return "", 0, fmt.Errorf("no running tui-listproxy instance found")
	}

	pidStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(newest), socketPrefix), socketSuffix)
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		pid = 0
	}

	return newest, pid, nil
}

// NewClient creates a new client connected to the specified socket
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}

	return &Client{
		socketPath: socketPath,
		timeout:    ReplyTimeout + 5*time.Second,
	}, nil
}

// Send sends a message to the server and returns the response
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var response Response
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}

	return &response, nil
}

// SendAddEntry appends an entry to the running instance's list
func (c *Client) SendAddEntry(text string) (*Response, error) {
	return c.Send(Message{Command: CommandAddEntry, Text: text})
}

// SendRemoveEntry removes the entry at a content position
func (c *Client) SendRemoveEntry(position int) (*Response, error) {
	return c.Send(Message{Command: CommandRemoveEntry, Position: position})
}

// ListEntries returns the texts of the entries currently shown
func (c *Client) ListEntries() ([]string, error) {
	response, err := c.Send(Message{Command: CommandListEntries})
	if err != nil {
		return nil, err
	}
	if !response.Success {
		return nil, fmt.Errorf("server error: %s", response.Message)
	}
	return response.Entries, nil
}
