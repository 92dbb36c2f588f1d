package server

import (
	"strings"
	"sync"
	"time"
)

const defaultConsoleSize = 200

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// Console keeps the most recent log lines so that they can be served over HTTP.
// It is an io.Writer and is safe for concurrent use.
type Console struct {
	mu       sync.Mutex
	size     int
	messages []ConsoleMessage
}

// NewConsole creates a console holding at most size messages
func NewConsole(size int) *Console {
	return &Console{size: size}
}

// Write records each line of p as a message, dropping the oldest when full
func (c *Console) Write(p []byte) (int, error) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		c.messages = append(c.messages, ConsoleMessage{
			Message:   line,
			Timestamp: now,
			Level:     messageLevel(line),
		})
	}
	if over := len(c.messages) - c.size; over > 0 {
		c.messages = append(c.messages[:0], c.messages[over:]...)
	}
	return len(p), nil
}

// Messages returns a copy of the recorded messages, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	messages := make([]ConsoleMessage, len(c.messages))
	copy(messages, c.messages)
	return messages
}

// messageLevel maps the level tag of a formatted log line to a console level
func messageLevel(line string) string {
	switch {
	case strings.Contains(line, "[ERROR]") || strings.Contains(line, "[CRITICAL]"):
		return "error"
	case strings.Contains(line, "[WARNING]"):
		return "warning"
	default:
		return "info"
	}
}
