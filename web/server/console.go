package server

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/df07/go-block-pathtracer/internal/logger"
	"github.com/df07/go-block-pathtracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
	RenderID  string    `json:"renderId"`
}

// Console keeps the most recent render log lines for the web UI.
// Once full, the oldest message is dropped for each new one.
type Console struct {
	mu       sync.Mutex
	capacity int
	messages []ConsoleMessage
}

// NewConsole creates a console holding at most capacity messages
func NewConsole(capacity int) *Console {
	if capacity < 1 {
		capacity = 1
	}
	return &Console{capacity: capacity}
}

// Add appends a message
func (c *Console) Add(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.messages) == c.capacity {
		copy(c.messages, c.messages[1:])
		c.messages = c.messages[:len(c.messages)-1]
	}
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of the stored messages, oldest first. A non-empty
// renderID keeps only that render's messages.
func (c *Console) Messages(renderID string) []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]ConsoleMessage, 0, len(c.messages))
	for _, msg := range c.messages {
		if renderID == "" || msg.RenderID == renderID {
			result = append(result, msg)
		}
	}
	return result
}

// WebLogger implements core.Logger for one render, writing each line to
// the server log and the web console
type WebLogger struct {
	renderID string
	log      *logger.Logger
	console  *Console
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, log *logger.Logger, console *Console) core.Logger {
	return &WebLogger{
		renderID: renderID,
		log:      log,
		console:  console,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")

	if wl.log != nil {
		wl.log.Infof("[%s] %s", wl.renderID, message)
	}
	if wl.console != nil {
		wl.console.Add(ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
			RenderID:  wl.renderID,
		})
	}
}
