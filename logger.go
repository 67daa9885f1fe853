package hatchclient

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// NewLogger returns an hclog logger writing to w (stderr when nil) at the
// named level. The result satisfies Logger.
func NewLogger(name, level string, jsonFormat bool, w io.Writer) hclog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      lvl,
		Output:     w,
		JSONFormat: jsonFormat,
	})
}

// DefaultDebugConfig enables every debug category and uses random UUIDs
// as request IDs.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:      false,
		LogRequests:  true,
		LogRetries:   true,
		LogCache:     true,
		LogCircuit:   true,
		LogQueue:     true,
		RequestIDGen: uuid.NewString,
	}
}

func (c *Client) debugf(enabled func(*DebugConfig) bool, msg string, keysAndValues ...interface{}) {
	if c.debug == nil || !c.debug.Enabled || !enabled(c.debug) {
		return
	}
	c.logger.Debug(msg, keysAndValues...)
}

func logRequests(d *DebugConfig) bool { return d.LogRequests }
func logRetries(d *DebugConfig) bool  { return d.LogRetries }
func logCache(d *DebugConfig) bool    { return d.LogCache }
func logCircuit(d *DebugConfig) bool  { return d.LogCircuit }
func logQueue(d *DebugConfig) bool    { return d.LogQueue }
