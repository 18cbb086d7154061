// Package clipboard copies report text to the system clipboard without
// blocking the caller. A successful copy raises a short-lived acknowledgement
// flag that the view can display.
package clipboard

import (
	"errors"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// DefaultAck is how long the acknowledgement stays raised.
const DefaultAck = 2 * time.Second

// ErrUnsupported is returned by System when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard: no clipboard utility available")

// Writer stores text somewhere the operator can paste from.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(text string) error

func (f WriterFunc) WriteAll(text string) error { return f(text) }

// Copier runs writes in the background. Each successful write raises the
// acknowledgement for the configured duration; a newer copy takes over the
// flag and the older timer clears nothing.
type Copier struct {
	writer Writer
	ack    time.Duration
	logger *zap.Logger

	mu         sync.Mutex
	generation uint64
	acked      bool
	lastErr    error
	pending    sync.WaitGroup
}

// Option configures a Copier.
type Option func(*Copier)

func WithAckDuration(d time.Duration) Option {
	return func(c *Copier) {
		if d > 0 {
			c.ack = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Copier) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCopier wraps w. A nil writer uses System.
func NewCopier(w Writer, opts ...Option) *Copier {
	if w == nil {
		w = System{}
	}
	c := &Copier{writer: w, ack: DefaultAck, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Copy starts writing text and returns immediately.
func (c *Copier) Copy(text string) {
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		c.write(text)
	}()
}

func (c *Copier) write(text string) {
	err := c.writer.WriteAll(text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
	if err != nil {
		c.logger.Warn("clipboard copy failed", zap.Error(err))
		return
	}

	c.generation++
	generation := c.generation
	c.acked = true
	time.AfterFunc(c.ack, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.generation == generation {
			c.acked = false
		}
	})
}

// Acknowledged reports whether a copy succeeded within the acknowledgement
// window.
func (c *Copier) Acknowledged() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.acked
}

// Err returns the outcome of the most recently finished write.
func (c *Copier) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Wait blocks until every started write has finished.
func (c *Copier) Wait() {
	c.pending.Wait()
}
