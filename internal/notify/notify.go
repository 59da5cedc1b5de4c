package notify

import (
	"sync"
	"time"
)

// Severity classifies a notification
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DefaultDuration is how long a notification stays visible unless dismissed
const DefaultDuration = 4 * time.Second

// Message is one transient notification
type Message struct {
	Text     string
	Severity Severity
	ShownAt  time.Time
}

// Center holds at most one visible notification. A new Show replaces the
// current message and restarts the dismiss timer; there is no queue.
type Center struct {
	mu       sync.Mutex
	current  *Message
	timer    *time.Timer
	duration time.Duration

	// onShow, when set, observes every shown message (CLI printing, tests)
	onShow func(Message)
}

// NewCenter creates a notification center with the given auto-dismiss
// duration; zero means DefaultDuration
func NewCenter(duration time.Duration) *Center {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Center{duration: duration}
}

// OnShow registers an observer for shown messages
func (c *Center) OnShow(fn func(Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onShow = fn
}

// Show displays a message, replacing any visible one
func (c *Center) Show(text string, severity Severity) {
	c.mu.Lock()

	msg := Message{Text: text, Severity: severity, ShownAt: time.Now()}
	c.current = &msg

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.duration, func() {
		c.expire(msg)
	})

	observer := c.onShow
	c.mu.Unlock()

	if observer != nil {
		observer(msg)
	}
}

// expire clears the message only if it is still the visible one
func (c *Center) expire(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil && *c.current == msg {
		c.current = nil
	}
}

// Dismiss clears the visible message before its timer fires
func (c *Center) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.current = nil
}

// Current returns the visible message, if any
func (c *Center) Current() (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Message{}, false
	}
	return *c.current, true
}
