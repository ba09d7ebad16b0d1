package watchlist

import (
	"sync"
	"time"
)

// DefaultNotifyDelay is how long a notification stays up
const DefaultNotifyDelay = 2400 * time.Millisecond

// Severity of a notification
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is the message currently shown to the user
type Notification struct {
	Message  string
	Severity Severity
}

// Notifier is a single notification slot. Showing a notification replaces
// the current one; each one is cleared after the delay unless a newer one
// has taken its place.
type Notifier struct {
	mu      sync.Mutex
	current *Notification
	gen     uint64
	timer   *time.Timer
	delay   time.Duration
	onShow  func(Notification)
}

// NotifierOption configures a Notifier
type NotifierOption func(*Notifier)

// WithDelay overrides DefaultNotifyDelay
func WithDelay(d time.Duration) NotifierOption {
	return func(n *Notifier) { n.delay = d }
}

// WithOnShow registers a callback run synchronously by Show
func WithOnShow(fn func(Notification)) NotifierOption {
	return func(n *Notifier) { n.onShow = fn }
}

// NewNotifier creates an empty notification slot
func NewNotifier(opts ...NotifierOption) *Notifier {
	n := &Notifier{delay: DefaultNotifyDelay}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Show displays msg, replacing whatever is shown now
func (n *Notifier) Show(msg string, sev Severity) {
	note := Notification{Message: msg, Severity: sev}

	n.mu.Lock()
	n.gen++
	gen := n.gen
	n.current = &note
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.delay, func() { n.expire(gen) })
	onShow := n.onShow
	n.mu.Unlock()

	if onShow != nil {
		onShow(note)
	}
}

// Info shows an info notification
func (n *Notifier) Info(msg string) { n.Show(msg, SeverityInfo) }

// Success shows a success notification
func (n *Notifier) Success(msg string) { n.Show(msg, SeveritySuccess) }

// Error shows an error notification
func (n *Notifier) Error(msg string) { n.Show(msg, SeverityError) }

// Current returns the notification on display, if any
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Close stops the pending dismiss timer and clears the slot
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = nil
	n.gen++
}

// expire clears the slot only if gen is still the latest notification
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.gen != gen {
		return
	}
	n.current = nil
	n.timer = nil
}
