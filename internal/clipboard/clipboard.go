// Package clipboard provides copy-to-clipboard primitives
// and tracks the transient "copied" acknowledgment shown to users.
package clipboard

import (
	"context"
	"sync"
	"time"
)

// DefaultTimeout is how long a successful copy is acknowledged.
const DefaultTimeout = 1500 * time.Millisecond

// Clipboard is a destination for copied text.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Status tracks whether text was recently copied.
//
// The zero value is ready to use.
type Status struct {
	// Timeout is how long HasCopied reports true after a copy.
	// Defaults to DefaultTimeout.
	Timeout time.Duration

	// Now reports the current time. Defaults to time.Now.
	Now func() time.Time

	mu       sync.Mutex
	copiedAt time.Time
}

func (s *Status) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Status) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}

// Copy writes text to the clipboard.
// If that succeeds, the status is marked as copied.
// A failed copy clears any earlier acknowledgment.
func (s *Status) Copy(ctx context.Context, cb Clipboard, text string) error {
	err := cb.WriteText(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.copiedAt = time.Time{}
		return err
	}
	s.copiedAt = s.now()
	return nil
}

// HasCopied reports whether a copy succeeded within the timeout.
func (s *Status) HasCopied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.copiedAt.IsZero() {
		return false
	}
	return s.now().Sub(s.copiedAt) < s.timeout()
}

// Memory is an in-process clipboard.
//
// The zero value is an empty clipboard.
type Memory struct {
	mu   sync.RWMutex
	text string
}

var _ Clipboard = (*Memory)(nil)

// WriteText replaces the contents of the clipboard.
func (m *Memory) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
	return nil
}

// Text returns the current contents of the clipboard.
func (m *Memory) Text() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.text
}
