package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Toast kinds.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastWarning = "warning"
	ToastInfo    = "info"
)

// Default toast durations. A zero duration never expires.
const (
	DefaultToastDuration = 5000 * time.Millisecond
	WarningToastDuration = 7000 * time.Millisecond
)

// Toast is one notification.
type Toast struct {
	ID          string
	Kind        string
	Title       string
	Message     string
	Duration    time.Duration
	Dismissible bool
	CreatedAt   time.Time
}

// ToastOptions overrides the defaults of a kind.
type ToastOptions struct {
	Duration       *time.Duration
	NotDismissible bool
}

// ToastStore holds notifications, newest first.
type ToastStore struct {
	now func() time.Time

	mu     sync.RWMutex
	toasts []Toast
}

func NewToastStore(opts Options) *ToastStore {
	return &ToastStore{now: opts.withDefaults().Now}
}

// Add records a toast and returns its id.
func (s *ToastStore) Add(kind, title, message string, o ToastOptions) string {
	d := DefaultToastDuration
	switch kind {
	case ToastError:
		d = 0
	case ToastWarning:
		d = WarningToastDuration
	}
	if o.Duration != nil {
		d = *o.Duration
	}
	t := Toast{
		ID:          uuid.NewString(),
		Kind:        kind,
		Title:       title,
		Message:     message,
		Duration:    d,
		Dismissible: !o.NotDismissible,
		CreatedAt:   s.now(),
	}
	s.mu.Lock()
	s.toasts = append([]Toast{t}, s.toasts...)
	s.mu.Unlock()
	return t.ID
}

func (s *ToastStore) Success(title, message string) string {
	return s.Add(ToastSuccess, title, message, ToastOptions{})
}

func (s *ToastStore) Error(title, message string) string {
	return s.Add(ToastError, title, message, ToastOptions{})
}

func (s *ToastStore) Warning(title, message string) string {
	return s.Add(ToastWarning, title, message, ToastOptions{})
}

func (s *ToastStore) Info(title, message string) string {
	return s.Add(ToastInfo, title, message, ToastOptions{})
}

// Remove drops the toast with id. It reports whether one was found.
func (s *ToastStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i:i], s.toasts[i+1:]...)
			return true
		}
	}
	return false
}

func (s *ToastStore) Clear() {
	s.mu.Lock()
	s.toasts = nil
	s.mu.Unlock()
}

// Expire drops every toast whose duration has elapsed at now and returns
// how many were dropped.
func (s *ToastStore) Expire(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.toasts[:0:0]
	for _, t := range s.toasts {
		if t.Duration > 0 && !now.Before(t.CreatedAt.Add(t.Duration)) {
			continue
		}
		kept = append(kept, t)
	}
	n := len(s.toasts) - len(kept)
	s.toasts = kept
	return n
}

// List returns a copy of the toasts, newest first.
func (s *ToastStore) List() []Toast {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}
