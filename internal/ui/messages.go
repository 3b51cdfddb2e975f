package ui

import "time"

// TickMsg is sent on each repaint interval.
type TickMsg time.Time

// ActionMsg reports the outcome of a store action started from the UI.
type ActionMsg struct {
	Title string
	OK    bool
	Err   string
}

// LoadedMsg is sent when a background load finished; the next render reads
// the stores.
type LoadedMsg struct{}
