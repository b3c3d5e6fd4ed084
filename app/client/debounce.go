package client

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultDelay suits link parsing while the user pastes or edits a URL.
	DefaultDelay = 500 * time.Millisecond

	// AutocompleteDelay and AutocompleteMinChars suit search-as-you-type
	// fields, where shorter queries are too noisy to send.
	AutocompleteDelay    = 300 * time.Millisecond
	AutocompleteMinChars = 3
)

// Debouncer coalesces rapid-fire triggers into a single callback once
// input goes quiet. Each trigger supersedes the previous one, and the
// returned token identifies the run that is still current: a completion
// holding a stale token should drop its result.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	minChars int
	timer    *time.Timer
	latest   string
}

func NewDebouncer() *Debouncer {
	return &Debouncer{delay: DefaultDelay}
}

func NewAutocompleteDebouncer() *Debouncer {
	return &Debouncer{delay: AutocompleteDelay, minChars: AutocompleteMinChars}
}

// Trigger schedules fn after the quiet period, cancelling any pending
// run. Queries shorter than the minimum are ignored but still cancel
// whatever was pending, so deleting characters stops an in-flight
// schedule. The returned token belongs to this trigger.
func (d *Debouncer) Trigger(query string, fn func(token string)) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	token := uuid.NewString()
	d.latest = token

	if len([]rune(query)) < d.minChars {
		return token
	}

	d.timer = time.AfterFunc(d.delay, func() {
		fn(token)
	})

	return token
}

// Current reports whether the token still identifies the latest
// trigger. Completions with a stale token arrived out of order and
// must not overwrite newer results.
func (d *Debouncer) Current(token string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latest == token
}

// Cancel stops any pending run without scheduling a new one.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.latest = ""
}
