package session

import (
	"sync"
	"time"

	"transcribe-mate/internal/app/clipboard"
	apperrors "transcribe-mate/internal/app/errors"
)

// CopyConfirmation is how long Copied stays true after a copy
const CopyConfirmation = 2 * time.Second

// View selects which version of the transcript is shown
type View int

const (
	ViewOriginal View = iota
	ViewCleaned
)

func (v View) String() string {
	if v == ViewCleaned {
		return "cleaned"
	}
	return "original"
}

// Display tracks what a user sees: the shown version of the transcript and
// a short-lived copy confirmation.
type Display struct {
	clipboard clipboard.Writer
	now       func() time.Time

	mu       sync.Mutex
	state    State
	view     View
	copiedAt time.Time
}

// NewDisplay creates a display writing copies to w
func NewDisplay(w clipboard.Writer) *Display {
	return &Display{
		clipboard: w,
		now:       time.Now,
		state:     State{Kind: Idle},
	}
}

// Attach subscribes the display to c and seeds it with the current state
func (d *Display) Attach(c *Controller) func() {
	d.Update(c.Snapshot())
	return c.Subscribe(d.Update)
}

// Update applies a session state. A new capture resets the view to the
// original; a completed cleaning switches to the cleaned version.
func (d *Display) Update(s State) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case s.Kind == Capturing:
		d.view = ViewOriginal
	case s.Kind == Ready && s.HasCleaned() && d.state.Kind == Cleaning:
		d.view = ViewCleaned
	case !s.HasCleaned():
		d.view = ViewOriginal
	}
	d.state = s
}

// State returns the last state applied
func (d *Display) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// View returns the version currently shown
func (d *Display) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}

// Toggle switches between original and cleaned. It reports false, leaving
// the view unchanged, when there is no cleaned version.
func (d *Display) Toggle() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.state.HasCleaned() {
		return false
	}
	if d.view == ViewCleaned {
		d.view = ViewOriginal
	} else {
		d.view = ViewCleaned
	}
	return true
}

// Text returns the version being shown
func (d *Display) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text()
}

func (d *Display) text() string {
	if d.view == ViewCleaned && d.state.HasCleaned() {
		return d.state.Cleaned
	}
	return d.state.Transcript
}

// Copy writes the shown text to the clipboard and starts the confirmation
func (d *Display) Copy() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	text := d.text()
	if text == "" {
		return apperrors.Validation("Nothing to copy")
	}
	if err := d.clipboard.WriteAll(text); err != nil {
		return err
	}
	d.copiedAt = d.now()
	return nil
}

// Copied reports whether a copy happened within the confirmation window
func (d *Display) Copied() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.copiedAt.IsZero() && d.now().Sub(d.copiedAt) < CopyConfirmation
}
