package event

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeRange = errors.New("event end time is before its start time")
	ErrMissingTime      = errors.New("event start and end times are required")
	ErrUnknownColor     = errors.New("unknown event color")
	ErrDuplicateID      = errors.New("event id already exists")
	ErrEventNotFound    = errors.New("event not found")
)

// Color is one of the fixed palette values an event can be tagged with.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorOrange Color = "orange"
)

var palette = map[Color]struct{}{
	ColorBlue:   {},
	ColorGreen:  {},
	ColorRed:    {},
	ColorYellow: {},
	ColorPurple: {},
	ColorOrange: {},
}

// ValidColor reports whether c belongs to the palette. The empty color is
// accepted and rendered with the default.
func ValidColor(c Color) bool {
	if c == "" {
		return true
	}
	_, ok := palette[c]
	return ok
}

// Event is a titled, time-bounded, optionally assignee-tagged calendar record.
type Event struct {
	ID          string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Color       Color
	// AssigneeID references a user by id only; empty means unassigned.
	AssigneeID string
}

// Validate checks the construction invariants. Events with an end before
// their start are rejected rather than swapped, so caller intent is never
// silently misrepresented.
func (e Event) Validate() error {
	if e.StartTime.IsZero() || e.EndTime.IsZero() {
		return ErrMissingTime
	}
	if e.EndTime.Before(e.StartTime) {
		return fmt.Errorf("%w: start %s, end %s", ErrInvalidTimeRange, e.StartTime, e.EndTime)
	}
	if !ValidColor(e.Color) {
		return fmt.Errorf("%w: %q", ErrUnknownColor, e.Color)
	}
	return nil
}

// Duration returns the event length.
func (e Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// Patch carries a partial update for an event. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Color       *Color
	AssigneeID  *string
}

// apply merges the patch onto e and returns the result without mutating e.
func (p Patch) apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	if p.AssigneeID != nil {
		e.AssigneeID = *p.AssigneeID
	}
	return e
}
