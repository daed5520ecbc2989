// Package layout positions events on the day and week time axes: vertical
// pixel boxes clipped to the visible hour window, overlap clusters for
// side-by-side stacking, and the current-time indicator.
package layout

import (
	"time"

	"github.com/hireflow/hireflow/pkg/availability"
	"github.com/hireflow/hireflow/pkg/event"
)

// allDayThreshold is the duration above which a single-day event is rendered
// as a banner instead of on the hourly axis. The cutoff is strict: a 12-hour
// event is still placed on the axis.
const allDayThreshold = 12 * time.Hour

// Config carries the rendering scale.
type Config struct {
	// HourHeight is the pixel height of one hour row.
	HourHeight float64
}

// DefaultConfig uses 60px per hour, so one pixel is one minute.
func DefaultConfig() Config {
	return Config{HourHeight: 60}
}

// Box is the vertical placement of an event on the time axis.
type Box struct {
	Top    float64
	Height float64
}

// Position computes the event's box within the visible window. The top
// offset is (startHour - window.From) hours plus the start minutes at the
// hour scale; the height is the event duration at the same scale, floored
// at half an hour row so short events stay legible. Events reaching outside
// the window are clamped to the grid bounds instead of overflowing.
func Position(e event.Event, window availability.VisibleHours, cfg Config) Box {
	gridHeight := GridHeight(window, cfg)
	if gridHeight <= 0 {
		return Box{}
	}

	minuteHeight := cfg.HourHeight / 60
	top := (float64(e.StartTime.Hour())-float64(window.From))*cfg.HourHeight +
		float64(e.StartTime.Minute())*minuteHeight
	height := e.Duration().Minutes() * minuteHeight

	if height < cfg.HourHeight/2 {
		height = cfg.HourHeight / 2
	}

	// Clamp to the visible grid.
	if top < 0 {
		height += top
		top = 0
	}
	if top > gridHeight {
		top = gridHeight
		height = 0
	}
	if top+height > gridHeight {
		height = gridHeight - top
	}
	if height < 0 {
		height = 0
	}

	return Box{Top: top, Height: height}
}

// GridHeight is the pixel height of the whole visible window: one hour row
// per visible hour label. An inverted window has no rows.
func GridHeight(window availability.VisibleHours, cfg Config) float64 {
	rows := len(window.Hours())
	return float64(rows) * cfg.HourHeight
}

// IsAllDay reports whether the event is rendered as an all-day banner rather
// than on the hourly axis: either it spans more than twelve hours or its
// start and end fall on different calendar days. This heuristic replaces an
// explicit flag and is part of the external contract.
func IsAllDay(e event.Event) bool {
	if e.Duration() > allDayThreshold {
		return true
	}
	start, end := e.StartTime, e.EndTime
	return start.Year() != end.Year() || start.Month() != end.Month() || start.Day() != end.Day()
}

// SplitAllDay partitions events into banner events and axis events.
func SplitAllDay(events []event.Event) (allDay, timed []event.Event) {
	for _, e := range events {
		if IsAllDay(e) {
			allDay = append(allDay, e)
		} else {
			timed = append(timed, e)
		}
	}
	return allDay, timed
}

// NowIndicator returns the vertical offset of the current-time marker, using
// the same top formula as event boxes. The second result is false when the
// current hour is outside the visible window and no marker should render.
func NowIndicator(now time.Time, window availability.VisibleHours, cfg Config) (float64, bool) {
	hour := now.Hour()
	if hour < window.From || hour > window.To {
		return 0, false
	}
	minuteHeight := cfg.HourHeight / 60
	top := (float64(hour)-float64(window.From))*cfg.HourHeight + float64(now.Minute())*minuteHeight
	return top, true
}
