package availability

import "time"

// HourRange is a [From, To) hour window on a single day. Hours are whole
// numbers in 0-24. A range with From == To is closed; a range with
// From > To is empty.
type HourRange struct {
	From int
	To   int
}

// Closed reports whether the range admits no hour at all.
func (r HourRange) Closed() bool {
	return r.From >= r.To
}

// Contains reports whether hour falls inside the half-open range.
func (r HourRange) Contains(hour int) bool {
	return hour >= r.From && hour < r.To
}

// WorkingHours maps a weekday to its open hour range. A weekday without an
// entry is fully closed.
type WorkingHours map[time.Weekday]HourRange

// IsWorkingHour reports whether the given hour on the given weekday is
// inside that day's working window.
func (w WorkingHours) IsWorkingHour(hour int, weekday time.Weekday) bool {
	r, ok := w[weekday]
	if !ok {
		return false
	}
	return r.Contains(hour)
}

// VisibleHours is the single global hour range clipping what the day and
// week grids render, independent of working hours.
type VisibleHours HourRange

// Hours yields the inclusive sequence [From..To] used to build hour-row
// labels. The result has To-From+1 entries; an inverted range yields no
// rows and callers are expected to render an empty grid.
func (v VisibleHours) Hours() []int {
	if v.From > v.To {
		return nil
	}
	hours := make([]int, 0, v.To-v.From+1)
	for h := v.From; h <= v.To; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Settings is the per-user availability configuration.
type Settings struct {
	WorkingHours WorkingHours
	VisibleHours VisibleHours
}

// DefaultSettings returns Monday-to-Friday 9-17 working hours with the
// given visible window.
func DefaultSettings(visible VisibleHours) Settings {
	working := WorkingHours{}
	for d := time.Monday; d <= time.Friday; d++ {
		working[d] = HourRange{From: 9, To: 17}
	}
	return Settings{
		WorkingHours: working,
		VisibleHours: visible,
	}
}
