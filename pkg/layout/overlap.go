package layout

import (
	"sort"

	"github.com/hireflow/hireflow/pkg/event"
)

// Overlaps reports half-open interval overlap: a touching boundary, where
// one event ends exactly when the next starts, does not count.
func Overlaps(a, b event.Event) bool {
	return a.StartTime.Before(b.EndTime) && a.EndTime.After(b.StartTime)
}

// Clusters partitions a day's events into maximal overlap groups. Events are
// walked in start order; the current group grows while the next event
// overlaps any member already in it, and a new group starts otherwise.
// Column widths are assigned per cluster, never globally.
func Clusters(events []event.Event) [][]event.Event {
	if len(events) == 0 {
		return nil
	}

	sorted := make([]event.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	clusters := make([][]event.Event, 0)
	current := []event.Event{sorted[0]}
	for _, e := range sorted[1:] {
		if overlapsAny(e, current) {
			current = append(current, e)
			continue
		}
		clusters = append(clusters, current)
		current = []event.Event{e}
	}
	clusters = append(clusters, current)
	return clusters
}

func overlapsAny(e event.Event, group []event.Event) bool {
	for _, member := range group {
		if Overlaps(e, member) {
			return true
		}
	}
	return false
}

// Column is an event's horizontal slot within its overlap cluster.
type Column struct {
	Event event.Event
	// Index is the zero-based column the event occupies.
	Index int
	// Count is the number of equal-width columns the cluster renders with.
	Count int
}

// Arrange assigns side-by-side columns within one cluster: each event takes
// the leftmost column whose previous occupant has already ended.
func Arrange(cluster []event.Event) []Column {
	if len(cluster) == 0 {
		return nil
	}

	sorted := make([]event.Event, len(cluster))
	copy(sorted, cluster)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	columns := make([]Column, len(sorted))
	var columnEnds []event.Event // last event placed per column
	for i, e := range sorted {
		placed := false
		for c := range columnEnds {
			if !Overlaps(e, columnEnds[c]) {
				columnEnds[c] = e
				columns[i] = Column{Event: e, Index: c}
				placed = true
				break
			}
		}
		if !placed {
			columnEnds = append(columnEnds, e)
			columns[i] = Column{Event: e, Index: len(columnEnds) - 1}
		}
	}

	for i := range columns {
		columns[i].Count = len(columnEnds)
	}
	return columns
}
