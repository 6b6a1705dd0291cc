package usecase

import (
	"sort"

	"markdown-calendar-sync/internal/model"
)

// sortByStart orders candidates by their start bound. The store already
// orders by start time, but the first-wins tie-break must not depend on
// incidental response ordering, so it is enforced here with a stable sort.
func sortByStart(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return startKey(events[i]) < startKey(events[j])
	})
}

func startKey(event model.Event) string {
	if event.Start.DateTime != "" {
		return event.Start.DateTime
	}
	return event.Start.Date
}
