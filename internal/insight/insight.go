// Package insight derives the count-by-category summaries the front-end
// renders as charts. Pure functions of the current table, no side effects.
package insight

import (
	"sort"

	"github.com/GolpiraElmiA/OSRTickets/internal/model"
)

// Report holds one counter map per charted column. An empty table yields
// empty (non-nil) maps.
type Report struct {
	Status   map[string]int `json:"status"`
	Section  map[string]int `json:"section"`
	Priority map[string]int `json:"priority"`
}

func Aggregate(tickets []model.Ticket) Report {
	r := Report{
		Status:   map[string]int{},
		Section:  map[string]int{},
		Priority: map[string]int{},
	}
	for i := range tickets {
		t := &tickets[i]
		r.Status[string(t.Status)]++
		if t.Section != "" {
			r.Section[t.Section]++
		}
		if t.Priority != "" {
			r.Priority[string(t.Priority)]++
		}
	}
	return r
}

// Labels returns the keys of a counter map in sorted order so chart axes
// are stable across renders.
func Labels(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for k := range counts {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
