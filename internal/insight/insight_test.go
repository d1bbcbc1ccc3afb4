package insight

import (
	"reflect"
	"testing"

	"github.com/GolpiraElmiA/OSRTickets/internal/model"
)

func TestAggregateCounts(t *testing.T) {
	tickets := []model.Ticket{
		{Status: model.TicketStatusOpen, Section: "Urology", Priority: model.PriorityHigh},
		{Status: model.TicketStatusOpen, Section: "Podiatry", Priority: model.PriorityLow},
		{Status: model.TicketStatusCompleted, Section: "Urology", Priority: model.PriorityHigh},
	}
	r := Aggregate(tickets)

	if want := map[string]int{"Open": 2, "Completed": 1}; !reflect.DeepEqual(r.Status, want) {
		t.Fatalf("Status = %v, want %v", r.Status, want)
	}
	if want := map[string]int{"Urology": 2, "Podiatry": 1}; !reflect.DeepEqual(r.Section, want) {
		t.Fatalf("Section = %v, want %v", r.Section, want)
	}
	if want := map[string]int{"High": 2, "Low": 1}; !reflect.DeepEqual(r.Priority, want) {
		t.Fatalf("Priority = %v, want %v", r.Priority, want)
	}
}

func TestAggregateEmptyTable(t *testing.T) {
	r := Aggregate(nil)
	if r.Status == nil || r.Section == nil || r.Priority == nil {
		t.Fatal("maps must be non-nil for an empty table")
	}
	if len(r.Status)+len(r.Section)+len(r.Priority) != 0 {
		t.Fatalf("expected empty maps, got %+v", r)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	tickets := []model.Ticket{
		{Status: model.TicketStatusInProgress, Section: "Orthopaedic", Priority: model.PriorityMedium},
		{Status: model.TicketStatusOpen, Section: "Orthopaedic", Priority: model.PriorityMedium},
	}
	first := Aggregate(tickets)
	second := Aggregate(tickets)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregate not idempotent: %+v vs %+v", first, second)
	}
}

func TestLabelsSorted(t *testing.T) {
	got := Labels(map[string]int{"Urology": 1, "General Surgery": 2, "Podiatry": 3})
	want := []string{"General Surgery", "Podiatry", "Urology"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Labels = %v, want %v", got, want)
	}
}
