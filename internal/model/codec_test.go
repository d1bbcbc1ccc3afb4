package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/GolpiraElmiA/OSRTickets/internal/errs"
)

func sampleTickets() []Ticket {
	return []Ticket{
		{
			ID: "T1", Name: "Ada Jones", RequestType: RequestTypeNew,
			Email: "ada@example.org", Section: "Urology",
			Status: TicketStatusOpen, Priority: PriorityHigh,
			DateSubmitted: "2025-01-15 09:30:00",
			Summary:       "Power analysis for cohort study, n=240",
		},
		{
			ID: "T2", Name: "B. O'Neil", RequestType: RequestTypeFollowUp,
			Email: "bo@example.org", Section: "Plastic Surgery",
			Status: TicketStatusCompleted, Priority: PriorityLow,
			DateSubmitted: "2025-01-16 14:05:59",
			Summary:       "Follow-up on regression model, includes \"quoted\" text and, commas",
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := sampleTickets()
	data, err := EncodeCSV(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeCSV(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("row count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestEncodeEmptyTableKeepsHeader(t *testing.T) {
	data, err := EncodeCSV(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(string(data), "ID,Name,Request Type,Email,Section,Status,Priority,Date Submitted,Summary") {
		t.Fatalf("unexpected header: %q", data)
	}
	got, err := DecodeCSV(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("row count = %d, want 0", len(got))
	}
}

func TestDecodeRejectsUnknownHeader(t *testing.T) {
	data := []byte("ID,Owner,Status\nT1,x,Open\n")
	_, err := DecodeCSV(data)
	if !errors.Is(err, errs.ErrSchemaMismatch) {
		t.Fatalf("err = %v, want ErrSchemaMismatch", err)
	}
}

func TestMigrateLegacyDepartmentHeader(t *testing.T) {
	// Earliest revision: no Name column, Department instead of Section.
	legacy := "ID,Request Type,Email,Department,Status,Priority,Date Submitted,Summary\n" +
		"T1,New,ada@example.org,Urology,Open,High,2025-01-15 09:30:00,Power analysis\n"
	tickets, migrated, err := MigrateLegacy([]byte(legacy))
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !migrated {
		t.Fatal("migrated = false, want true")
	}
	if len(tickets) != 1 {
		t.Fatalf("row count = %d, want 1", len(tickets))
	}
	got := tickets[0]
	if got.Section != "Urology" {
		t.Fatalf("Section = %q, want Urology", got.Section)
	}
	if got.Name != "" {
		t.Fatalf("Name = %q, want empty (column did not exist)", got.Name)
	}
	if got.ID != "T1" || got.Priority != PriorityHigh || got.Status != TicketStatusOpen {
		t.Fatalf("unexpected row: %+v", got)
	}

	// The converted table must encode canonically and round-trip.
	data, err := EncodeCSV(tickets)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	again, err := DecodeCSV(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if again[0] != got {
		t.Fatalf("round-trip changed row: %+v vs %+v", again[0], got)
	}
}

func TestMigrateLegacyCanonicalIsNoop(t *testing.T) {
	data, err := EncodeCSV(sampleTickets())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	tickets, migrated, err := MigrateLegacy(data)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if migrated {
		t.Fatal("migrated = true for canonical file")
	}
	if len(tickets) != 2 {
		t.Fatalf("row count = %d, want 2", len(tickets))
	}
}

func TestMigrateLegacyRejectsForeignColumn(t *testing.T) {
	data := []byte("ID,Assignee,Status\nT1,x,Open\n")
	_, _, err := MigrateLegacy(data)
	if !errors.Is(err, errs.ErrSchemaMismatch) {
		t.Fatalf("err = %v, want ErrSchemaMismatch", err)
	}
}

func TestNextID(t *testing.T) {
	if got := NextID(0); got != "T1" {
		t.Fatalf("NextID(0) = %q, want T1", got)
	}
	if got := NextID(41); got != "T42" {
		t.Fatalf("NextID(41) = %q, want T42", got)
	}
}

func TestSummarize(t *testing.T) {
	short := "needs sample size advice"
	if got := Summarize(short); got != short {
		t.Fatalf("Summarize(short) = %q", got)
	}
	long := strings.Repeat("é", SummaryLimit+10)
	got := Summarize(long)
	if n := len([]rune(got)); n != SummaryLimit {
		t.Fatalf("rune count = %d, want %d", n, SummaryLimit)
	}
}
