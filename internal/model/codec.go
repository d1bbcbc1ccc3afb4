package model

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/GolpiraElmiA/OSRTickets/internal/errs"
)

// Header is the canonical column order of the persisted CSV file. It is the
// union of every schema revision the file has gone through: Name was added
// late, Priority existed from the start, and Department was renamed Section.
var Header = []string{
	"ID", "Name", "Request Type", "Email", "Section",
	"Status", "Priority", "Date Submitted", "Summary",
}

// EncodeCSV serializes the table: header row plus one row per ticket.
// An empty table encodes to just the header, which is what a reset persists.
func EncodeCSV(tickets []Ticket) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("write header: %w", errs.ErrSerialization)
	}
	for i := range tickets {
		if err := w.Write(row(&tickets[i])); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, errs.ErrSerialization)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush: %w", errs.ErrSerialization)
	}
	return buf.Bytes(), nil
}

// DecodeCSV parses a canonical file. A header that is not exactly Header is
// rejected with ErrSchemaMismatch; legacy files go through MigrateLegacy
// instead of being reinterpreted positionally here.
func DecodeCSV(data []byte) ([]Ticket, error) {
	r := csv.NewReader(bytes.NewReader(data))
	header, err := r.Read()
	if err == io.EOF {
		return []Ticket{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !equalHeader(header, Header) {
		return nil, fmt.Errorf("got columns %v: %w", header, errs.ErrSchemaMismatch)
	}
	tickets := []Ticket{}
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tickets = append(tickets, fromRow(rec))
	}
	return tickets, nil
}

func row(t *Ticket) []string {
	return []string{
		t.ID, t.Name, string(t.RequestType), t.Email, t.Section,
		string(t.Status), string(t.Priority), t.DateSubmitted, t.Summary,
	}
}

func fromRow(rec []string) Ticket {
	return Ticket{
		ID:            rec[0],
		Name:          rec[1],
		RequestType:   RequestType(rec[2]),
		Email:         rec[3],
		Section:       rec[4],
		Status:        TicketStatus(rec[5]),
		Priority:      Priority(rec[6]),
		DateSubmitted: rec[7],
		Summary:       rec[8],
	}
}

func equalHeader(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
