package model

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/GolpiraElmiA/OSRTickets/internal/errs"
)

// Column names that have ever appeared in a persisted file, mapped to the
// canonical column they migrate into. "Department" was renamed "Section";
// everything else kept its name across revisions.
var legacyAliases = map[string]string{
	"ID":             "ID",
	"Name":           "Name",
	"Request Type":   "Request Type",
	"Email":          "Email",
	"Department":     "Section",
	"Section":        "Section",
	"Status":         "Status",
	"Priority":       "Priority",
	"Date Submitted": "Date Submitted",
	"Summary":        "Summary",
}

// MigrateLegacy converts a file written under any historical schema revision
// to the canonical column set. Columns a revision lacked (Name before it was
// added, Priority after it was dropped) come back empty. Returns
// migrated=false when the file is already canonical. A header containing a
// column no revision ever had is rejected with ErrSchemaMismatch rather than
// guessed at.
func MigrateLegacy(data []byte) (tickets []Ticket, migrated bool, err error) {
	r := csv.NewReader(bytes.NewReader(data))
	header, err := r.Read()
	if err == io.EOF {
		return []Ticket{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read header: %w", err)
	}
	if equalHeader(header, Header) {
		tickets, err = DecodeCSV(data)
		return tickets, false, err
	}

	// Map legacy column positions onto canonical names.
	index := map[string]int{}
	for i, col := range header {
		canonical, known := legacyAliases[col]
		if !known {
			return nil, false, fmt.Errorf("unknown column %q: %w", col, errs.ErrSchemaMismatch)
		}
		if _, dup := index[canonical]; dup {
			return nil, false, fmt.Errorf("duplicate column %q: %w", col, errs.ErrSchemaMismatch)
		}
		index[canonical] = i
	}
	for _, required := range []string{"ID", "Request Type", "Email", "Status", "Date Submitted", "Summary"} {
		if _, ok := index[required]; !ok {
			return nil, false, fmt.Errorf("missing column %q: %w", required, errs.ErrSchemaMismatch)
		}
	}

	cell := func(rec []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	tickets = []Ticket{}
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, fmt.Errorf("line %d: %w", line, err)
		}
		tickets = append(tickets, Ticket{
			ID:            cell(rec, "ID"),
			Name:          cell(rec, "Name"),
			RequestType:   RequestType(cell(rec, "Request Type")),
			Email:         cell(rec, "Email"),
			Section:       cell(rec, "Section"),
			Status:        TicketStatus(cell(rec, "Status")),
			Priority:      Priority(cell(rec, "Priority")),
			DateSubmitted: cell(rec, "Date Submitted"),
			Summary:       cell(rec, "Summary"),
		})
	}
	return tickets, true, nil
}
