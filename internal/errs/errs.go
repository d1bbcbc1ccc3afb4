package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrTicketNotFound — the id is absent from the in-memory table.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrStoreUnavailable — transport or auth failure talking to the remote store.
	ErrStoreUnavailable = errors.New("remote store unavailable")
	// ErrAccessDenied — missing or wrong operator credential. Kept generic on purpose.
	ErrAccessDenied = errors.New("access denied")
	// ErrSerialization — the table could not be encoded; nothing was written.
	ErrSerialization = errors.New("table serialization failed")
	// ErrSchemaMismatch — the remote file header is not the canonical schema.
	// Run `osrtickets migrate` to convert a legacy file.
	ErrSchemaMismatch = errors.New("remote file schema mismatch")
)

// NotDurableError reports a mutation that succeeded in memory but whose
// synchronous save failed: the row is visible to the current session and is
// NOT confirmed durable. Unwraps to ErrStoreUnavailable.
type NotDurableError struct {
	TicketID string
	Err      error
}

func (e *NotDurableError) Error() string {
	if e.TicketID == "" {
		return fmt.Sprintf("mutation applied but not persisted: %v", e.Err)
	}
	return fmt.Sprintf("ticket %s applied but not persisted: %v", e.TicketID, e.Err)
}

func (e *NotDurableError) Unwrap() error { return e.Err }
