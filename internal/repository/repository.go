// Package repository owns the in-memory ticket table for the running
// session. It is the sole source of truth between saves: every mutation is
// applied in memory and then synchronously persisted through the store.
//
// Concurrency is whole-repository: one mutex serializes every operation, so
// a mutation and its save always complete before the next one starts. The
// remote file is read once at construction and never re-polled; a second
// process writing the same file is last-write-wins at file granularity,
// which is an accepted operational limit of this tool, not something the
// repository detects.
package repository

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GolpiraElmiA/OSRTickets/internal/errs"
	"github.com/GolpiraElmiA/OSRTickets/internal/model"
)

// Store is what the repository needs from the remote store adapter.
type Store interface {
	Load(ctx context.Context, name string) ([]model.Ticket, error)
	Save(ctx context.Context, tickets []model.Ticket, name string) error
}

type Repository struct {
	mu       sync.Mutex
	store    Store
	fileName string
	tickets  []model.Ticket
	degraded bool

	now func() time.Time
}

// New loads the remote file into memory. An unavailable store degrades to an
// empty table with a warning (the session still works, edits are at risk
// until the store recovers); a schema mismatch is fatal because proceeding
// would overwrite a file we failed to understand.
func New(ctx context.Context, store Store, fileName string) (*Repository, error) {
	r := &Repository{store: store, fileName: fileName, now: time.Now}
	tickets, err := store.Load(ctx, fileName)
	switch {
	case err == nil:
		r.tickets = tickets
	case errors.Is(err, errs.ErrSchemaMismatch):
		return nil, err
	case errors.Is(err, errs.ErrStoreUnavailable):
		logrus.Warnf("repository: load failed, starting with empty table: %v", err)
		r.tickets = []model.Ticket{}
		r.degraded = true
	default:
		return nil, err
	}
	return r, nil
}

// SubmitInput carries the form fields. Free-text fields (name, email, issue)
// are accepted as-is; only enum membership is checked, and that happens at
// the handler. The repository trusts its input.
type SubmitInput struct {
	Name        string
	RequestType model.RequestType
	Email       string
	Section     string
	Issue       string
	Priority    model.Priority
}

// Submit appends a new ticket and persists the table. The created row is
// returned as built, so callers echo exactly what was appended instead of
// re-reading the table after the lock is gone. When the save fails the
// error is a *errs.NotDurableError and the row stays in memory
// unrolled-back.
func (r *Repository) Submit(ctx context.Context, in SubmitInput) (model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := model.Ticket{
		ID:            model.NextID(len(r.tickets)),
		Name:          in.Name,
		RequestType:   in.RequestType,
		Email:         in.Email,
		Section:       in.Section,
		Status:        model.TicketStatusOpen,
		Priority:      in.Priority,
		DateSubmitted: r.now().Format(model.TimeLayout),
		Summary:       model.Summarize(in.Issue),
	}
	r.tickets = append(r.tickets, t)
	if err := r.save(ctx); err != nil {
		return t, &errs.NotDurableError{TicketID: t.ID, Err: err}
	}
	return t, nil
}

// UpdateStatus sets the status of one ticket and persists. A missing id is
// ErrTicketNotFound: nothing is mutated and no save happens.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status model.TicketStatus) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tickets {
		if r.tickets[i].ID != id {
			continue
		}
		r.tickets[i].Status = status
		t := r.tickets[i]
		if err := r.save(ctx); err != nil {
			return &t, &errs.NotDurableError{TicketID: id, Err: err}
		}
		return &t, nil
	}
	return nil, errs.ErrTicketNotFound
}

// BulkReplace swaps in a caller-supplied table, as produced by the inline
// multi-row editor. No per-row validation. A table identical to the current
// one is a no-op and performs no remote write.
func (r *Repository) BulkReplace(ctx context.Context, rows []model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rows == nil {
		rows = []model.Ticket{}
	}
	if reflect.DeepEqual(rows, r.tickets) {
		return nil
	}
	r.tickets = append([]model.Ticket{}, rows...)
	if err := r.save(ctx); err != nil {
		return &errs.NotDurableError{Err: err}
	}
	return nil
}

// Reset replaces the table with an empty one and persists it. Destructive:
// the prior content is not backed up. Authorization happens before this is
// called. Note the id counter effectively restarts, so ids are reused.
func (r *Repository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tickets = []model.Ticket{}
	if err := r.save(ctx); err != nil {
		return &errs.NotDurableError{Err: err}
	}
	return nil
}

// List returns a copy of the current table.
func (r *Repository) List() []model.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Ticket{}, r.tickets...)
}

func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tickets)
}

// Degraded reports whether the initial load failed and the session started
// from an empty table.
func (r *Repository) Degraded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.degraded
}

func (r *Repository) save(ctx context.Context) error {
	if err := r.store.Save(ctx, r.tickets, r.fileName); err != nil {
		logrus.Warnf("repository: save %s (%d rows): %v", r.fileName, len(r.tickets), err)
		return err
	}
	return nil
}
