// Package store is the boundary between the in-memory ticket table and the
// remote object store. The whole table lives in one named CSV file on Google
// Drive: Load fetches it wholesale, Save rewrites it wholesale.
package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/GolpiraElmiA/OSRTickets/internal/errs"
	"github.com/GolpiraElmiA/OSRTickets/internal/model"
)

// MimeType advertised for files this service writes. The first deployments
// used the legacy excel mimetype; the file has always been plain CSV, so new
// writes say so. Lookups are by name only, so legacy-mimetype files are
// still found (and can be migrated).
const MimeType = "text/csv"

type DriveStore struct {
	svc *drive.Service
}

// NewDrive builds a store from a service account key file. The drive.file
// scope is enough: the service only ever touches the file it created.
func NewDrive(ctx context.Context, credentialsFile string) (*DriveStore, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveFileScope),
	)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return &DriveStore{svc: svc}, nil
}

// Load fetches and parses the named file. An absent file is first run, not
// an error: the caller gets an empty table. Transport failures surface as
// ErrStoreUnavailable; a file with a non-canonical header surfaces as
// ErrSchemaMismatch and needs the migrate command.
func (s *DriveStore) Load(ctx context.Context, name string) ([]model.Ticket, error) {
	id, err := s.findFile(ctx, name)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return []model.Ticket{}, nil
	}
	data, err := s.download(ctx, id, name)
	if err != nil {
		return nil, err
	}
	tickets, err := model.DecodeCSV(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return tickets, nil
}

// Save serializes the table and replaces the remote file in place. When the
// file exists its media is overwritten under the same file id, so there is
// no window in which the file is gone; a missing file is created.
func (s *DriveStore) Save(ctx context.Context, tickets []model.Ticket, name string) error {
	data, err := model.EncodeCSV(tickets)
	if err != nil {
		return err
	}
	id, err := s.findFile(ctx, name)
	if err != nil {
		return err
	}
	if id != "" {
		_, err = s.svc.Files.Update(id, &drive.File{}).
			Media(bytes.NewReader(data), googleapi.ContentType(MimeType)).
			Context(ctx).Do()
		if err != nil {
			return unavailable("update "+name, err)
		}
		return nil
	}
	_, err = s.svc.Files.Create(&drive.File{Name: name, MimeType: MimeType}).
		Media(bytes.NewReader(data), googleapi.ContentType(MimeType)).
		Context(ctx).Do()
	if err != nil {
		return unavailable("create "+name, err)
	}
	return nil
}

// Fetch returns the raw bytes of the named file without interpreting the
// schema. Used by the migrate command. found=false when the file is absent.
func (s *DriveStore) Fetch(ctx context.Context, name string) (data []byte, found bool, err error) {
	id, err := s.findFile(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if id == "" {
		return nil, false, nil
	}
	data, err = s.download(ctx, id, name)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// findFile resolves a file name to its Drive id by exact-name lookup. The
// query deliberately does not filter on mimeType: the original deployment
// wrote the file as application/vnd.ms-excel, and filtering would hide it,
// leaving a legacy file orphaned next to a freshly created one. Returns ""
// when no match exists.
func (s *DriveStore) findFile(ctx context.Context, name string) (string, error) {
	q := fmt.Sprintf("name='%s' and trashed=false", escapeQuery(name))
	list, err := s.svc.Files.List().Q(q).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", unavailable("list "+name, err)
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

func (s *DriveStore) download(ctx context.Context, id, name string) ([]byte, error) {
	resp, err := s.svc.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return nil, unavailable("download "+name, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unavailable("read "+name, err)
	}
	return data, nil
}

func escapeQuery(name string) string {
	return strings.ReplaceAll(name, `'`, `\'`)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("drive: %s: %v: %w", op, err, errs.ErrStoreUnavailable)
}
