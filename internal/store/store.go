package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"grievancehub/internal/model"
	"grievancehub/pkg/blobstore"
	"grievancehub/pkg/timer"

	"go.uber.org/zap"
)

const (
	usersBlob      = "users.json"
	grievancesBlob = "grievances.json"
)

// ErrCorrupt wraps a parse failure on a persisted blob. Callers keeping the
// fail-soft contract log it and treat the collection as empty.
var ErrCorrupt = errors.New("corrupt collection blob")

// RecordStore persists the Users and Grievances collections as whole JSON
// array blobs. Every load reads the full blob and every save overwrites it;
// there is no in-memory authoritative copy and no cross-operation locking, so
// under concurrent mutation the later write wins.
type RecordStore struct {
	backend blobstore.Backend
	log     *zap.Logger
	now     func() time.Time
}

func New(backend blobstore.Backend, log *zap.Logger) *RecordStore {
	return &RecordStore{backend: backend, log: log, now: time.Now}
}

// LoadUsers reads the persisted user collection. If the system has never been
// initialized the sample data is seeded first, so the first read of an empty
// store observes the seed accounts.
func (s *RecordStore) LoadUsers(ctx context.Context) ([]model.User, error) {
	defer timer.Track(s.log, "loadUsers")()

	if !s.IsInitialized(ctx) {
		if err := s.seed(ctx); err != nil {
			return nil, err
		}
	}

	var users []model.User
	if err := s.readBlob(ctx, usersBlob, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// LoadGrievances reads the persisted grievance collection. A missing blob is
// an empty collection; the storage area is created as a side effect of the
// read. Unlike LoadUsers this never seeds.
func (s *RecordStore) LoadGrievances(ctx context.Context) ([]model.Grievance, error) {
	defer timer.Track(s.log, "loadGrievances")()

	var grievances []model.Grievance
	if err := s.readBlob(ctx, grievancesBlob, &grievances); err != nil {
		return nil, err
	}
	return grievances, nil
}

// SaveUsers overwrites the persisted user collection with the given one.
func (s *RecordStore) SaveUsers(ctx context.Context, users []model.User) error {
	defer timer.Track(s.log, "saveUsers")()

	if users == nil {
		users = []model.User{}
	}
	return s.writeBlob(ctx, usersBlob, users)
}

// SaveGrievances overwrites the persisted grievance collection.
func (s *RecordStore) SaveGrievances(ctx context.Context, grievances []model.Grievance) error {
	defer timer.Track(s.log, "saveGrievances")()

	if grievances == nil {
		grievances = []model.Grievance{}
	}
	return s.writeBlob(ctx, grievancesBlob, grievances)
}

// IsInitialized reports whether the user collection exists and is non-empty.
// It is the single source of truth for "has the system been set up" and never
// seeds.
func (s *RecordStore) IsInitialized(ctx context.Context) bool {
	data, err := s.backend.Read(ctx, usersBlob)
	if err != nil {
		return false
	}
	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return false
	}
	return len(users) > 0
}

// EnsureInitialized seeds the sample data if the system has not been set up.
// Idempotent.
func (s *RecordStore) EnsureInitialized(ctx context.Context) error {
	if s.IsInitialized(ctx) {
		return nil
	}
	return s.seed(ctx)
}

// Reset deletes both persisted collections and recreates the sample data.
// Destructive and irreversible; no backup is taken.
func (s *RecordStore) Reset(ctx context.Context) error {
	if err := s.backend.Remove(ctx, usersBlob); err != nil {
		return err
	}
	if err := s.backend.Remove(ctx, grievancesBlob); err != nil {
		return err
	}
	s.log.Info("record store reset, recreating sample data")
	return s.seed(ctx)
}

func (s *RecordStore) readBlob(ctx context.Context, name string, out any) error {
	data, err := s.backend.Read(ctx, name)
	if errors.Is(err, blobstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	return nil
}

func (s *RecordStore) writeBlob(ctx context.Context, name string, in any) error {
	// Pretty-printed so the data files stay hand-editable.
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	return s.backend.Write(ctx, name, data)
}
