package repository

import (
	"context"

	"grievancehub/internal/model"
	"grievancehub/internal/store"

	"go.uber.org/zap"
)

// IUserRepository defines user persistence. Lookups return (nil, nil) when no
// record matches.
type IUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Add(ctx context.Context, user model.User) error
	All(ctx context.Context) ([]model.User, error)
}

// UserRepository implements user persistence over the record store. Every
// operation independently loads the full collection before acting and writes
// it back after mutating; there is no shared cache across calls.
type UserRepository struct {
	store *store.RecordStore
	log   *zap.Logger
}

func NewUserRepository(st *store.RecordStore, log *zap.Logger) IUserRepository {
	return &UserRepository{store: st, log: log}
}

// load degrades a failed read to an empty collection so callers keep the
// fail-soft contract; the underlying error is only visible in the log.
func (r *UserRepository) load(ctx context.Context) []model.User {
	users, err := r.store.LoadUsers(ctx)
	if err != nil {
		r.log.Warn("loading users failed, treating collection as empty", zap.Error(err))
		return nil
	}
	return users
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.load(ctx) {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range r.load(ctx) {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

// Add appends the user and writes the collection back. No duplicate check is
// performed here; email uniqueness is the caller's concern.
func (r *UserRepository) Add(ctx context.Context, user model.User) error {
	users := append(r.load(ctx), user)
	return r.store.SaveUsers(ctx, users)
}

func (r *UserRepository) All(ctx context.Context) ([]model.User, error) {
	return r.load(ctx), nil
}
