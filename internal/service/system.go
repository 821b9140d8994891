package service

import (
	"context"

	"grievancehub/internal/store"

	"go.uber.org/zap"
)

// SampleAccount is the credential set echoed back by a factory reset for
// operator convenience.
type SampleAccount struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SystemService answers setup status queries and performs factory resets.
type SystemService struct {
	store *store.RecordStore
	log   *zap.Logger
}

func NewSystemService(st *store.RecordStore, log *zap.Logger) *SystemService {
	return &SystemService{store: st, log: log}
}

// Initialized reports whether the store has been set up. This read has no
// seeding side effect.
func (s *SystemService) Initialized(ctx context.Context) bool {
	return s.store.IsInitialized(ctx)
}

// Reset discards all persisted data and reseeds the canonical sample
// records. The returned credentials let an operator log back in afterwards.
func (s *SystemService) Reset(ctx context.Context) ([]SampleAccount, error) {
	if err := s.store.Reset(ctx); err != nil {
		return nil, err
	}

	users := store.SampleUsers()
	accounts := make([]SampleAccount, 0, len(users))
	for _, u := range users {
		accounts = append(accounts, SampleAccount{Email: u.Email, Password: u.Password, Role: u.Role})
	}
	return accounts, nil
}
