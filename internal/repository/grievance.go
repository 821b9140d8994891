package repository

import (
	"context"

	"grievancehub/internal/model"
	"grievancehub/internal/store"

	"go.uber.org/zap"
)

// IGrievanceRepository defines grievance persistence. Lookups and updates
// return (nil, nil) when no record matches the id.
type IGrievanceRepository interface {
	Add(ctx context.Context, grievance model.Grievance) error
	FindByID(ctx context.Context, id string) (*model.Grievance, error)
	Update(ctx context.Context, id string, upd model.GrievanceUpdate) (*model.Grievance, error)
	ByUser(ctx context.Context, userID string) ([]model.Grievance, error)
	All(ctx context.Context) ([]model.Grievance, error)
}

// GrievanceRepository implements grievance persistence over the record store
// with the same load-act-save shape as UserRepository.
type GrievanceRepository struct {
	store *store.RecordStore
	log   *zap.Logger
}

func NewGrievanceRepository(st *store.RecordStore, log *zap.Logger) IGrievanceRepository {
	return &GrievanceRepository{store: st, log: log}
}

func (r *GrievanceRepository) load(ctx context.Context) []model.Grievance {
	grievances, err := r.store.LoadGrievances(ctx)
	if err != nil {
		r.log.Warn("loading grievances failed, treating collection as empty", zap.Error(err))
		return nil
	}
	return grievances
}

func (r *GrievanceRepository) Add(ctx context.Context, grievance model.Grievance) error {
	grievances := append(r.load(ctx), grievance)
	return r.store.SaveGrievances(ctx, grievances)
}

func (r *GrievanceRepository) FindByID(ctx context.Context, id string) (*model.Grievance, error) {
	for _, g := range r.load(ctx) {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, nil
}

// Update merges the non-nil fields of upd over the stored record and writes
// the collection back. When the id matches nothing it returns (nil, nil) and
// the persisted collection is left untouched.
func (r *GrievanceRepository) Update(ctx context.Context, id string, upd model.GrievanceUpdate) (*model.Grievance, error) {
	grievances := r.load(ctx)
	idx := -1
	for i, g := range grievances {
		if g.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	g := grievances[idx]
	applyUpdate(&g, upd)
	grievances[idx] = g

	if err := r.store.SaveGrievances(ctx, grievances); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GrievanceRepository) ByUser(ctx context.Context, userID string) ([]model.Grievance, error) {
	matched := make([]model.Grievance, 0)
	for _, g := range r.load(ctx) {
		if g.UserID == userID {
			matched = append(matched, g)
		}
	}
	return matched, nil
}

func (r *GrievanceRepository) All(ctx context.Context) ([]model.Grievance, error) {
	return r.load(ctx), nil
}

func applyUpdate(g *model.Grievance, upd model.GrievanceUpdate) {
	if upd.Title != nil {
		g.Title = *upd.Title
	}
	if upd.Description != nil {
		g.Description = *upd.Description
	}
	if upd.Department != nil {
		g.Department = *upd.Department
	}
	if upd.Status != nil {
		g.Status = *upd.Status
	}
	if upd.AdminResponse != nil {
		g.AdminResponse = *upd.AdminResponse
	}
	if upd.RespondedAt != nil {
		g.RespondedAt = upd.RespondedAt
	}
}
