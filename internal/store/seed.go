package store

import (
	"context"
	"time"

	"grievancehub/internal/model"

	"go.uber.org/zap"
)

// SampleUsers returns the canonical accounts materialized on first read or
// factory reset. The fixed credentials double as operator logins after a
// reset, so they are exported for the setup endpoint to echo back.
func SampleUsers() []model.User {
	return []model.User{
		{
			ID:       "1",
			Name:     "Admin User",
			Email:    "admin@example.com",
			Password: "admin123",
			Role:     model.RoleAdmin,
		},
		{
			ID:       "2",
			Name:     "John Doe",
			Email:    "john@example.com",
			Password: "user123",
			Role:     model.RoleUser,
		},
	}
}

func (s *RecordStore) sampleGrievances() []model.Grievance {
	now := s.now()
	respondedAt := now.Add(-12 * time.Hour)
	return []model.Grievance{
		{
			ID:          "1",
			Title:       "Office AC not working",
			Description: "The air conditioning in the main office has been broken for 3 days. It's getting very hot and uncomfortable to work.",
			Department:  "Maintenance",
			Status:      model.StatusPending,
			SubmittedAt: now,
			UserID:      "2",
		},
		{
			ID:            "2",
			Title:         "Salary discrepancy",
			Description:   "There seems to be an error in my salary calculation for this month. The amount is less than expected.",
			Department:    "Human Resources",
			Status:        model.StatusInProgress,
			SubmittedAt:   now.Add(-24 * time.Hour),
			UserID:        "2",
			AdminResponse: "We are reviewing your salary details and will get back to you within 2 business days.",
			RespondedAt:   &respondedAt,
		},
	}
}

// seed materializes the sample collections. Each blob is only written when
// absent, so seeding never clobbers a surviving collection.
func (s *RecordStore) seed(ctx context.Context) error {
	ok, err := s.backend.Exists(ctx, usersBlob)
	if err != nil {
		return err
	}
	if !ok {
		if err := s.writeBlob(ctx, usersBlob, SampleUsers()); err != nil {
			return err
		}
		s.log.Info("seeded sample users", zap.Int("count", 2))
	}

	ok, err = s.backend.Exists(ctx, grievancesBlob)
	if err != nil {
		return err
	}
	if !ok {
		if err := s.writeBlob(ctx, grievancesBlob, s.sampleGrievances()); err != nil {
			return err
		}
		s.log.Info("seeded sample grievances", zap.Int("count", 2))
	}

	return nil
}
