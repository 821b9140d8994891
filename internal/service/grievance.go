package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"grievancehub/internal/model"
	"grievancehub/internal/repository"

	"go.uber.org/zap"
)

const (
	unknownUserName  = "Unknown User"
	unknownUserEmail = "Unknown Email"
)

// GrievanceService handles grievance submission, listing, and admin
// responses.
type GrievanceService struct {
	grievances repository.IGrievanceRepository
	users      repository.IUserRepository
	feed       *Hub
	log        *zap.Logger
	now        func() time.Time
	newID      func() string
}

func NewGrievanceService(grievances repository.IGrievanceRepository, users repository.IUserRepository, feed *Hub, log *zap.Logger) *GrievanceService {
	return &GrievanceService{
		grievances: grievances,
		users:      users,
		feed:       feed,
		log:        log,
		now:        time.Now,
		newID:      timestampID,
	}
}

// timestampID generates millisecond-timestamp ids. Two grievances created in
// the same tick collide; the store does not deduplicate.
func timestampID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// Create submits a new grievance with status Pending and the submission time
// set to the call time.
func (s *GrievanceService) Create(ctx context.Context, title, description, department, userID string) (*model.Grievance, error) {
	grievance := model.Grievance{
		ID:          s.newID(),
		Title:       title,
		Description: description,
		Department:  department,
		Status:      model.StatusPending,
		SubmittedAt: s.now(),
		UserID:      userID,
	}

	if err := s.grievances.Add(ctx, grievance); err != nil {
		return nil, err
	}

	s.log.Info("grievance submitted",
		zap.String("id", grievance.ID),
		zap.String("department", department),
		zap.String("userId", userID))
	s.feed.Broadcast(FeedEvent{Type: FeedCreated, Grievance: grievance})
	return &grievance, nil
}

// ListForUser returns the grievances owned by userID, in storage order.
func (s *GrievanceService) ListForUser(ctx context.Context, userID string) ([]model.Grievance, error) {
	return s.grievances.ByUser(ctx, userID)
}

// ListAll returns every grievance annotated with the submitter's name and
// email, sorted newest first. Ordering is imposed here, not by the store.
func (s *GrievanceService) ListAll(ctx context.Context) ([]model.GrievanceWithUser, error) {
	all, err := s.grievances.All(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	annotated := make([]model.GrievanceWithUser, 0, len(all))
	for _, g := range all {
		entry := model.GrievanceWithUser{
			Grievance: g,
			UserName:  unknownUserName,
			UserEmail: unknownUserEmail,
		}
		if u, ok := byID[g.UserID]; ok {
			entry.UserName = u.Name
			entry.UserEmail = u.Email
		}
		annotated = append(annotated, entry)
	}

	sort.Slice(annotated, func(i, j int) bool {
		return annotated[i].SubmittedAt.After(annotated[j].SubmittedAt)
	})
	return annotated, nil
}

// Respond records an administrative response: status, response text, and the
// response timestamp are set together. Returns (nil, nil) when the id matches
// no grievance.
func (s *GrievanceService) Respond(ctx context.Context, id, response, status string) (*model.Grievance, error) {
	respondedAt := s.now()
	updated, err := s.grievances.Update(ctx, id, model.GrievanceUpdate{
		Status:        &status,
		AdminResponse: &response,
		RespondedAt:   &respondedAt,
	})
	if err != nil || updated == nil {
		return updated, err
	}

	s.log.Info("grievance responded",
		zap.String("id", id),
		zap.String("status", status))
	s.feed.Broadcast(FeedEvent{Type: FeedResponded, Grievance: *updated})
	return updated, nil
}
