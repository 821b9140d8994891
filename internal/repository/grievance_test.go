package repository

import (
	"context"
	"testing"
	"time"

	"grievancehub/internal/model"
	"grievancehub/internal/store"
	"grievancehub/pkg/blobstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGrievanceRepo(t *testing.T, seed []model.Grievance) (IGrievanceRepository, *store.RecordStore, *blobstore.MemoryBackend) {
	t.Helper()
	backend := blobstore.NewMemoryBackend()
	st := store.New(backend, zap.NewNop())
	if seed != nil {
		require.NoError(t, st.SaveGrievances(context.Background(), seed))
	}
	return NewGrievanceRepository(st, zap.NewNop()), st, backend
}

func submitted(hour int) time.Time {
	return time.Date(2024, 5, 1, hour, 0, 0, 0, time.UTC)
}

func fixtures() []model.Grievance {
	return []model.Grievance{
		{ID: "100", Title: "Broken chair", Description: "Seat wobbles.", Department: "Facilities", Status: model.StatusPending, SubmittedAt: submitted(9), UserID: "A"},
		{ID: "101", Title: "VPN drops", Description: "Disconnects hourly.", Department: "IT", Status: model.StatusInProgress, SubmittedAt: submitted(10), UserID: "B"},
		{ID: "102", Title: "Cold office", Description: "Heating off on floor 2.", Department: "Facilities", Status: model.StatusPending, SubmittedAt: submitted(11), UserID: "A"},
	}
}

func TestUpdatePreservesUntouchedFields(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newGrievanceRepo(t, fixtures())

	status := model.StatusInProgress
	updated, err := repo.Update(ctx, "100", model.GrievanceUpdate{Status: &status})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, model.StatusInProgress, updated.Status)
	assert.Equal(t, "Broken chair", updated.Title)
	assert.Equal(t, "Seat wobbles.", updated.Description)
	assert.Equal(t, "Facilities", updated.Department)
	assert.Equal(t, submitted(9), updated.SubmittedAt)
	assert.Equal(t, "A", updated.UserID)
	assert.Empty(t, updated.AdminResponse)
	assert.Nil(t, updated.RespondedAt)

	// The merge is persisted, not just returned.
	reloaded, err := repo.FindByID(ctx, "100")
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, *updated, *reloaded)
}

func TestUpdateNotFoundLeavesStoreUnmodified(t *testing.T) {
	ctx := context.Background()
	repo, st, _ := newGrievanceRepo(t, fixtures())

	before, err := st.LoadGrievances(ctx)
	require.NoError(t, err)

	status := model.StatusResolved
	updated, err := repo.Update(ctx, "does-not-exist", model.GrievanceUpdate{Status: &status})
	require.NoError(t, err)
	assert.Nil(t, updated)

	after, err := st.LoadGrievances(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestByUserFilter(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newGrievanceRepo(t, fixtures())

	forA, err := repo.ByUser(ctx, "A")
	require.NoError(t, err)
	require.Len(t, forA, 2)
	for _, g := range forA {
		assert.Equal(t, "A", g.UserID)
	}

	forB, err := repo.ByUser(ctx, "B")
	require.NoError(t, err)
	require.Len(t, forB, 1)
	assert.Equal(t, "101", forB[0].ID)

	forNone, err := repo.ByUser(ctx, "C")
	require.NoError(t, err)
	assert.Empty(t, forNone)
}

func TestAddAppends(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newGrievanceRepo(t, fixtures())

	g := model.Grievance{ID: "103", Title: "New", Description: "d", Department: "IT", Status: model.StatusPending, SubmittedAt: submitted(12), UserID: "B"}
	require.NoError(t, repo.Add(ctx, g))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, g, all[3])
}

func TestFindByIDNotFound(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newGrievanceRepo(t, fixtures())

	g, err := repo.FindByID(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestCorruptBlobDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	repo, _, backend := newGrievanceRepo(t, nil)

	require.NoError(t, backend.Write(ctx, "grievances.json", []byte("{ corrupt")))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
