package runs

import (
	"testing"
	"time"

	"github.com/aristath/allocator/internal/domain"
	testutil "github.com/aristath/allocator/internal/testing"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunRepository(t *testing.T) *RunRepository {
	t.Helper()
	db, cleanup := testutil.NewTestDB(t)
	t.Cleanup(cleanup)
	return NewRunRepository(db.Conn(), zerolog.Nop())
}

func intPtr(v int) *int { return &v }

func TestRunRepository_CreateAndGet(t *testing.T) {
	repo := newTestRunRepository(t)
	fixtures := testutil.NewAssetFixtures()
	selected := domain.Selection{fixtures[1], fixtures[3]}

	created, err := repo.Create(Run{
		Kind:          KindOptimize,
		Capital:       150,
		RiskTolerance: intPtr(60),
		AssetCount:    len(fixtures),
		Selected:      selected,
		TotalCost:     selected.TotalCost(),
		TotalReturn:   selected.TotalReturn(),
		TotalRisk:     selected.TotalRisk(),
	})
	require.NoError(t, err)

	_, err = uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, KindOptimize, got.Kind)
	assert.Equal(t, 150, got.Capital)
	require.NotNil(t, got.RiskTolerance)
	assert.Equal(t, 60, *got.RiskTolerance)
	assert.Equal(t, selected, got.Selected)
	assert.Equal(t, 140, got.TotalCost)
	assert.InDelta(t, 60.0, got.TotalReturn, 1e-9)
	assert.Equal(t, 55, got.TotalRisk)
	assert.Equal(t, created.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestRunRepository_CreateIgnoresCallerID(t *testing.T) {
	repo := newTestRunRepository(t)

	a, err := repo.Create(Run{ID: "fixed", Kind: KindFrontier})
	require.NoError(t, err)
	b, err := repo.Create(Run{ID: "fixed", Kind: KindFrontier})
	require.NoError(t, err)

	assert.NotEqual(t, "fixed", a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRunRepository_FrontierRunHasNoTolerance(t *testing.T) {
	repo := newTestRunRepository(t)

	created, err := repo.Create(Run{Kind: KindFrontier, Capital: 150})
	require.NoError(t, err)

	got, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RiskTolerance)
	assert.NotNil(t, got.Selected)
	assert.Empty(t, got.Selected)
}

func TestRunRepository_GetByIDNotFound(t *testing.T) {
	repo := newTestRunRepository(t)

	_, err := repo.GetByID("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunRepository_ListNewestFirst(t *testing.T) {
	repo := newTestRunRepository(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		run, err := repo.Create(Run{Kind: KindOptimize, Capital: i, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
		ids = append(ids, run.ID)
	}

	all, err := repo.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{all[0].ID, all[1].ID, all[2].ID})

	limited, err := repo.List(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRunRepository_Frontier(t *testing.T) {
	repo := newTestRunRepository(t)
	run, err := repo.Create(Run{Kind: KindFrontier, Capital: 150})
	require.NoError(t, err)

	points := []domain.FrontierPoint{
		{Tolerance: 5, Risk: 0, Return: 0},
		{Tolerance: 0, Risk: 0, Return: 0},
		{Tolerance: 30, Risk: 25, Return: 40},
	}
	require.NoError(t, repo.SaveFrontier(run.ID, points))

	got, err := repo.GetFrontier(run.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.FrontierPoint{points[1], points[0], points[2]}, got)

	// Saving again replaces
	require.NoError(t, repo.SaveFrontier(run.ID, points[:1]))
	got, err = repo.GetFrontier(run.ID)
	require.NoError(t, err)
	assert.Equal(t, points[:1], got)

	empty, err := repo.GetFrontier("unknown")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRunRepository_SaveFrontierUnknownRun(t *testing.T) {
	repo := newTestRunRepository(t)

	err := repo.SaveFrontier("missing", []domain.FrontierPoint{{Tolerance: 0}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
