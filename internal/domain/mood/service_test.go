package mood

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"djigbo-server/internal/utils/apperr"
)

type stubRepo struct {
	created []Entry
	listed  []Entry
}

func (s *stubRepo) Create(_ context.Context, e *Entry) error {
	e.ID = uint(len(s.created) + 1)
	s.created = append(s.created, *e)
	return nil
}

func (s *stubRepo) ListByUser(_ context.Context, _ string, limit int) ([]Entry, error) {
	if limit < len(s.listed) {
		return s.listed[:limit], nil
	}
	return s.listed, nil
}

func (s *stubRepo) UserStats(context.Context, string) (*UserStats, error)  { return &UserStats{}, nil }
func (s *stubRepo) CampDaily(context.Context, DateRange) ([]CampDay, error) { return nil, nil }
func (s *stubRepo) TodayCamp(context.Context) (*TodayCamp, error)          { return &TodayCamp{}, nil }
func (s *stubRepo) CampStats(context.Context) (*CampStats, error)          { return &CampStats{}, nil }
func (s *stubRepo) ParticipantEntries(context.Context, DateRange) ([]ParticipantEntry, error) {
	return nil, nil
}
func (s *stubRepo) RollupDay(context.Context, string) (*DailyStat, error) { return nil, nil }

func TestService_CheckIn(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	t.Run("valid score stored", func(t *testing.T) {
		e, err := svc.CheckIn(context.Background(), "auth0|u1", 4, nil)
		require.NoError(t, err)
		assert.Equal(t, 4, e.MoodScore)
		assert.Nil(t, e.Thoughts)
	})

	t.Run("thoughts trimmed", func(t *testing.T) {
		thoughts := "  felt great today  "
		e, err := svc.CheckIn(context.Background(), "auth0|u1", 5, &thoughts)
		require.NoError(t, err)
		require.NotNil(t, e.Thoughts)
		assert.Equal(t, "felt great today", *e.Thoughts)
	})

	t.Run("blank thoughts dropped", func(t *testing.T) {
		thoughts := "   "
		e, err := svc.CheckIn(context.Background(), "auth0|u1", 3, &thoughts)
		require.NoError(t, err)
		assert.Nil(t, e.Thoughts)
	})

	for _, score := range []int{0, 6, -1} {
		t.Run("score out of range", func(t *testing.T) {
			_, err := svc.CheckIn(context.Background(), "auth0|u1", score, nil)
			require.Error(t, err)
			assert.Equal(t, apperr.TypeValidation, apperr.From(err).Type)
		})
	}
}

func TestValidateRange(t *testing.T) {
	assert.NoError(t, validateRange(DateRange{}))
	assert.NoError(t, validateRange(DateRange{Start: "2025-07-01", End: "2025-07-14"}))
	assert.Error(t, validateRange(DateRange{Start: "2025-07-01"}))
	assert.Error(t, validateRange(DateRange{Start: "07/01/2025", End: "07/14/2025"}))
	assert.Error(t, validateRange(DateRange{Start: "2025-07-14", End: "2025-07-01"}))
}

func TestService_ParticipantEntriesByDate(t *testing.T) {
	day1 := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)

	repo := &groupingRepo{entries: []ParticipantEntry{
		{ID: 3, CreatedAt: day2},
		{ID: 2, CreatedAt: day1},
		{ID: 1, CreatedAt: day1},
	}}
	svc := NewService(repo)

	grouped, err := svc.ParticipantEntriesByDate(context.Background(), DateRange{})
	require.NoError(t, err)
	assert.Len(t, grouped["2025-07-01"], 2)
	assert.Len(t, grouped["2025-07-02"], 1)
}

type groupingRepo struct {
	stubRepo
	entries []ParticipantEntry
}

func (g *groupingRepo) ParticipantEntries(context.Context, DateRange) ([]ParticipantEntry, error) {
	return g.entries, nil
}
