package search

import (
	"context"
	"testing"

	"github.com/campuskit/wayfinder/core"
	"github.com/campuskit/wayfinder/storage"
	"github.com/campuskit/wayfinder/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, opts ...Option) (*Resolver, storage.BuildingRepository, storage.CalendarRepository) {
	t.Helper()

	buildingRepo, calendarRepo, assistRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		assistRepo.Close()
		calendarRepo.Close()
		buildingRepo.Close()
		backend.Close()
	})

	resolver, err := NewResolver(buildingRepo, calendarRepo, opts...)
	require.NoError(t, err)
	return resolver, buildingRepo, calendarRepo
}

func seedCalendar(t *testing.T, repo storage.CalendarRepository) {
	t.Helper()
	err := repo.ReplaceCalendar(context.Background(), core.Calendar{
		"Fall-2025": {
			{
				Title:    "Fall Semester Begins",
				Date:     "August 25, 2025",
				Keywords: core.FlexStrings{"fall", "semester", "start", "begin", "classes"},
			},
			{
				Title:       "Fall Break",
				Date:        "October 13, 2025",
				Description: "No classes held.",
				Keywords:    core.FlexStrings{"fall break", "holiday"},
			},
		},
		"Spring-2026": {
			{
				Title:    "Spring Registration Opens",
				Date:     "November 3, 2025",
				Keywords: core.FlexStrings{"spring", "registration", "enroll"},
			},
		},
	})
	require.NoError(t, err)
}

func TestSearchAcademicEvents(t *testing.T) {
	ctx := context.Background()
	resolver, _, calendarRepo := newTestResolver(t)
	seedCalendar(t, calendarRepo)

	t.Run("matches best-scoring event", func(t *testing.T) {
		events, err := resolver.SearchAcademicEvents(ctx, "When does the fall semester start?")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Fall Semester Begins", events[0].Title)
		assert.Equal(t, "August 25, 2025", events[0].Date)
		assert.Equal(t, "Fall-2025", events[0].Term)
	})

	t.Run("missing description gets default", func(t *testing.T) {
		events, err := resolver.SearchAcademicEvents(ctx, "fall semester start")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "No additional info", events[0].Description)
	})

	t.Run("stored description preserved", func(t *testing.T) {
		events, err := resolver.SearchAcademicEvents(ctx, "fall break holiday")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Fall Break", events[0].Title)
		assert.Equal(t, "No classes held.", events[0].Description)
	})

	t.Run("multi-word keyword entries score per token", func(t *testing.T) {
		// "fall break" is stored as one entry but scores on both tokens.
		events, err := resolver.SearchAcademicEvents(ctx, "break")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Fall Break", events[0].Title)
	})

	t.Run("no keyword overlap", func(t *testing.T) {
		events, err := resolver.SearchAcademicEvents(ctx, "where is the library")
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("stop words alone", func(t *testing.T) {
		events, err := resolver.SearchAcademicEvents(ctx, "when does the")
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("empty calendar", func(t *testing.T) {
		fresh, _, _ := newTestResolver(t)
		events, err := fresh.SearchAcademicEvents(ctx, "fall semester")
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestScoreEvent(t *testing.T) {
	event := core.CalendarEvent{
		Title:    "Finals Week",
		Keywords: core.FlexStrings{"finals", "exams", "final exams"},
	}

	t.Run("each query token scores once", func(t *testing.T) {
		assert.Equal(t, 2, scoreEvent(event, []string{"finals", "exams"}))
	})

	t.Run("no overlap", func(t *testing.T) {
		assert.Equal(t, 0, scoreEvent(event, []string{"graduation"}))
	})
}
