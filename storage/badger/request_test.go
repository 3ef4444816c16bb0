package badger

import (
	"context"
	"testing"
	"time"

	"github.com/campuskit/wayfinder/core"
	"github.com/campuskit/wayfinder/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssistRepo(t *testing.T) storage.AssistRepository {
	t.Helper()
	_, _, assistRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return assistRepo
}

func TestAssistRepository_AddRequest(t *testing.T) {
	repo := newTestAssistRepo(t)
	ctx := context.Background()

	stored, err := repo.AddRequest(ctx, &core.AssistRequest{
		Prompt:    "where is the gym",
		MaxTokens: 100,
	})
	require.NoError(t, err)
	assert.NotZero(t, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())

	got, err := repo.GetRequest(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "where is the gym", got.Prompt)
	assert.False(t, got.Fulfilled())
}

func TestAssistRepository_AddRequestRejectsInvalid(t *testing.T) {
	repo := newTestAssistRepo(t)

	_, err := repo.AddRequest(context.Background(), &core.AssistRequest{MaxTokens: 100})
	assert.ErrorIs(t, err, core.ErrEmptyPrompt)
}

func TestAssistRepository_GetMissing(t *testing.T) {
	repo := newTestAssistRepo(t)

	_, err := repo.GetRequest(context.Background(), core.ID(42))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAssistRepository_SetResponse(t *testing.T) {
	repo := newTestAssistRepo(t)
	ctx := context.Background()

	stored, err := repo.AddRequest(ctx, &core.AssistRequest{Prompt: "hi", MaxTokens: 100})
	require.NoError(t, err)

	require.NoError(t, repo.SetResponse(ctx, stored.ID, "hello"))

	got, err := repo.GetRequest(ctx, stored.ID)
	require.NoError(t, err)
	assert.True(t, got.Fulfilled())
	assert.Equal(t, "hello", got.Response)

	assert.ErrorIs(t, repo.SetResponse(ctx, core.ID(42), "x"), storage.ErrNotFound)
}

func TestAssistRepository_PendingRequests(t *testing.T) {
	repo := newTestAssistRepo(t)
	ctx := context.Background()

	first, err := repo.AddRequest(ctx, &core.AssistRequest{Prompt: "first", MaxTokens: 100})
	require.NoError(t, err)
	_, err = repo.AddRequest(ctx, &core.AssistRequest{Prompt: "second", MaxTokens: 100})
	require.NoError(t, err)

	require.NoError(t, repo.SetResponse(ctx, first.ID, "done"))

	pending, err := repo.PendingRequests(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "second", pending[0].Prompt)
}

func TestAssistRepository_WatchRequests(t *testing.T) {
	repo := newTestAssistRepo(t)

	watchCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fulfilled := make(chan *core.AssistRequest, 4)
	watchDone := make(chan error, 1)
	go func() {
		watchDone <- repo.WatchRequests(watchCtx, func(request *core.AssistRequest) {
			if request.Fulfilled() {
				fulfilled <- request
			}
		})
	}()

	// Give the subscription a moment to attach before writing.
	time.Sleep(50 * time.Millisecond)

	ctx := context.Background()
	stored, err := repo.AddRequest(ctx, &core.AssistRequest{Prompt: "ping", MaxTokens: 100})
	require.NoError(t, err)
	require.NoError(t, repo.SetResponse(ctx, stored.ID, "pong"))

	select {
	case request := <-fulfilled:
		assert.Equal(t, stored.ID, request.ID)
		assert.Equal(t, "pong", request.Response)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for fulfilled request")
	}

	cancel()
	select {
	case err := <-watchDone:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop on cancellation")
	}
}
