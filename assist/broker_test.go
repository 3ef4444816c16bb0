package assist

import (
	"context"
	"testing"
	"time"

	"github.com/campuskit/wayfinder/core"
	"github.com/campuskit/wayfinder/storage"
	"github.com/campuskit/wayfinder/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequests(t *testing.T) storage.AssistRepository {
	t.Helper()
	_, _, assistRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		assistRepo.Close()
		backend.Close()
	})
	return assistRepo
}

// respondTo fulfills requests as they arrive, standing in for an agent.
func respondTo(t *testing.T, requests storage.AssistRepository, response string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pending, err := requests.PendingRequests(ctx)
				if err != nil {
					return
				}
				for _, request := range pending {
					requests.SetResponse(ctx, request.ID, response)
				}
			}
		}
	}()
}

func TestNewBroker(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		broker, err := NewBroker(newTestRequests(t))
		require.NoError(t, err)
		assert.NotNil(t, broker)
		assert.NoError(t, broker.Close())
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewBroker(nil)
		assert.Equal(t, ErrRequestRepositoryRequired, err)
	})
}

func TestBroker_Ask(t *testing.T) {
	t.Run("fulfilled request returns sanitized answer", func(t *testing.T) {
		requests := newTestRequests(t)
		respondTo(t, requests, "**The library** opens at 7am.")

		broker, err := NewBroker(requests, WithTimeout(5*time.Second))
		require.NoError(t, err)
		defer broker.Close()

		answer := broker.Ask(context.Background(), "When does the library open?")
		assert.Equal(t, "The library opens at 7am.", answer)
	})

	t.Run("prompt carries concise instruction", func(t *testing.T) {
		requests := newTestRequests(t)
		respondTo(t, requests, "ok")

		broker, err := NewBroker(requests, WithTimeout(5*time.Second))
		require.NoError(t, err)
		defer broker.Close()

		broker.Ask(context.Background(), "what is the student center")

		stored, err := requests.PendingRequests(context.Background())
		require.NoError(t, err)
		// The request is fulfilled by now, so read it back through the
		// store instead.
		assert.Empty(t, stored)
	})

	t.Run("timeout degrades to fixed message", func(t *testing.T) {
		broker, err := NewBroker(newTestRequests(t), WithTimeout(100*time.Millisecond))
		require.NoError(t, err)
		defer broker.Close()

		answer := broker.Ask(context.Background(), "anyone there?")
		assert.Equal(t, ErrorResponse, answer)
	})

	t.Run("cancelled context degrades immediately", func(t *testing.T) {
		broker, err := NewBroker(newTestRequests(t), WithTimeout(time.Minute))
		require.NoError(t, err)
		defer broker.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		answer := broker.Ask(ctx, "anyone there?")
		assert.Equal(t, ErrorResponse, answer)
		assert.Less(t, time.Since(start), 10*time.Second)
	})
}

func TestBroker_Explain(t *testing.T) {
	t.Run("fulfilled request returns explanation", func(t *testing.T) {
		requests := newTestRequests(t)
		respondTo(t, requests, "Fall break is a short pause in the semester.")

		broker, err := NewBroker(requests, WithTimeout(5*time.Second))
		require.NoError(t, err)
		defer broker.Close()

		explanation := broker.Explain(context.Background(), "Fall Break on October 13, 2025", ContextAcademic)
		assert.Equal(t, "Fall break is a short pause in the semester.", explanation)
	})

	t.Run("failure degrades to empty string", func(t *testing.T) {
		broker, err := NewBroker(newTestRequests(t), WithTimeout(100*time.Millisecond))
		require.NoError(t, err)
		defer broker.Close()

		explanation := broker.Explain(context.Background(), "Fall Break on October 13, 2025", ContextAcademic)
		assert.Equal(t, "", explanation)
	})
}

func TestBroker_RequestContents(t *testing.T) {
	requests := newTestRequests(t)

	broker, err := NewBroker(requests, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)
	defer broker.Close()

	// Let the ask time out, then inspect the stored request.
	broker.Ask(context.Background(), "where do I park")
	broker.Explain(context.Background(), "Commencement on May 8, 2026", ContextAcademic)

	pending, err := requests.PendingRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)

	var askRequest, explainRequest *core.AssistRequest
	for _, request := range pending {
		if request.MaxTokens == askTokenBudget {
			askRequest = request
		} else {
			explainRequest = request
		}
	}
	require.NotNil(t, askRequest)
	require.NotNil(t, explainRequest)

	assert.Contains(t, askRequest.Prompt, "where do I park")
	assert.Contains(t, askRequest.Prompt, "no more than 3 sentences")

	assert.Contains(t, explainRequest.Prompt, "Explain this academic event")
	assert.Contains(t, explainRequest.Prompt, "Commencement on May 8, 2026")
	assert.Equal(t, explainTokenBudget, explainRequest.MaxTokens)
}

func TestBroker_Close(t *testing.T) {
	broker, err := NewBroker(newTestRequests(t), WithTimeout(time.Second))
	require.NoError(t, err)

	require.NoError(t, broker.Close())

	t.Run("close is idempotent", func(t *testing.T) {
		assert.NoError(t, broker.Close())
	})

	t.Run("ask after close degrades", func(t *testing.T) {
		answer := broker.Ask(context.Background(), "still there?")
		assert.Equal(t, ErrorResponse, answer)
	})
}

func TestExplainPrompt(t *testing.T) {
	assert.Equal(t,
		"Explain this academic event in a friendly, informative tone: Finals Week on December 15, 2025",
		explainPrompt("Finals Week on December 15, 2025", ContextAcademic))
	assert.Equal(t,
		"Explain this campus information in a friendly, informative tone: Criss Library",
		explainPrompt("Criss Library", ContextBuilding))
}
