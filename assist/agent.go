package assist

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/campuskit/wayfinder/core"
	"github.com/campuskit/wayfinder/storage"
	"github.com/panjf2000/ants/v2"
)

// Agent fulfills stored assist requests. It drains the backlog of pending
// requests, then watches the store and completes new requests concurrently
// on a worker pool. Completion failures are written back as ErrorResponse
// so waiting brokers still receive an answer.
type Agent struct {
	requests  storage.AssistRepository
	completer Completer
	pool      *ants.Pool
	logger    *slog.Logger

	mu       sync.Mutex
	inflight map[core.ID]struct{}
}

// AgentOption configures an Agent.
type AgentOption func(*Agent) error

// WithPoolSize sets the worker pool size for concurrent completions.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) AgentOption {
	return func(a *Agent) error {
		if size < 1 {
			size = 1
		}

		if a.pool != nil {
			a.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		a.pool = pool
		return nil
	}
}

// WithAgentLogger sets a custom logger.
// Default is slog.Default().
func WithAgentLogger(logger *slog.Logger) AgentOption {
	return func(a *Agent) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAgent creates a new agent.
func NewAgent(
	requests storage.AssistRepository,
	completer Completer,
	opts ...AgentOption,
) (*Agent, error) {
	if requests == nil {
		return nil, ErrRequestRepositoryRequired
	}
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	a := &Agent{
		requests:  requests,
		completer: completer,
		pool:      pool,
		logger:    slog.Default().With("component", "assist-agent"),
		inflight:  make(map[core.ID]struct{}),
	}

	for _, opt := range opts {
		if optErr := opt(a); optErr != nil {
			a.pool.Release()
			return nil, optErr
		}
	}

	return a, nil
}

// watchAttachGrace is how long Run waits before re-scanning the backlog to
// catch requests written while the store watch was still attaching.
const watchAttachGrace = time.Second

// Run drains the pending backlog and then fulfills new requests as they
// arrive, blocking until the context is cancelled. Run returns nil on
// cancellation and releases the worker pool before returning.
func (a *Agent) Run(ctx context.Context) error {
	defer a.pool.Release()

	if err := a.drainPending(ctx); err != nil {
		return err
	}

	watchDone := make(chan error, 1)
	go func() {
		watchDone <- a.requests.WatchRequests(ctx, func(request *core.AssistRequest) {
			if !request.Fulfilled() {
				a.dispatch(ctx, request)
			}
		})
	}()

	// A request written between the backlog drain and the subscription
	// attaching would never surface on the watch. One more scan after a
	// grace period closes that window; dispatch dedup makes it safe to see
	// the same request twice.
	rescan := time.NewTimer(watchAttachGrace)
	defer rescan.Stop()
	select {
	case err := <-watchDone:
		return err
	case <-rescan.C:
		if err := a.drainPending(ctx); err != nil {
			a.logger.Error("backlog re-scan failed", "err", err)
		}
	}

	return <-watchDone
}

// drainPending dispatches every stored request that has no response yet.
func (a *Agent) drainPending(ctx context.Context) error {
	pending, err := a.requests.PendingRequests(ctx)
	if err != nil {
		return err
	}
	for _, request := range pending {
		a.dispatch(ctx, request)
	}
	return nil
}

// dispatch submits a completion job for the request unless one is already
// running. The backlog drain and the watch can both observe the same
// unfulfilled request.
func (a *Agent) dispatch(ctx context.Context, request *core.AssistRequest) {
	a.mu.Lock()
	if _, busy := a.inflight[request.ID]; busy {
		a.mu.Unlock()
		return
	}
	a.inflight[request.ID] = struct{}{}
	a.mu.Unlock()

	err := a.pool.Submit(func() {
		defer func() {
			a.mu.Lock()
			delete(a.inflight, request.ID)
			a.mu.Unlock()
		}()
		a.fulfill(ctx, request)
	})
	if err != nil {
		a.mu.Lock()
		delete(a.inflight, request.ID)
		a.mu.Unlock()
		a.logger.Error("failed to submit completion job", "id", request.ID, "err", err)
	}
}

func (a *Agent) fulfill(ctx context.Context, request *core.AssistRequest) {
	response, err := a.completer.Complete(ctx, request.Prompt, request.MaxTokens)
	if err != nil {
		a.logger.Error("completion failed", "id", request.ID, "err", err)
		response = ErrorResponse
	}

	if err := a.requests.SetResponse(ctx, request.ID, response); err != nil {
		a.logger.Error("failed to store response", "id", request.ID, "err", err)
	}
}
