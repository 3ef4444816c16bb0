package assist

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/campuskit/wayfinder/core"
	"github.com/campuskit/wayfinder/storage"
)

// ErrorResponse is the fixed answer surfaced to users when a completion
// cannot be produced, whether the provider failed or the wait timed out.
const ErrorResponse = "There was an error processing your request."

// conciseSuffix keeps free-form answers short enough for a results card.
const conciseSuffix = " (Provide a concise response, no more than 3 sentences.)"

const (
	askTokenBudget     = 100
	explainTokenBudget = 150
)

// DefaultTimeout bounds how long a caller waits for an agent to fulfill
// a request before degrading.
const DefaultTimeout = 30 * time.Second

// ContextType selects the framing used when explaining a fact.
type ContextType string

const (
	ContextAcademic ContextType = "academic"
	ContextBuilding ContextType = "building"
)

// Broker submits completion requests through the request store and waits
// for an agent to fulfill them. Each submission is keyed by its request ID;
// a watch on the store routes fulfilled responses back to the single
// waiting caller. A Broker is safe for concurrent use.
type Broker struct {
	requests storage.AssistRepository
	timeout  time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	pending map[core.ID]chan string
	closed  bool

	cancel context.CancelFunc
	done   chan struct{}
}

// BrokerOption configures a Broker.
type BrokerOption func(*Broker)

// WithTimeout sets how long Ask and Explain wait for a response before
// degrading. Default is DefaultTimeout.
func WithTimeout(timeout time.Duration) BrokerOption {
	return func(b *Broker) {
		if timeout > 0 {
			b.timeout = timeout
		}
	}
}

// WithBrokerLogger sets a custom logger.
func WithBrokerLogger(logger *slog.Logger) BrokerOption {
	return func(b *Broker) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBroker creates a broker and starts its response watch.
// Callers must Close the broker to stop the watch.
func NewBroker(requests storage.AssistRepository, opts ...BrokerOption) (*Broker, error) {
	if requests == nil {
		return nil, ErrRequestRepositoryRequired
	}

	b := &Broker{
		requests: requests,
		timeout:  DefaultTimeout,
		logger:   slog.Default().With("component", "assist-broker"),
		pending:  make(map[core.ID]chan string),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	go b.watch(ctx)

	return b, nil
}

// Ask answers a free-form query. The prompt carries a conciseness
// instruction so answers fit a results card. Any failure, including a
// timeout or context cancellation, returns ErrorResponse.
func (b *Broker) Ask(ctx context.Context, query string) string {
	return b.submit(ctx, query+conciseSuffix, askTokenBudget, ErrorResponse)
}

// Explain enriches a known fact with a short friendly explanation.
// Failures return the empty string so callers can skip enrichment rather
// than surface an error.
func (b *Broker) Explain(ctx context.Context, fact string, contextType ContextType) string {
	return b.submit(ctx, explainPrompt(fact, contextType), explainTokenBudget, "")
}

func explainPrompt(fact string, contextType ContextType) string {
	switch contextType {
	case ContextAcademic:
		return "Explain this academic event in a friendly, informative tone: " + fact
	default:
		return "Explain this campus information in a friendly, informative tone: " + fact
	}
}

// submit writes the request, registers a waiter, and blocks until the
// response arrives or the wait is abandoned. degraded is returned on any
// failure path.
func (b *Broker) submit(ctx context.Context, prompt string, maxTokens int, degraded string) string {
	request, err := b.requests.AddRequest(ctx, &core.AssistRequest{
		Prompt:    prompt,
		MaxTokens: maxTokens,
	})
	if err != nil {
		b.logger.Error("failed to store assist request", "err", err)
		return degraded
	}

	ch, err := b.register(request.ID)
	if err != nil {
		return degraded
	}

	// The agent may have fulfilled the request between the write and the
	// waiter registration, before the watch was looking for it.
	if stored, err := b.requests.GetRequest(ctx, request.ID); err == nil && stored.Fulfilled() {
		b.resolve(request.ID)
		return Sanitize(stored.Response)
	}

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case response := <-ch:
		return Sanitize(response)
	case <-timer.C:
		b.resolve(request.ID)
		b.logger.Warn("assist request timed out", "id", request.ID)
		return degraded
	case <-ctx.Done():
		b.resolve(request.ID)
		return degraded
	}
}

func (b *Broker) register(id core.ID) (chan string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBrokerClosed
	}
	ch := make(chan string, 1)
	b.pending[id] = ch
	return ch, nil
}

// resolve unregisters a waiter. Returns the channel if it was still
// pending, guaranteeing at most one deliver or resolve wins per request.
func (b *Broker) resolve(id core.ID) chan string {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.pending[id]
	if !ok {
		return nil
	}
	delete(b.pending, id)
	return ch
}

// deliver routes a fulfilled response to its waiter, if any remains.
func (b *Broker) deliver(id core.ID, response string) {
	if ch := b.resolve(id); ch != nil {
		ch <- response
	}
}

func (b *Broker) watch(ctx context.Context) {
	defer close(b.done)
	err := b.requests.WatchRequests(ctx, func(request *core.AssistRequest) {
		if request.Fulfilled() {
			b.deliver(request.ID, request.Response)
		}
	})
	if err != nil {
		b.logger.Error("assist response watch stopped", "err", err)
	}
}

// Close stops the response watch and unregisters all waiters. Waiters
// blocked in submit fall through to their timeout or context paths.
func (b *Broker) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.pending = make(map[core.ID]chan string)
	b.mu.Unlock()

	b.cancel()
	<-b.done
	return nil
}
