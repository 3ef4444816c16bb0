package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/campuskit/wayfinder/assist"
	"github.com/campuskit/wayfinder/core"
	"github.com/campuskit/wayfinder/storage"
)

// Resolver turns a free-text query into search results through a tiered
// pipeline: academic-calendar lookup, then building lookup, then the AI
// fallback. Tiers never run in parallel and no tier is retried; each query
// walks the sequence once.
type Resolver struct {
	buildings storage.BuildingRepository
	calendar  storage.CalendarRepository
	assist    *assist.Broker
	logger    *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithAssist sets the broker used for fallback answers and explanation
// enrichment. Without one, fallback answers degrade to the fixed error
// message and enrichment is skipped.
func WithAssist(broker *assist.Broker) Option {
	return func(r *Resolver) error {
		r.assist = broker
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewResolver creates a new resolver.
func NewResolver(
	buildings storage.BuildingRepository,
	calendar storage.CalendarRepository,
	opts ...Option,
) (*Resolver, error) {
	if buildings == nil {
		return nil, ErrBuildingRepositoryRequired
	}
	if calendar == nil {
		return nil, ErrCalendarRepositoryRequired
	}

	r := &Resolver{
		buildings: buildings,
		calendar:  calendar,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Resolve answers a free-text query.
// Empty or whitespace-only queries resolve to an empty result list with no
// side effects. Tier failures are absorbed: a failing tier logs and yields
// to the next one, and the fallback always produces an answer or the fixed
// degrade message. Nothing propagates to the caller as an error.
func (r *Resolver) Resolve(ctx context.Context, query string) []core.SearchResult {
	return r.ResolveWithMonitor(ctx, query, nil)
}

// ResolveWithMonitor answers a free-text query with observation hooks.
// The monitor receives callbacks at each stage of resolution.
func (r *Resolver) ResolveWithMonitor(ctx context.Context, query string, monitor ResolveMonitor) []core.SearchResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if strings.TrimSpace(query) == "" {
		return []core.SearchResult{}
	}
	monitor.Start(query)

	// 1. Academic calendar tier. A hit ends resolution; building search
	// never runs for calendar queries.
	events, err := r.SearchAcademicEvents(ctx, query)
	if err != nil {
		r.logger.Error("academic lookup failed", "query", query, "err", err)
	}
	monitor.AfterAcademicLookup(events)
	if len(events) > 0 {
		result := r.academicResult(ctx, events[0])
		results := []core.SearchResult{result}
		monitor.Finish(results)
		return results
	}

	// 2. Building tier, with the AI fallback folded in for misses.
	results, err := r.SearchBuildings(ctx, query)
	if err != nil {
		r.logger.Error("building lookup failed", "query", query, "err", err)
		results = []core.SearchResult{r.fallbackResult(ctx, query)}
	}
	monitor.Finish(results)
	return results
}

// fallbackResult asks the assist broker and wraps the answer under the
// distinguished AI-response identifier.
func (r *Resolver) fallbackResult(ctx context.Context, query string) core.SearchResult {
	info := assist.ErrorResponse
	if r.assist != nil {
		info = r.assist.Ask(ctx, query)
	}
	return core.SearchResult{
		ID:           core.AIResponseID,
		Name:         "AI Response",
		RelevantInfo: info,
	}
}

// academicResult maps a matched calendar event into a search result,
// enriched with a friendly explanation when a broker is available.
func (r *Resolver) academicResult(ctx context.Context, event core.CalendarEvent) core.SearchResult {
	var sb strings.Builder
	sb.WriteString(event.Date)
	if event.Term != "" {
		sb.WriteString(" (")
		sb.WriteString(event.Term)
		sb.WriteString(")")
	}
	if event.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(event.Description)
	}

	if r.assist != nil {
		fact := event.Title + " on " + event.Date
		if explanation := r.assist.Explain(ctx, fact, assist.ContextAcademic); explanation != "" {
			sb.WriteString("\n")
			sb.WriteString(explanation)
		}
	}

	return core.SearchResult{
		ID:           core.AcademicEventID,
		Name:         event.Title,
		RelevantInfo: sb.String(),
	}
}
