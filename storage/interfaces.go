package storage

import (
	"context"

	"github.com/campuskit/wayfinder/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// BuildingRepository provides operations for managing building records.
// The search pipeline consumes it read-only; writes come from data-management
// tooling such as the seed command.
type BuildingRepository interface {
	Repository

	// PutBuildings stores one or more building records, replacing any
	// existing record with the same ID. Records without an ID get one
	// derived from the building name. Keywords are lowercased on write
	// and indexed for exact lookup.
	PutBuildings(ctx context.Context, buildings ...*core.Building) ([]*core.Building, error)

	// GetBuilding retrieves a single building by ID.
	// Returns ErrNotFound if the building doesn't exist.
	GetBuilding(ctx context.Context, id string) (*core.Building, error)

	// GetAllBuildings retrieves every building record.
	GetAllBuildings(ctx context.Context) ([]*core.Building, error)

	// FindByKeyword returns all buildings whose keyword list contains the
	// given keyword as one element. The keyword is matched exactly.
	FindByKeyword(ctx context.Context, keyword string) ([]*core.Building, error)

	// FindByAnyKeyword returns all buildings whose keyword list contains
	// any of the given keywords, deduplicated by building ID. Result order
	// follows the first keyword that matched each building.
	FindByAnyKeyword(ctx context.Context, keywords []string) ([]*core.Building, error)

	// DeleteBuildings removes buildings and their keyword index entries.
	// Returns ErrNotFound if any building doesn't exist.
	DeleteBuildings(ctx context.Context, ids ...string) error
}

// CalendarRepository provides operations for the academic-calendar document.
// The calendar is a single aggregate keyed by term label and is bulk-replaced
// by external ingestion.
type CalendarRepository interface {
	Repository

	// ReplaceCalendar replaces the whole calendar document.
	ReplaceCalendar(ctx context.Context, calendar core.Calendar) error

	// GetCalendar retrieves the calendar document.
	// A missing document is returned as an empty calendar, not an error.
	GetCalendar(ctx context.Context) (core.Calendar, error)
}

// AssistRepository provides operations for AI completion request records.
// Requests are appended by the assist broker and mutated exactly once by a
// completion agent to add the response.
type AssistRepository interface {
	Repository

	// AddRequest stores a new request record. Zero CreatedAt is set to the
	// current time and a zero ID is derived from prompt and creation time.
	// Returns the request with those fields populated.
	AddRequest(ctx context.Context, request *core.AssistRequest) (*core.AssistRequest, error)

	// GetRequest retrieves a single request by ID.
	// Returns ErrNotFound if the request doesn't exist.
	GetRequest(ctx context.Context, id core.ID) (*core.AssistRequest, error)

	// SetResponse records the response for a request.
	// Returns ErrNotFound if the request doesn't exist.
	SetResponse(ctx context.Context, id core.ID, response string) error

	// PendingRequests retrieves all requests that have no response yet.
	PendingRequests(ctx context.Context) ([]*core.AssistRequest, error)

	// WatchRequests invokes fn for every request record written until ctx
	// is cancelled. Both fresh requests and fulfilled ones are delivered;
	// callers filter on Fulfilled. Returns nil on cancellation.
	WatchRequests(ctx context.Context, fn func(request *core.AssistRequest)) error
}
