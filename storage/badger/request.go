package badger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/campuskit/wayfinder/core"
	"github.com/campuskit/wayfinder/storage"
	"github.com/dgraph-io/badger/v4"
)

// AssistRepository implements storage.AssistRepository for BadgerDB.
// Request and response share one record; the response lands as a second
// write to the same key, which subscribers observe.
type AssistRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.AssistRepository = (*AssistRepository)(nil)

// NewAssistRepository creates a new AssistRepository.
func NewAssistRepository(backend *Backend) *AssistRepository {
	return &AssistRepository{
		backend: backend,
		logger:  slog.Default().With("component", "assist-repository"),
	}
}

// Close is a no-op; the backend owns the database handle.
func (r *AssistRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *AssistRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddRequest stores a new request record, populating CreatedAt and ID
// when unset.
func (r *AssistRepository) AddRequest(ctx context.Context, request *core.AssistRequest) (*core.AssistRequest, error) {
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now().UTC()
	}
	if request.ID == 0 {
		request.ID = core.RequestID(request.Prompt, request.CreatedAt)
	}
	if err := core.ValidateAssistRequest(request); err != nil {
		return nil, err
	}

	value, err := storage.MarshalAssistRequest(request)
	if err != nil {
		return nil, err
	}

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeRequestKey(request.ID), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return request, nil
}

// GetRequest retrieves a single request by ID.
func (r *AssistRepository) GetRequest(ctx context.Context, id core.ID) (*core.AssistRequest, error) {
	var request *core.AssistRequest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRequestKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(value []byte) error {
			request, err = storage.UnmarshalAssistRequest(value)
			return err
		})
	}, false)
	return request, err
}

// SetResponse records the response for a request.
func (r *AssistRepository) SetResponse(ctx context.Context, id core.ID, response string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRequestKey(id)
		item, err := tx.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		var request *core.AssistRequest
		err = item.Value(func(value []byte) error {
			request, err = storage.UnmarshalAssistRequest(value)
			return err
		})
		if err != nil {
			return err
		}

		request.Response = response
		value, err := storage.MarshalAssistRequest(request)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// PendingRequests retrieves all requests that have no response yet.
func (r *AssistRepository) PendingRequests(ctx context.Context) ([]*core.AssistRequest, error) {
	var pending []*core.AssistRequest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = requestWatchPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(value []byte) error {
				request, err := storage.UnmarshalAssistRequest(value)
				if err != nil {
					return err
				}
				if !request.Fulfilled() {
					pending = append(pending, request)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	return pending, err
}

// WatchRequests invokes fn for every request record written until ctx is
// cancelled. Records that fail to decode are logged and skipped so one bad
// write cannot kill the subscription.
func (r *AssistRepository) WatchRequests(ctx context.Context, fn func(request *core.AssistRequest)) error {
	return r.backend.Subscribe(ctx, requestWatchPrefix(), func(key, value []byte) error {
		request, err := storage.UnmarshalAssistRequest(value)
		if err != nil {
			r.logger.Warn("skipping undecodable request record", "key", string(key), "err", err)
			return nil
		}
		fn(request)
		return nil
	})
}
