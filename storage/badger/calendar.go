package badger

import (
	"context"
	"errors"

	"github.com/campuskit/wayfinder/core"
	"github.com/campuskit/wayfinder/storage"
	"github.com/dgraph-io/badger/v4"
)

// CalendarRepository implements storage.CalendarRepository for BadgerDB.
// The whole academic calendar lives in one document, mirroring the shape
// the scraper tooling produces.
type CalendarRepository struct {
	backend *Backend
}

var _ storage.CalendarRepository = (*CalendarRepository)(nil)

// NewCalendarRepository creates a new CalendarRepository.
func NewCalendarRepository(backend *Backend) *CalendarRepository {
	return &CalendarRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *CalendarRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *CalendarRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// ReplaceCalendar replaces the whole calendar document.
func (r *CalendarRepository) ReplaceCalendar(ctx context.Context, calendar core.Calendar) error {
	for term := range calendar {
		for i := range calendar[term] {
			if err := core.ValidateCalendarEvent(&calendar[term][i]); err != nil {
				return err
			}
		}
	}

	value, err := storage.MarshalCalendar(calendar)
	if err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(calendarRecordKey), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetCalendar retrieves the calendar document.
// A missing document is an empty calendar, not an error.
func (r *CalendarRepository) GetCalendar(ctx context.Context) (core.Calendar, error) {
	calendar := core.Calendar{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(calendarRecordKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(value []byte) error {
			calendar, err = storage.UnmarshalCalendar(value)
			return err
		})
	}, false)
	return calendar, err
}
