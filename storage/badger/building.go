package badger

import (
	"context"
	"errors"
	"strings"

	"github.com/campuskit/wayfinder/core"
	"github.com/campuskit/wayfinder/storage"
	"github.com/dgraph-io/badger/v4"
)

// BuildingRepository implements storage.BuildingRepository for BadgerDB.
type BuildingRepository struct {
	backend *Backend
}

var _ storage.BuildingRepository = (*BuildingRepository)(nil)

// NewBuildingRepository creates a new BuildingRepository.
func NewBuildingRepository(backend *Backend) *BuildingRepository {
	return &BuildingRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *BuildingRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *BuildingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutBuildings stores one or more building records.
func (r *BuildingRepository) PutBuildings(ctx context.Context, buildings ...*core.Building) ([]*core.Building, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, building := range buildings {
			if building.ID == "" {
				building.ID = slugFromName(building.Name)
			}
			normalizeKeywords(building)
			if err := core.ValidateBuilding(building); err != nil {
				return err
			}

			key := makeBuildingKey(building.ID)

			// Drop stale keyword index entries when replacing a record
			old, err := r.readBuilding(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				for _, kw := range old.Keywords {
					if err := tx.Delete(makeKeywordKey(kw, old.ID)); err != nil {
						return err
					}
				}
			}

			value, err := storage.MarshalBuilding(building)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}

			for _, kw := range building.Keywords {
				if err := tx.Set(makeKeywordKey(kw, building.ID), []byte(building.ID)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return buildings, err
}

// GetBuilding retrieves a single building by ID.
func (r *BuildingRepository) GetBuilding(ctx context.Context, id string) (*core.Building, error) {
	var building *core.Building
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		found, err := r.readBuilding(tx, makeBuildingKey(id))
		if err != nil {
			return err
		}
		if found == nil {
			return storage.ErrNotFound
		}
		building = found
		return nil
	}, false)
	return building, err
}

// GetAllBuildings retrieves every building record in key order.
func (r *BuildingRepository) GetAllBuildings(ctx context.Context) ([]*core.Building, error) {
	var buildings []*core.Building
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(buildingRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(value []byte) error {
				building, err := storage.UnmarshalBuilding(value)
				if err != nil {
					return err
				}
				buildings = append(buildings, building)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	return buildings, err
}

// FindByKeyword returns all buildings indexed under the exact keyword.
func (r *BuildingRepository) FindByKeyword(ctx context.Context, keyword string) ([]*core.Building, error) {
	keyword = strings.ToLower(keyword)

	var buildings []*core.Building
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		ids, err := r.keywordHits(tx, keyword)
		if err != nil {
			return err
		}
		buildings, err = r.readBuildings(tx, ids)
		return err
	}, false)
	return buildings, err
}

// FindByAnyKeyword returns all buildings indexed under any of the given
// keywords, deduplicated by building ID.
func (r *BuildingRepository) FindByAnyKeyword(ctx context.Context, keywords []string) ([]*core.Building, error) {
	var buildings []*core.Building
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		seen := make(map[string]bool)
		var ids []string
		for _, keyword := range keywords {
			hits, err := r.keywordHits(tx, strings.ToLower(keyword))
			if err != nil {
				return err
			}
			for _, id := range hits {
				if seen[id] {
					continue
				}
				seen[id] = true
				ids = append(ids, id)
			}
		}
		var err error
		buildings, err = r.readBuildings(tx, ids)
		return err
	}, false)
	return buildings, err
}

// DeleteBuildings removes buildings and their keyword index entries.
func (r *BuildingRepository) DeleteBuildings(ctx context.Context, ids ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeBuildingKey(id)
			building, err := r.readBuilding(tx, key)
			if err != nil {
				return err
			}
			if building == nil {
				return storage.ErrNotFound
			}
			for _, kw := range building.Keywords {
				if err := tx.Delete(makeKeywordKey(kw, id)); err != nil {
					return err
				}
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// keywordHits scans the keyword index for one keyword and returns the
// matching building IDs in index order.
func (r *BuildingRepository) keywordHits(tx *badger.Txn, keyword string) ([]string, error) {
	if keyword == "" {
		return nil, nil
	}

	opts := badger.DefaultIteratorOptions
	opts.Prefix = makePartialKeywordKey(keyword)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var ids []string
	for iter.Rewind(); iter.Valid(); iter.Next() {
		err := iter.Item().Value(func(value []byte) error {
			ids = append(ids, string(value))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// readBuilding reads one building record, returning nil when absent.
func (r *BuildingRepository) readBuilding(tx *badger.Txn, key []byte) (*core.Building, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var building *core.Building
	err = item.Value(func(value []byte) error {
		building, err = storage.UnmarshalBuilding(value)
		return err
	})
	return building, err
}

// readBuildings resolves index hits to full records, skipping dangling IDs.
func (r *BuildingRepository) readBuildings(tx *badger.Txn, ids []string) ([]*core.Building, error) {
	var buildings []*core.Building
	for _, id := range ids {
		building, err := r.readBuilding(tx, makeBuildingKey(id))
		if err != nil {
			return nil, err
		}
		if building == nil {
			continue
		}
		buildings = append(buildings, building)
	}
	return buildings, nil
}

// normalizeKeywords lowercases and trims the keyword list on write so the
// index only ever holds normalized tokens.
func normalizeKeywords(building *core.Building) {
	normalized := building.Keywords[:0]
	for _, kw := range building.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}
	building.Keywords = normalized
}
