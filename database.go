// Copyright 2025 Campuskit Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package wayfinder

import (
	"log/slog"
	"time"

	"github.com/campuskit/wayfinder/assist"
	"github.com/campuskit/wayfinder/assist/openai"
	"github.com/campuskit/wayfinder/search"
	"github.com/campuskit/wayfinder/storage"
	"github.com/campuskit/wayfinder/storage/badger"
)

type Database struct {
	backend      *badger.Backend
	buildingRepo storage.BuildingRepository
	calendarRepo storage.CalendarRepository
	assistRepo   storage.AssistRepository
	broker       *assist.Broker
	assistConfig *assist.Config
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	assistConfig  *assist.Config
	assistTimeout time.Duration
	inMemory      bool
}

// WithAssistConfig sets the completion provider configuration used by
// agents created from this database.
func WithAssistConfig(config *assist.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.assistConfig = config
		}
	}
}

// WithAssistTimeout bounds how long resolvers wait for a fallback answer.
func WithAssistTimeout(timeout time.Duration) DatabaseOption {
	return func(o *databaseOptions) {
		o.assistTimeout = timeout
	}
}

// WithInMemory opens the backend without persistent storage. The filePath
// argument is ignored. Intended for tests and experiments.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		assistConfig:  assist.DefaultConfig(), // Default if not provided
		assistTimeout: assist.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	buildingRepo := badger.NewBuildingRepository(backend)
	calendarRepo := badger.NewCalendarRepository(backend)
	assistRepo := badger.NewAssistRepository(backend)

	broker, err := assist.NewBroker(assistRepo,
		assist.WithTimeout(options.assistTimeout))
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:      backend,
		buildingRepo: buildingRepo,
		calendarRepo: calendarRepo,
		assistRepo:   assistRepo,
		broker:       broker,
		assistConfig: options.assistConfig,
		logger:       slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close broker first so its store watch stops before the backend does
	if err := db.broker.Close(); err != nil {
		db.logger.Error("error closing assist broker", "err", err)
	}

	// Close repositories
	if err := db.assistRepo.Close(); err != nil {
		db.logger.Error("error closing assist repository", "err", err)
		return err
	}
	if err := db.calendarRepo.Close(); err != nil {
		db.logger.Error("error closing calendar repository", "err", err)
		return err
	}
	if err := db.buildingRepo.Close(); err != nil {
		db.logger.Error("error closing building repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) BuildingRepository() storage.BuildingRepository {
	return db.buildingRepo
}

func (db *Database) CalendarRepository() storage.CalendarRepository {
	return db.calendarRepo
}

func (db *Database) AssistRepository() storage.AssistRepository {
	return db.assistRepo
}

func (db *Database) NewResolver(opts ...search.Option) (*search.Resolver, error) {
	merged := append([]search.Option{search.WithAssist(db.broker)}, opts...)
	return search.NewResolver(db.buildingRepo, db.calendarRepo, merged...)
}

// NewAgent creates an agent that fulfills assist requests against this
// database using the configured OpenAI-compatible provider.
func (db *Database) NewAgent(opts ...assist.AgentOption) (*assist.Agent, error) {
	completer, err := openai.NewCompleter(db.assistConfig)
	if err != nil {
		return nil, err
	}
	return assist.NewAgent(db.assistRepo, completer, opts...)
}

// NewAgentWithCompleter creates an agent backed by a caller-supplied
// completer. Useful for tests and alternative providers.
func (db *Database) NewAgentWithCompleter(completer assist.Completer, opts ...assist.AgentOption) (*assist.Agent, error) {
	return assist.NewAgent(db.assistRepo, completer, opts...)
}
