// Copyright 2025 Poiesic Systems
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

package versesim

import (
	"errors"
	"log/slog"

	"github.com/poiesic/versesim/ingestion"
	"github.com/poiesic/versesim/search"
	"github.com/poiesic/versesim/storage"
	"github.com/poiesic/versesim/storage/badger"
)

// Database bundles a verse store with the searcher and importer built on it.
type Database struct {
	backend   *badger.Backend
	verseRepo storage.VerseRepository
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory bool
	logger   *slog.Logger
}

// InMemory keeps the store in memory; the path is ignored.
func InMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithLogger sets the logger used by the database and passed to the
// searchers and importers it creates. Default is slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	verseRepo, err := badger.NewVerseRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:   backend,
		verseRepo: verseRepo,
		logger:    options.logger,
	}, nil
}

func (db *Database) Close() error {
	var errs []error
	if err := db.verseRepo.Close(); err != nil {
		db.logger.Error("error closing verse repository", "err", err)
		errs = append(errs, err)
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (db *Database) VerseRepository() storage.VerseRepository {
	return db.verseRepo
}

// NewSearcher creates a searcher over the stored verses. Options given here
// override the database logger.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.verseRepo, append([]search.Option{search.WithLogger(db.logger)}, opts...)...)
}

func (db *Database) NewImporter(opts ...ingestion.Option) (*ingestion.Importer, error) {
	return ingestion.NewImporter(db.verseRepo, append([]ingestion.Option{ingestion.WithLogger(db.logger)}, opts...)...)
}
