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

// Package storage provides the storage abstraction layer for versesim.
//
// Similarity search depends on a single narrow interface, CorpusProvider,
// which hands out the whole corpus as an ordered slice. VerseRepository
// extends it with the create/read/update/delete operations used by the
// importer and the command line tools.
//
// # Implementations
//
//   - badger.VerseRepository: persistent BadgerDB storage
//   - StaticCorpus: a fixed in-memory slice, for tests and embedding
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	defer repo.Close()
//
// # Ordering
//
// FetchAllVerses returns verses ordered by poem, then verse number. Search
// relies on this order to break ties between equally similar verses.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
