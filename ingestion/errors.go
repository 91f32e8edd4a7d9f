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

package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when a verse repository is not provided.
	ErrRepositoryRequired = errors.New("verse repository required")

	// ErrReaderRequired is returned when Import is called without a reader.
	ErrReaderRequired = errors.New("book reader required")

	// ErrNoPoems is returned when a book contains no poem with at least one verse.
	ErrNoPoems = errors.New("book contains no poems")

	// ErrInvalidBatchSize is returned when the batch size is below 1.
	ErrInvalidBatchSize = errors.New("batch size must be at least 1")

	// ErrInvalidMaxAttempts is returned when the retry attempt count is below 1.
	ErrInvalidMaxAttempts = errors.New("max attempts must be at least 1")
)
