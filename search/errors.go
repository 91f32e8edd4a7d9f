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

package search

import "errors"

var (
	// ErrCorpusRequired is returned when a corpus provider is not provided.
	ErrCorpusRequired = errors.New("corpus provider required")

	// ErrNormalizerRequired is returned when a nil normalizer is configured.
	ErrNormalizerRequired = errors.New("normalizer required")

	// ErrMatcherRequired is returned when a nil matcher is configured.
	ErrMatcherRequired = errors.New("matcher required")

	// ErrInvalidWorkers is returned when the worker count is below 1.
	ErrInvalidWorkers = errors.New("worker count must be at least 1")

	// ErrInvalidLimit is returned when the result limit is negative.
	ErrInvalidLimit = errors.New("limit cannot be negative")

	// ErrInvalidWindow is returned when the n-gram size is below 1.
	ErrInvalidWindow = errors.New("n-gram size must be at least 1")

	// ErrInvalidThreshold is returned when the minimum similarity is outside [0, 100].
	ErrInvalidThreshold = errors.New("minimum similarity must be between 0 and 100")

	// ErrCorpusUnavailable is returned when the corpus could not be fetched.
	ErrCorpusUnavailable = errors.New("corpus unavailable")

	// ErrSearchAborted is returned when the scan stopped before reaching the end of the corpus.
	ErrSearchAborted = errors.New("search aborted")
)
