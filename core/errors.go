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

package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidVerse indicates a Verse failed validation.
	ErrInvalidVerse = errors.New("invalid verse")

	// ErrInvalidPoem indicates a Poem failed validation.
	ErrInvalidPoem = errors.New("invalid poem")

	// ErrInvalidVerseNo indicates a verse number below 1.
	ErrInvalidVerseNo = errors.New("verse number must be positive")

	// ErrMissingPoem indicates a verse that does not belong to a poem.
	ErrMissingPoem = errors.New("verse must reference a poem")

	// ErrEmptyPoemTitle indicates the poem Title field is empty.
	ErrEmptyPoemTitle = errors.New("poem title cannot be empty")
)
