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

import (
	"fmt"
	"strings"
)

// ValidateVerse validates a Verse according to domain rules.
//
// Validation rules:
//   - PoemId must not be zero
//   - VerseNo must be positive
//
// NOT validated:
//   - Text (empty verses are stored but never matched by search)
//   - ID (0 is valid, assigned from database sequences)
func ValidateVerse(verse *Verse) error {
	if verse == nil {
		return fmt.Errorf("%w: verse is nil", ErrInvalidVerse)
	}

	if verse.PoemId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidVerse, ErrMissingPoem)
	}

	if verse.VerseNo < 1 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidVerse, ErrInvalidVerseNo, verse.VerseNo)
	}

	return nil
}

// ValidatePoem validates a Poem according to domain rules.
func ValidatePoem(poem *Poem) error {
	if poem == nil {
		return fmt.Errorf("%w: poem is nil", ErrInvalidPoem)
	}

	if strings.TrimSpace(poem.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPoem, ErrEmptyPoemTitle)
	}

	return nil
}
