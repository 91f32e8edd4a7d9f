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

package storage

import (
	"fmt"

	"github.com/poiesic/versesim/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalVerse serializes a Verse to bytes.
func MarshalVerse(verse *core.Verse) []byte {
	buf := make([]byte, core.VerseMUS.Size(*verse))
	core.VerseMUS.Marshal(*verse, buf)
	return buf
}

// UnmarshalVerse deserializes a Verse from bytes.
func UnmarshalVerse(data []byte) (*core.Verse, error) {
	verse, _, err := core.VerseMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &verse, nil
}

// MarshalPoem serializes a Poem to bytes.
func MarshalPoem(poem *core.Poem) []byte {
	buf := make([]byte, core.PoemMUS.Size(*poem))
	core.PoemMUS.Marshal(*poem, buf)
	return buf
}

// UnmarshalPoem deserializes a Poem from bytes.
func UnmarshalPoem(data []byte) (*core.Poem, error) {
	poem, _, err := core.PoemMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &poem, nil
}
