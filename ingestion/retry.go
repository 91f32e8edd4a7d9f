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

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/versesim/storage"
)

// retryConflicts runs op until it succeeds, fails with an error other than
// storage.ErrConflict, or uses up maxAttempts. The delay doubles after each
// conflict, starting at baseDelay.
func retryConflicts(ctx context.Context, logger *slog.Logger, maxAttempts int, baseDelay time.Duration, op func() error) error {
	delay := baseDelay
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op()
		if err == nil || !errors.Is(err, storage.ErrConflict) || attempt >= maxAttempts {
			return err
		}
		logger.Debug("write conflict, retrying", "attempt", attempt, "max_attempts", maxAttempts, "delay", delay)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
