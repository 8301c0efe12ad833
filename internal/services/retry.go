package services

import (
	"github.com/conceptpulse/conceptpulse-backend/internal/apperr"
	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/repos"
)

const storageRetryAttempts = 3

// withConflictRetry reruns op on transient serialization failures. After the
// bounded attempts are spent the error surfaces as a storage conflict.
func withConflictRetry(log *logger.Logger, op func() error) error {
	var err error
	for attempt := 1; attempt <= storageRetryAttempts; attempt++ {
		err = op()
		if err == nil || !repos.IsRetryable(err) {
			return err
		}
		log.Warn("Retrying after storage conflict", "attempt", attempt, "error", err)
	}
	return apperr.Conflict("storage_conflict", err)
}
