package services

import "github.com/example/furnistore/internal/apperr"

// resolveTransition maps the outcome of a status-guarded update to the
// reported error. Zero rows affected means the guard did not match: if the
// row already carries the target status the call was a repeat, otherwise
// another writer moved the row first and this caller lost the race.
func resolveTransition(rowsAffected int64, current, target string) error {
	if rowsAffected > 0 {
		return nil
	}
	if current == target {
		return apperr.ErrAlreadyInState
	}
	return apperr.ErrStaleState
}
