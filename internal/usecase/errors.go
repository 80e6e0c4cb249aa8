package usecase

import "errors"

// Error definitions shared by the usecases
var (
	ErrPredictionNotFound = errors.New("prediction not found")
	ErrHistoryUnavailable = errors.New("prediction history unavailable")
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	ErrPageNotFound       = errors.New("page not found")
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
