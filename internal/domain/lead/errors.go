package lead

import "errors"

var (
	// ErrNotFound indicates the lead vanished before the operation landed.
	ErrNotFound = errors.New("lead not found")
	// ErrLoadFailed indicates the initial fetch of the lead set failed.
	ErrLoadFailed = errors.New("failed to load leads")
	// ErrSuperseded indicates a newer update for the same lead was issued
	// while this one was in flight; only the latest may commit.
	ErrSuperseded = errors.New("update superseded")
)
