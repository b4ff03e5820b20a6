package scheduler

import "errors"

var (
	// ErrAuditorRunning is returned when Start is called on a running auditor
	ErrAuditorRunning = errors.New("reconciliation auditor is already running")

	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid auditor configuration")
)
