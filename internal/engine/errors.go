package engine

import "errors"

var (
	// ErrJobNotFound is returned when the job does not exist.
	ErrJobNotFound = errors.New("job not found")
	// ErrJobCancelled stops a run at the next checkpoint.
	ErrJobCancelled = errors.New("job cancelled")
	// ErrInvalidTransition is returned when the job's status forbids the operation.
	ErrInvalidTransition = errors.New("invalid job state transition")
	// ErrTooManyJobs is returned when the concurrent job limit is reached.
	ErrTooManyJobs = errors.New("too many running jobs")
	// ErrJobAlreadyRunning is returned when the job already runs in this process.
	ErrJobAlreadyRunning = errors.New("job already running")
)
