package search

import (
	"errors"
	"fmt"
)

var (
	ErrConflictingFilters = errors.New("files-only and dirs-only are mutually exclusive")
	ErrInvalidLimit       = errors.New("limit must be a positive integer")
	ErrInvalidThreads     = errors.New("thread count must not be negative")
	ErrInvalidMatchMode   = errors.New("match mode must be fuzzy or exact")
	ErrRootNotFound       = errors.New("search path does not exist")
	ErrRootNotDir         = errors.New("search path is not a directory")
	ErrSymlinkCycle       = errors.New("symlink cycle detected")
)

// ConfigError is returned before a search starts when the configuration is
// unusable.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("search: invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("search: invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err originates from configuration validation.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// TraversalError records a subtree that could not be visited. The search
// continues past it.
type TraversalError struct {
	Op   string
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error { return e.Err }

// WorkerFailure records a parallel worker that panicked while walking a
// subtree. Matches collected before the panic are kept.
type WorkerFailure struct {
	Worker  int
	Subtree string
	Value   any
}

func (e *WorkerFailure) Error() string {
	return fmt.Sprintf("worker %d failed in %s: %v", e.Worker, e.Subtree, e.Value)
}
