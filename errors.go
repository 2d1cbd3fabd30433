package seedscan

import (
	"errors"
	"fmt"

	"github.com/hupe1980/seedscan/internal/filter"
	"github.com/hupe1980/seedscan/internal/resource"
	"github.com/hupe1980/seedscan/internal/search"
	"github.com/hupe1980/seedscan/internal/seed"
)

var (
	// ErrClosed is returned when starting a search that completed or was
	// closed.
	ErrClosed = errors.New("seedscan: search closed")

	// ErrAlreadyStarted is returned by Start on a running search.
	ErrAlreadyStarted = errors.New("seedscan: search already started")

	// ErrNoHashKeys is returned by New when the query inspects no random
	// stream at all, e.g. an empty query.
	ErrNoHashKeys = search.ErrNoHashKeys

	// ErrMemoryLimitExceeded is returned by New when the worker scratch does
	// not fit into WithMemoryLimit.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded

	// ErrEmptySeed is returned for an empty seed string.
	ErrEmptySeed = seed.ErrEmpty

	// ErrConflictingModes is returned when more than one seed source is set.
	ErrConflictingModes = errors.New("seedscan: more than one seed source configured")
)

// ConfigError reports an invalid query clause. Section is "must",
// "should", "mustNot", "deck" or "stake"; Index is -1 for the latter two.
type ConfigError = filter.ConfigError

// InvalidCharError reports a seed character outside the alphabet.
type InvalidCharError = seed.InvalidCharError

// LengthError reports a seed longer than eight characters.
type LengthError = seed.LengthError

// ErrInvalidOption indicates an option value out of range.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidOption struct {
	Option string
	Value  any
	cause  error
}

func (e *ErrInvalidOption) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("seedscan: invalid %s %v: %v", e.Option, e.Value, e.cause)
	}
	return fmt.Sprintf("seedscan: invalid %s %v", e.Option, e.Value)
}

func (e *ErrInvalidOption) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, search.ErrAlreadyRunning):
		return fmt.Errorf("%w: %w", ErrAlreadyStarted, err)
	case errors.Is(err, search.ErrFinished):
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}
	return err
}
