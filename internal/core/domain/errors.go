package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingCanonicalID indicates a hit carries no identifier under
	// the canonical directory namespace. The hit cannot be classified
	// automatically; it is surfaced as unresolved, never a crash.
	ErrMissingCanonicalID = errors.New("no canonical identifier")

	// ErrDirectoryLookup indicates the directory service failed or
	// returned no entry for a requested identifier. The resolution phase
	// for the affected query fails; classification gaps stay visible.
	ErrDirectoryLookup = errors.New("directory lookup failed")

	// ErrQuerySetMismatch indicates the two inputs do not cover the same
	// set of query names. The run must not proceed.
	ErrQuerySetMismatch = errors.New("input files do not share the same query set")

	// ErrAlreadyClassified indicates an attempt to classify a hit twice.
	ErrAlreadyClassified = errors.New("hit already classified")

	// ErrEmailRequired indicates no contact email is configured for the
	// directory service. Lookups refuse to run without one.
	ErrEmailRequired = errors.New("contact email required for directory lookups")

	// ErrRateLimited indicates the directory API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnknownCategory indicates an export request named a category
	// that does not exist.
	ErrUnknownCategory = errors.New("unknown export category")
)
