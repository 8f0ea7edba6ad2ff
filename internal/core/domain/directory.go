package domain

import "time"

// DirectoryRecord is the result of a directory lookup for one canonical
// identifier. Records live only for the duration of one comparison run
// (the lookup cache persists them separately).
type DirectoryRecord struct {
	// Status is the entry's lifecycle status.
	Status RecordStatus

	// ReplacedBy is the identifier of the superseding entry.
	// Set only when Status is RecordReplaced.
	ReplacedBy string

	// Created is the entry's creation date in the directory.
	Created time.Time
}
