// Package repository is the data layer: project rows, attachment rows
// and their backing files. Every repository takes its *gorm.DB and
// file store explicitly; nothing in here reaches for a package-level
// handle.
package repository

import (
	"errors"
	"fmt"
)

// Errors of the data layer.
var (
	// ErrNotFound — the referenced id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrValidation — a required field is empty.
	ErrValidation = errors.New("missing required field")
	// ErrStorage — a read/write/delete on durable storage failed.
	ErrStorage = errors.New("storage failure")
)

type RejectReason string

const (
	ReasonUnsupportedType RejectReason = "unsupported type"
	ReasonDuplicate       RejectReason = "duplicate"
)

// RejectedError — an upload was refused before any state changed.
type RejectedError struct {
	Reason RejectReason
	Detail string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("upload rejected (%s): %s", e.Reason, e.Detail)
}
