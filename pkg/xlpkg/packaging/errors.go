package packaging

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptArchive is returned when the input is not a readable ZIP archive.
	ErrCorruptArchive = errors.New("not a valid zip archive")
	// ErrEncryptedPackage marks a password protected workbook, which is stored
	// as a compound file rather than a ZIP archive.
	ErrEncryptedPackage = errors.New("package is encrypted")
	// ErrLegacyWorkbook marks a BIFF .xls workbook.
	ErrLegacyWorkbook = errors.New("legacy binary workbook")
	// ErrPartNotFound is returned when a named part is absent from the archive.
	ErrPartNotFound = errors.New("part not found")
	// ErrArchiveClosed is returned by reads after Close.
	ErrArchiveClosed = errors.New("archive is closed")
	// ErrMissingPart is matched by MissingPartError.
	ErrMissingPart = errors.New("required part missing")
)

// MissingPartError reports a required part that cannot be located.
type MissingPartError struct {
	Part   string
	Reason string
}

func (e *MissingPartError) Error() string {
	if e.Part == "" {
		return fmt.Sprintf("required part missing: %s", e.Reason)
	}
	return fmt.Sprintf("required part missing: %s: %s", e.Part, e.Reason)
}

func (e *MissingPartError) Unwrap() error {
	return ErrMissingPart
}
