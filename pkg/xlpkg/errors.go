package xlpkg

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFileType indicates a path whose extension is not a supported
// package format. It is matched by every InvalidFileTypeError.
var ErrInvalidFileType = errors.New("invalid file type")

// Container errors, re-exported so callers need not import packaging.
var (
	ErrCorruptArchive   = packaging.ErrCorruptArchive
	ErrEncryptedPackage = packaging.ErrEncryptedPackage
	ErrLegacyWorkbook   = packaging.ErrLegacyWorkbook
	ErrMissingPart      = packaging.ErrMissingPart
)

// SupportedExtensions lists the file extensions LoadWorkbook accepts.
var SupportedExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}

// InvalidFileTypeError represents a path rejected before it is opened.
type InvalidFileTypeError struct {
	Path string
	Ext  string
}

func (e *InvalidFileTypeError) Error() string {
	switch e.Ext {
	case ".xls":
		return fmt.Sprintf("%s: the old .xls binary format is not supported; save the file as .xlsx", e.Path)
	case ".xlsb":
		return fmt.Sprintf("%s: the binary .xlsb format is not supported", e.Path)
	case "":
		return fmt.Sprintf("%s: file has no extension; supported formats are .xlsx, .xlsm, .xltx, .xltm", e.Path)
	}
	return fmt.Sprintf("%s: %s file format is not supported; supported formats are .xlsx, .xlsm, .xltx, .xltm", e.Path, e.Ext)
}

func (e *InvalidFileTypeError) Unwrap() error {
	return ErrInvalidFileType
}

// LoadError represents a failure in one stage of a workbook load.
type LoadError struct {
	Stage Stage
	Part  string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Part == "" {
		return fmt.Sprintf("load failed at %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("load failed at %s (%s): %v", e.Stage, e.Part, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// newLoadError creates a new LoadError.
func newLoadError(stage Stage, part string, err error) *LoadError {
	return &LoadError{
		Stage: stage,
		Part:  part,
		Err:   err,
	}
}
