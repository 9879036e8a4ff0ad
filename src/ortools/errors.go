package ortools

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedPlatform indicates the target triple or the detected
	// distribution is not part of the supported platform matrix.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrInvalidConfiguration indicates an explicit override that cannot be honored.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDownloadFailed indicates a transport error or a non-200 release response.
	ErrDownloadFailed = errors.New("download failed")

	// ErrExtractionFailed indicates a malformed archive, an unsafe entry path
	// or an I/O failure while unpacking.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrCompilationFailed indicates the interop shim did not compile or archive.
	ErrCompilationFailed = errors.New("compilation failed")

	// ErrLinkEmissionFailed indicates the library directory is missing,
	// unreadable or holds nothing to link against.
	ErrLinkEmissionFailed = errors.New("link emission failed")

	// ErrSchemaCompilationFailed indicates protoc rejected the schema files.
	ErrSchemaCompilationFailed = errors.New("schema compilation failed")
)

// Error wraps one of the sentinel errors with the operation that failed and
// the subject an operator needs to fix it (URL, path, triple, distribution).
type Error struct {
	Op      string
	Subject string
	Err     error
}

func (e *Error) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Subject, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap builds an *Error whose chain contains kind and, when present, cause.
func Wrap(kind error, op, subject string, cause error) *Error {
	err := kind
	if cause != nil {
		err = fmt.Errorf("%w: %w", kind, cause)
	}
	return &Error{Op: op, Subject: subject, Err: err}
}

// Errorf is Wrap with a formatted detail message in place of a cause.
func Errorf(kind error, op, subject, format string, args ...interface{}) *Error {
	return &Error{Op: op, Subject: subject, Err: fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))}
}

var exitCodes = []struct {
	kind error
	code int
}{
	{ErrUnsupportedPlatform, 20},
	{ErrInvalidConfiguration, 21},
	{ErrDownloadFailed, 22},
	{ErrExtractionFailed, 23},
	{ErrCompilationFailed, 24},
	{ErrLinkEmissionFailed, 25},
	{ErrSchemaCompilationFailed, 26},
}

// ExitCode maps err to the process exit status used by the phase binaries.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	for _, c := range exitCodes {
		if errors.Is(err, c.kind) {
			return c.code
		}
	}
	return 1
}
