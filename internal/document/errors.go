package document

import "errors"

// Validation errors.
var (
	// ErrMissingKey indicates a block with an empty key after load.
	ErrMissingKey = errors.New("block key missing")

	// ErrDuplicateKey indicates two blocks sharing a key.
	ErrDuplicateKey = errors.New("duplicate block key")

	// ErrNegativeDepth indicates a block with a negative depth.
	ErrNegativeDepth = errors.New("negative block depth")

	// ErrWatcherClosed indicates an operation on a closed watcher.
	ErrWatcherClosed = errors.New("document watcher closed")
)

// ParseError wraps a document parse failure with context.
type ParseError struct {
	Message string
	Err     error
}

// Error returns the error message.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return "parse document: " + e.Message + ": " + e.Err.Error()
	}
	return "parse document: " + e.Message
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
