package plugin

import (
	"errors"
	"fmt"
)

// ErrHostClosed is returned when loading a script on a closed host.
var ErrHostClosed = errors.New("plugin host closed")

// ScriptError wraps a script load or runtime failure with its source.
type ScriptError struct {
	Path string
	Err  error
}

// Error returns the error message.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("plugin %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
