package model

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceRead marks a source unit that could not be read or parsed.
	ErrSourceRead = errors.New("source unreadable")
	// ErrMalformedDeclaration marks a goog.getMsg site that cannot be resolved statically.
	ErrMalformedDeclaration = errors.New("malformed message declaration")
	// ErrInvalidMessage marks a message whose canonical content is empty.
	ErrInvalidMessage = errors.New("invalid message")
	// ErrStaleBundle is returned by check when the bundle on disk differs from a fresh extraction.
	ErrStaleBundle = errors.New("translation bundle is out of date")
)

// SourceError reports a unit-level failure. It is fatal for that unit only.
type SourceError struct {
	Path Path
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap exposes both the cause and ErrSourceRead to errors.Is.
func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceRead, e.Err}
}

// Diagnostic describes a message that was skipped during extraction.
type Diagnostic struct {
	Path     Path
	Key      string
	Position Position
	Err      error
}

func (d Diagnostic) String() string {
	key := d.Key
	if key == "" {
		key = "<anonymous>"
	}

	return fmt.Sprintf("%s:%s: %s: %v", d.Path, d.Position, key, d.Err)
}
