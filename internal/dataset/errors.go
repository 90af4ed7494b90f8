package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLoad is matched by errors.Is for any LoadError.
	ErrLoad = errors.New("load dataset")
	// ErrInvalidSelection is matched by errors.Is for any InvalidSelectionError.
	ErrInvalidSelection = errors.New("invalid column selection")
)

// LoadError wraps a failure to read or parse a source file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Path, e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// InvalidSelectionError reports an empty selection or names that are not
// columns of the table.
type InvalidSelectionError struct {
	Unknown   []string
	Available []string
}

func (e *InvalidSelectionError) Error() string {
	if len(e.Unknown) == 0 {
		return "no columns selected; select at least one column"
	}
	return fmt.Sprintf("unknown column(s): %s\nAvailable columns: %s",
		strings.Join(e.Unknown, ", "), strings.Join(e.Available, ", "))
}

func (e *InvalidSelectionError) Is(target error) bool { return target == ErrInvalidSelection }
