package bias

import (
	"errors"
	"fmt"
)

// ErrEmptyColumn is matched by errors.Is for any EmptyColumnError.
var ErrEmptyColumn = errors.New("column has no non-missing values")

// EmptyColumnError reports a column that holds nothing but missing values.
type EmptyColumnError struct {
	Column string
}

func (e *EmptyColumnError) Error() string {
	return fmt.Sprintf("column %q: %v", e.Column, ErrEmptyColumn)
}

func (e *EmptyColumnError) Is(target error) bool { return target == ErrEmptyColumn }
