package hive

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every lookup failure.
var ErrNotFound = errors.New("hive: component not found")

// ErrLoadTimeout is reported by asset loads still pending after the canvas
// LoadTimeout.
var ErrLoadTimeout = errors.New("hive: asset load timed out")

// ErrCancelled is reported by the future of a cancelled animation.
var ErrCancelled = errors.New("hive: animation cancelled")

// NotFoundError reports a failed GetComponent lookup. When a component with
// the same name exists under a different type, Hint names that type.
type NotFoundError struct {
	Name string
	Type ComponentType
	Hint *ComponentType
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("hive: no %s component named %q", e.Type, e.Name)
	if e.Hint != nil {
		msg += fmt.Sprintf(" (did you mean %s?)", *e.Hint)
	}
	return msg
}

// Is makes errors.Is(err, ErrNotFound) hold for every NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
