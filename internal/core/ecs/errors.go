package ecs

import (
	"errors"
	"fmt"
)

// ErrDependentComponentNotFound is returned by LoadDependentComponents when a
// component's hard requirement on a sibling is not attached to the owner.
// It is a configuration error: callers abort creation instead of retrying.
var ErrDependentComponentNotFound = errors.New("dependent component not found")

// Require looks up a sibling component of type T on owner. The requester
// name only feeds the error message.
func Require[T any](owner *ComponentOwner, requester string) (T, error) {
	c, ok := GetComponent[T](owner)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s on %q: %T: %w", requester, owner.Name(), zero, ErrDependentComponentNotFound)
	}
	return c, nil
}
