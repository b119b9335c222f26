package session

import "errors"

// Store operations never panic on misuse; these sentinels signal recoverable
// conditions the surrounding surface translates into user-facing responses.
var (
	// ErrTabNotFound is returned when a tab ID is not in the working set.
	ErrTabNotFound = errors.New("session: tab not found")
	// ErrLastTab is returned when closing would leave the working set empty.
	ErrLastTab = errors.New("session: cannot close the last remaining tab")
	// ErrItemNotFound is returned when a line item ID is not on the tab.
	ErrItemNotFound = errors.New("session: line item not found")
)
