package events

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("event not found")
	ErrForbidden           = errors.New("you can only modify your own events")
	ErrPastDate            = errors.New("cannot create events for past dates")
	ErrCommentWindowClosed = errors.New("comments can only be added 3 days before or 3 days after the event")
)

// FieldError reports a missing or malformed input field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
