package history

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every error returned for malformed export data.
var ErrParse = errors.New("invalid listening history")

// ParseError describes why an export could not be read. Index is the
// offending record, or -1 when the document as a whole is malformed.
type ParseError struct {
	Index  int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Index >= 0 {
		msg = fmt.Sprintf("record %d: %s", e.Index, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrParse, msg)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}
