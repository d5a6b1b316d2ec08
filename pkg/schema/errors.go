package schema

import "fmt"

// ParseError reports corrupt or malformed serialized input. It is the only
// failure path out of decoding: malformed documents are reported, never
// allowed to crash the host process.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse flow: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse flow: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
