package db

import (
	"errors"
	"fmt"
)

// ErrPoolExhausted is returned by Pool.Acquire when every slot is claimed.
var ErrPoolExhausted = errors.New("db: pool exhausted")

// BackendError carries an error from the native client. Its message is the
// client's message, unchanged.
type BackendError struct {
	Dialect string
	// Op is the connection operation that failed, e.g. "execute".
	Op  string
	Err error
}

func (e BackendError) Error() string {
	return e.Err.Error()
}

func (e BackendError) Unwrap() error {
	return e.Err
}

// Backend wraps err from the native client. Nil stays nil and errors that
// are already classified pass through.
func Backend(dialect, op string, err error) error {
	if err == nil {
		return nil
	}
	var be BackendError
	if errors.As(err, &be) {
		return err
	}
	return BackendError{Dialect: dialect, Op: op, Err: err}
}

// ProtocolError reports a write or transaction call made in the wrong state.
type ProtocolError struct {
	Op    string
	State string
}

func (e ProtocolError) Error() string {
	return fmt.Sprintf("db: %s not allowed while %s", e.Op, e.State)
}
