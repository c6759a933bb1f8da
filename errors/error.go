package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
)

// Error carries the stack at the point the error was made.
type Error struct {
	Err   error
	Stack []byte
}

func stack() []byte {
	buf := make([]byte, 50000)
	n := runtime.Stack(buf, false)
	trace := make([]byte, n)
	copy(trace, buf)
	return trace
}

func Errorf(format string, args ...interface{}) error {
	return &Error{
		Err:   fmt.Errorf(format, args...),
		Stack: stack(),
	}
}

// Wrap attaches a stack to err. A nil err stays nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return &Error{
		Err:   err,
		Stack: stack(),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s\n%s", e.Err, string(e.Stack))
}

func (e *Error) String() string {
	return e.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
