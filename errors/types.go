package errors

import (
	"fmt"
)

// UnknownColumnTypeError is returned when a column directory entry or a
// schema declaration names a type tag with no registered column type.
type UnknownColumnTypeError struct {
	Column string
	Type   byte
}

func (e *UnknownColumnTypeError) Error() string {
	return fmt.Sprintf("Unknown column type '%c' for column '%s'", e.Type, e.Column)
}

func UnknownColumnType(column string, typ byte) error {
	return Wrap(&UnknownColumnTypeError{Column: column, Type: typ})
}

type UnknownColumnError struct {
	Name string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("Unknown column '%s'", e.Name)
}

func UnknownColumn(name string) error {
	return Wrap(&UnknownColumnError{Name: name})
}

// InvalidValueError reports a value that could not be packed into the
// fixed width slot of its column.
type InvalidValueError struct {
	Column string
	Value  interface{}
	Err    error
}

func (e *InvalidValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Invalid value %#v for column %s: %v", e.Value, e.Column, e.Err)
	}
	return fmt.Sprintf("Invalid value %#v for column %s", e.Value, e.Column)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

func InvalidValue(column string, value interface{}, cause error) error {
	return Wrap(&InvalidValueError{Column: column, Value: value, Err: cause})
}

// IndexOutOfRangeError is a programming error: a row index past the end
// of the table.
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("Index out of bound: %d (count %d)", e.Index, e.Count)
}

func IndexOutOfRange(index, count int) error {
	return Wrap(&IndexOutOfRangeError{Index: index, Count: count})
}

type NotImplementedError struct {
	Op string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s: not implemented", e.Op)
}

func NotImplemented(op string) error {
	return Wrap(&NotImplementedError{Op: op})
}

// MemoUnavailableError is returned when a memo column is read or written
// on a table opened without a memo store.
type MemoUnavailableError struct {
	Op string
}

func (e *MemoUnavailableError) Error() string {
	return fmt.Sprintf("memo %s: table was opened without a memo file", e.Op)
}

func MemoUnavailable(op string) error {
	return Wrap(&MemoUnavailableError{Op: op})
}
