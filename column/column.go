/*
Package column implements the fixed width field types of a dBase III table.

Every column knows its place in the record (offset and size) and how to
turn an application value into exactly Size() bytes and back. Values are
plain Go values:

	C  string
	N  int64 (float64 accepted when packing)
	L  bool
	D  time.Time
	M  string (kept in the memo file)
	F  float64

A nil value means "no value" in both directions.
*/
package column

import (
	"fmt"
	"strings"
)

import (
	"github.com/timtadh/xbase/errors"
	"github.com/timtadh/xbase/memo"
)

// Type is the one character type tag stored in the column directory.
type Type byte

const (
	Character Type = 'C'
	Numeric   Type = 'N'
	Logical   Type = 'L'
	Date      Type = 'D'
	Memo      Type = 'M'
	Float     Type = 'F'
)

func (t Type) String() string {
	return string(rune(t))
}

// Spec describes a column as declared by a schema or read from the
// column directory.
type Spec struct {
	Name     string
	Type     Type
	Offset   int
	Size     int
	Decimal  int
	Encoding string
}

// Options are the table wide settings a column is built with.
type Options struct {
	// Encoding is the charset character columns are stored in. Empty
	// means bytes are stored as given.
	Encoding string
	// Memo resolves the store memo columns read and write through.
	Memo memo.Source
}

type Column interface {
	Name() string
	Type() Type
	Offset() int
	Size() int
	Decimal() int
	Pack(value interface{}) ([]byte, error)
	Unpack(data []byte) (interface{}, error)
	String() string
}

type constructor func(spec Spec, opts Options) (Column, error)

var registry = map[Type]constructor{
	Character: newCharacter,
	Numeric:   newNumeric,
	Logical:   newLogical,
	Date:      newDate,
	Memo:      newMemo,
	Float:     newFloat,
}

// Known reports whether t has a registered column type.
func Known(t Type) bool {
	_, has := registry[t]
	return has
}

// New builds the column for spec. Sizes fixed by the type override the
// spec; an unregistered type tag is an UnknownColumnTypeError.
func New(spec Spec, opts Options) (Column, error) {
	mk, has := registry[spec.Type]
	if !has {
		return nil, errors.UnknownColumnType(spec.Name, byte(spec.Type))
	}
	if spec.Decimal < 0 {
		return nil, errors.Errorf("column %s: negative decimal count %d", spec.Name, spec.Decimal)
	}
	return mk(spec, opts)
}

type base struct {
	name    string
	typ     Type
	offset  int
	size    int
	decimal int
}

func newBase(spec Spec, size, decimal int) base {
	return base{
		name:    spec.Name,
		typ:     spec.Type,
		offset:  spec.Offset,
		size:    size,
		decimal: decimal,
	}
}

func (b *base) Name() string { return b.name }
func (b *base) Type() Type    { return b.typ }
func (b *base) Offset() int   { return b.offset }
func (b *base) Size() int     { return b.size }
func (b *base) Decimal() int  { return b.decimal }

func (b *base) Pack(value interface{}) ([]byte, error) {
	return nil, errors.NotImplemented(fmt.Sprintf("pack %s", b.name))
}

func (b *base) Unpack(data []byte) (interface{}, error) {
	return nil, errors.NotImplemented(fmt.Sprintf("unpack %s", b.name))
}

func (b *base) String() string {
	return fmt.Sprintf("%s(type=%s, size=%d)", b.name, b.typ, b.size)
}

func (b *base) invalid(value interface{}, format string, args ...interface{}) error {
	return errors.InvalidValue(b.name, value, fmt.Errorf(format, args...))
}

// fit checks s is no wider than the column and pads it with trailing
// spaces.
func (b *base) fit(value interface{}, s string) ([]byte, error) {
	if len(s) > b.size {
		return nil, b.invalid(value, "%q is wider than %d bytes", s, b.size)
	}
	return ljust(s, b.size), nil
}

func spaces(n int) []byte {
	return []byte(strings.Repeat(" ", n))
}

// ljust pads s with spaces to n bytes, cutting it when longer.
func ljust(s string, n int) []byte {
	buf := spaces(n)
	copy(buf, s)
	return buf
}

func blank(data []byte) bool {
	return strings.TrimSpace(string(data)) == ""
}
