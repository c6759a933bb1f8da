/*
Package schema declares table columns before a table is created.

Columns are added in record order, either in code

	s := schema.New()
	s.Column("name", "string", schema.Options{Size: 10})
	s.Column("age", "integer", schema.Options{Size: 3})

or from a text file with one column per line:

	# people
	NAME string size=10 encoding=cp1251
	AGE  integer size=3
	RATE float size=12 decimal=2

Kinds are string, integer, float, boolean, date, memo or a raw one letter
type tag (C N L D M F).
*/
package schema

import (
	"strings"
)

import (
	"github.com/timtadh/xbase/column"
	"github.com/timtadh/xbase/errors"
)

// FLOAT_DECIMAL is the decimal count of a float column that sets none.
const FLOAT_DECIMAL = 6

// Options of a column. A float or F column with Decimal 0 gets the
// default decimal count unless the text format spelled out decimal=0.
type Options struct {
	Size     int
	Decimal  int
	Encoding string

	decimalSet bool
}

type Schema struct {
	specs []column.Spec
	names map[string]bool
}

func New() *Schema {
	return &Schema{names: make(map[string]bool)}
}

// Kind maps a kind name or a type letter to its column type.
func Kind(kind string) (column.Type, bool) {
	switch strings.ToLower(kind) {
	case "string":
		return column.Character, true
	case "integer", "float":
		return column.Numeric, true
	case "boolean":
		return column.Logical, true
	case "date":
		return column.Date, true
	case "memo":
		return column.Memo, true
	}
	if len(kind) == 1 {
		t := column.Type(strings.ToUpper(kind)[0])
		return t, column.Known(t)
	}
	return 0, false
}

// Column appends a column. Names are upper cased; a name is used once.
func (s *Schema) Column(name, kind string, opts Options) error {
	typ, ok := Kind(kind)
	if !ok {
		var tag byte
		if len(kind) > 0 {
			tag = kind[0]
		}
		return errors.UnknownColumnType(name, tag)
	}
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return errors.Errorf("a column needs a name")
	} else if s.names[name] {
		return errors.Errorf("duplicate column '%s'", name)
	}
	if opts.Size < 0 || opts.Decimal < 0 {
		return errors.Errorf("column %s: negative size or decimal", name)
	}
	if opts.Decimal == 0 && !opts.decimalSet {
		if strings.ToLower(kind) == "float" {
			opts.Decimal = FLOAT_DECIMAL
		} else if typ == column.Float {
			opts.Decimal = column.FLOAT_DECIMAL
		}
	}
	s.names[name] = true
	s.specs = append(s.specs, column.Spec{
		Name:     name,
		Type:     typ,
		Size:     opts.Size,
		Decimal:  opts.Decimal,
		Encoding: opts.Encoding,
	})
	return nil
}

// Specs returns the declared columns in order.
func (s *Schema) Specs() []column.Spec {
	specs := make([]column.Spec, len(s.specs))
	copy(specs, s.specs)
	return specs
}

func (s *Schema) Len() int {
	return len(s.specs)
}
