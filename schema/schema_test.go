package schema

import "testing"

import (
	"bytes"
	"path/filepath"
	"runtime/debug"
	"strings"
)

import (
	"github.com/timtadh/xbase/column"
	"github.com/timtadh/xbase/errors"
	"github.com/timtadh/xbase/table"
)

type T testing.T

func (t *T) assert(msg string, oks ...bool) {
	for _, ok := range oks {
		if !ok {
			t.Log("\n" + string(debug.Stack()))
			t.Error(msg)
			t.Fatal("assert failed")
		}
	}
}

func (t *T) assert_nil(errors ...error) {
	for _, err := range errors {
		if err != nil {
			t.Log("\n" + string(debug.Stack()))
			t.Fatal(err)
		}
	}
}

const people = `
# people
NAME   string  size=10 encoding=cp1251
AGE    integer size=3
RATE   float   size=12 decimal=2
SCORE  float
BORN   date
ACTIVE boolean # optional
NOTES  memo
RAW    F decimal=4
WHOLE  F decimal=0
PLAIN  F
`

func TestKinds(x *testing.T) {
	t := (*T)(x)
	for kind, want := range map[string]column.Type{
		"string": column.Character, "integer": column.Numeric, "float": column.Numeric,
		"boolean": column.Logical, "date": column.Date, "memo": column.Memo,
		"C": column.Character, "f": column.Float, "Integer": column.Numeric,
	} {
		typ, ok := Kind(kind)
		t.assert(kind, ok, typ == want)
	}
	_, ok := Kind("blob")
	t.assert("unknown", !ok)
	_, ok = Kind("Q")
	t.assert("unknown letter", !ok)
}

func TestBuilder(x *testing.T) {
	t := (*T)(x)
	s := New()
	t.assert_nil(s.Column("name", "string", Options{Size: 10}))
	t.assert_nil(s.Column("score", "float", Options{}))
	specs := s.Specs()
	t.assert("two", len(specs) == 2, s.Len() == 2)
	t.assert("upper cased", specs[0].Name == "NAME", specs[0].Size == 10)
	t.assert("float decimal", specs[1].Type == column.Numeric, specs[1].Decimal == FLOAT_DECIMAL)
	t.assert_nil(s.Column("raw", "F", Options{}))
	t.assert("F decimal", s.Specs()[2].Decimal == column.FLOAT_DECIMAL)

	t.assert("duplicate", s.Column("Name", "date", Options{}) != nil)
	t.assert("no name", s.Column(" ", "date", Options{}) != nil)
	var uerr *errors.UnknownColumnTypeError
	t.assert("unknown kind", errors.As(s.Column("x", "blob", Options{}), &uerr), uerr.Type == 'b')
}

func TestParse(x *testing.T) {
	t := (*T)(x)
	s, err := Parse(strings.NewReader(people))
	t.assert_nil(err)
	specs := s.Specs()
	t.assert("ten columns", len(specs) == 10)
	t.assert("encoding", specs[0].Encoding == "cp1251", specs[0].Size == 10)
	t.assert("float", specs[2].Decimal == 2, specs[2].Size == 12, specs[3].Decimal == 6)
	t.assert("comment stripped", specs[5].Name == "ACTIVE", specs[5].Type == column.Logical)
	t.assert("raw letter", specs[7].Type == column.Float, specs[7].Decimal == 4)
	t.assert("explicit decimal 0", specs[8].Decimal == 0)
	t.assert("F default", specs[9].Decimal == column.FLOAT_DECIMAL)
}

func TestParseErrors(x *testing.T) {
	t := (*T)(x)
	for _, text := range []string{
		"",
		"# nothing",
		"NAME",
		"NAME string size=ten",
		"NAME string width=3",
		"NAME string 10",
		"NAME blob",
		"NAME string\nname date",
	} {
		_, err := Parse(strings.NewReader(text))
		t.assert(text, err != nil)
	}
}

func TestDumpRoundTrip(x *testing.T) {
	t := (*T)(x)
	s, err := Parse(strings.NewReader(people))
	t.assert_nil(err)
	p := filepath.Join(x.TempDir(), "people.dbf")
	t.assert_nil(table.Create(p, s.Specs(), table.CreateOptions{}))
	tbl, err := table.Open(p, table.OpenOptions{})
	t.assert_nil(err)
	defer tbl.Close()

	var buf bytes.Buffer
	t.assert_nil(Dump(&buf, tbl))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	t.assert("title", lines[0] == "# people")
	t.assert("string", lines[1] == "NAME string size=10")
	t.assert("integer", lines[2] == "AGE integer size=3")
	t.assert("float", lines[3] == "RATE float size=12 decimal=2")
	t.assert("boolean", lines[6] == "ACTIVE boolean")
	t.assert("raw", lines[8] == "RAW F decimal=4")
	t.assert("whole", lines[9] == "WHOLE F decimal=0")
	t.assert("plain", lines[10] == "PLAIN F decimal=2")

	again, err := Parse(&buf)
	t.assert_nil(err)
	for i, spec := range again.Specs() {
		c := tbl.Columns()[i]
		t.assert(spec.Name, spec.Name == c.Name(), spec.Type == c.Type(), spec.Decimal == c.Decimal())
	}
}
