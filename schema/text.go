package schema

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/xbase/column"
	"github.com/timtadh/xbase/errors"
	"github.com/timtadh/xbase/table"
)

// Parse reads the line format described in the package comment.
func Parse(r io.Reader) (*Schema, error) {
	s := New()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		} else if len(fields) < 2 {
			return nil, errors.Errorf("line %d: expected NAME kind, got %q", line, text)
		}
		var opts Options
		for _, opt := range fields[2:] {
			if err := parseOption(&opts, opt); err != nil {
				return nil, errors.Errorf("line %d: %v", line, err)
			}
		}
		if err := s.Column(fields[0], fields[1], opts); err != nil {
			return nil, errors.Errorf("line %d: %v", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if s.Len() == 0 {
		return nil, errors.Errorf("the schema declares no columns")
	}
	return s, nil
}

func parseOption(opts *Options, opt string) error {
	k, v, ok := strings.Cut(opt, "=")
	if !ok {
		return fmt.Errorf("option %q is not key=value", opt)
	}
	switch strings.ToLower(k) {
	case "size", "decimal":
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("option %s: %v", k, err)
		}
		if strings.ToLower(k) == "size" {
			opts.Size = n
		} else {
			opts.Decimal = n
			opts.decimalSet = true
		}
	case "encoding":
		opts.Encoding = v
	default:
		return fmt.Errorf("unknown option %q", k)
	}
	return nil
}

// Line renders one column in the format Parse reads.
func Line(c column.Column) string {
	var kind string
	opts := make([]string, 0, 2)
	switch c.Type() {
	case column.Character:
		kind = "string"
		opts = append(opts, fmt.Sprintf("size=%d", c.Size()))
	case column.Numeric:
		if c.Decimal() == 0 {
			kind = "integer"
			opts = append(opts, fmt.Sprintf("size=%d", c.Size()))
		} else {
			kind = "float"
			opts = append(opts, fmt.Sprintf("size=%d", c.Size()), fmt.Sprintf("decimal=%d", c.Decimal()))
		}
	case column.Logical:
		kind = "boolean"
	case column.Date:
		kind = "date"
	case column.Memo:
		kind = "memo"
	default:
		kind = c.Type().String()
		opts = append(opts, fmt.Sprintf("decimal=%d", c.Decimal()))
	}
	return strings.Join(append([]string{c.Name(), kind}, opts...), " ")
}

// Dump writes the columns of t in the format Parse reads.
func Dump(w io.Writer, t *table.Table) error {
	if _, err := fmt.Fprintf(w, "# %s\n", t.Name()); err != nil {
		return err
	}
	for _, c := range t.Columns() {
		if _, err := fmt.Fprintln(w, Line(c)); err != nil {
			return err
		}
	}
	return nil
}
