package column

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

import (
	"github.com/timtadh/xbase/errors"
)

const DATE_FORMAT = "20060102"

type DateColumn struct {
	base
}

func newDate(spec Spec, opts Options) (Column, error) {
	return &DateColumn{base: newBase(spec, 8, 0)}, nil
}

// Pack writes YYYYMMDD. nil and the zero time are written as blanks.
func (c *DateColumn) Pack(value interface{}) ([]byte, error) {
	var t time.Time
	switch v := value.(type) {
	case nil:
		return spaces(c.size), nil
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return spaces(c.size), nil
		}
		t = *v
	default:
		return nil, c.invalid(value, "%T is not a time.Time", value)
	}
	if t.IsZero() {
		return spaces(c.size), nil
	}
	if t.Year() < 0 || t.Year() > 9999 {
		return nil, c.invalid(value, "year %d does not fit in 4 digits", t.Year())
	}
	return []byte(t.Format(DATE_FORMAT)), nil
}

func (c *DateColumn) Unpack(data []byte) (interface{}, error) {
	if blank(data) {
		return nil, nil
	}
	s := string(data)
	if len(s) < 8 {
		return nil, errors.Errorf("column %s: bad date %q", c.name, s)
	}
	parts := [3]int{}
	for i, r := range [3][2]int{{0, 4}, {4, 6}, {6, 8}} {
		n, err := strconv.Atoi(strings.TrimSpace(s[r[0]:r[1]]))
		if err != nil {
			return nil, errors.Errorf("column %s: bad date %q", c.name, s)
		}
		parts[i] = n
	}
	year, month, day := parts[0], parts[1], parts[2]
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil, errors.Errorf("column %s: bad date %q", c.name, s)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return nil, errors.Errorf("column %s: %q is not a day of the month", c.name, s)
	}
	return t, nil
}

func (c *DateColumn) String() string {
	return fmt.Sprintf("%s(date)", c.name)
}
