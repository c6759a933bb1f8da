package column

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/xbase/errors"
)

const (
	MAX_NUMERIC_SIZE  = 18
	FLOAT_SIZE        = 20
	FLOAT_DECIMAL     = 2
	MAX_FLOAT_DECIMAL = 15
)

// NumberColumn stores numbers as right justified text. With decimals it
// writes fixed point text, but reads back only the integer part.
type NumberColumn struct {
	base
}

func newNumeric(spec Spec, opts Options) (Column, error) {
	size := spec.Size
	if size <= 0 || size > MAX_NUMERIC_SIZE {
		size = MAX_NUMERIC_SIZE
	}
	if spec.Decimal > size {
		return nil, errors.Errorf("column %s: decimal count %d exceeds size %d", spec.Name, spec.Decimal, size)
	}
	return &NumberColumn{base: newBase(spec, size, spec.Decimal)}, nil
}

func (c *NumberColumn) IsFloat() bool {
	return c.decimal != 0
}

func (c *NumberColumn) Pack(value interface{}) ([]byte, error) {
	if value == nil {
		return spaces(c.size), nil
	}
	var s string
	if c.IsFloat() {
		f, ok := toFloat(value)
		if !ok {
			return nil, c.invalid(value, "%T is not a number", value)
		}
		s = fmt.Sprintf("%*.*f", c.size, c.decimal, f)
	} else {
		i, ok := toInt(value)
		if !ok {
			return nil, c.invalid(value, "%T is not a number", value)
		}
		s = fmt.Sprintf("%*d", c.size, i)
	}
	return c.fit(value, s)
}

func (c *NumberColumn) Unpack(data []byte) (interface{}, error) {
	if blank(data) {
		return nil, nil
	}
	i, err := leadingInt(string(data))
	if err != nil {
		return nil, errors.Errorf("column %s: bad number %q: %v", c.name, data, err)
	}
	return i, nil
}

func (c *NumberColumn) String() string {
	if c.IsFloat() {
		return fmt.Sprintf("%s(decimal)", c.name)
	}
	return fmt.Sprintf("%s(integer)", c.name)
}

// FloatColumn is 20 bytes of left justified fixed point text.
type FloatColumn struct {
	base
}

// newFloat keeps the decimal count it is given, 0 included. Counts past
// 15 fall back to 2.
func newFloat(spec Spec, opts Options) (Column, error) {
	decimal := spec.Decimal
	if decimal > MAX_FLOAT_DECIMAL {
		decimal = FLOAT_DECIMAL
	}
	return &FloatColumn{base: newBase(spec, FLOAT_SIZE, decimal)}, nil
}

func (c *FloatColumn) Pack(value interface{}) ([]byte, error) {
	f := 0.0
	if value != nil {
		var ok bool
		if f, ok = toFloat(value); !ok {
			return nil, c.invalid(value, "%T is not a number", value)
		}
	}
	return c.fit(value, fmt.Sprintf("%-*.*f", c.size-c.decimal-1, c.decimal, f))
}

func (c *FloatColumn) Unpack(data []byte) (interface{}, error) {
	s := strings.TrimSpace(string(data))
	if s == "" {
		return 0.0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.Errorf("column %s: bad float %q: %v", c.name, data, err)
	}
	return f, nil
}

func (c *FloatColumn) String() string {
	return fmt.Sprintf("%s(float)", c.name)
}

func toInt(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float32:
		return int64(v), true
	case float64:
		return int64(v), true
	}
	return 0, false
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	if i, ok := toInt(value); ok {
		return float64(i), true
	}
	return 0, false
}

// leadingInt parses the optionally signed run of digits at the start of
// s, after leading blanks. Text without digits is 0.
func leadingInt(s string) (int64, error) {
	s = strings.TrimLeft(s, " ")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, nil
	}
	return strconv.ParseInt(s[:end], 10, 64)
}
