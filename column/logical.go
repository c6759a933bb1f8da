package column

import (
	"fmt"
	"strings"
)

type LogicalColumn struct {
	base
}

func newLogical(spec Spec, opts Options) (Column, error) {
	return &LogicalColumn{base: newBase(spec, 1, 0)}, nil
}

// Pack writes T or F for booleans and ? for anything else.
func (c *LogicalColumn) Pack(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return []byte{'T'}, nil
		}
		return []byte{'F'}, nil
	case *bool:
		if v != nil {
			return c.Pack(*v)
		}
	}
	return []byte{'?'}, nil
}

func (c *LogicalColumn) Unpack(data []byte) (interface{}, error) {
	switch strings.ToUpper(string(data)) {
	case "Y", "T":
		return true, nil
	case "N", "F":
		return false, nil
	}
	return nil, nil
}

func (c *LogicalColumn) String() string {
	return fmt.Sprintf("%s(boolean)", c.name)
}
