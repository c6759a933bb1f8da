package column

import (
	"fmt"
	"strings"
)

import (
	"github.com/timtadh/xbase/charset"
	"github.com/timtadh/xbase/consts"
	"github.com/timtadh/xbase/errors"
)

const DEFAULT_CHARACTER_SIZE = 254

type CharacterColumn struct {
	base
	packer   *charset.Encoder
	unpacker *charset.Encoder
}

// Sizes past 255 keep their high byte in the decimal slot of the column
// directory, so a size of s with d decimals is d*256 + s bytes wide. A 256
// byte column is stored as size 0, decimal 1.
func newCharacter(spec Spec, opts Options) (Column, error) {
	size := DEFAULT_CHARACTER_SIZE
	if spec.Size > 0 || spec.Decimal > 0 {
		size = spec.Decimal*256 + spec.Size
	}
	if size >= consts.MAXRECORDSIZE {
		return nil, errors.Errorf("column %s: character size %d is too large", spec.Name, size)
	}
	c := &CharacterColumn{base: newBase(spec, size, size>>8)}
	enc := spec.Encoding
	if enc == "" {
		enc = opts.Encoding
	}
	if enc != "" {
		var err error
		if c.unpacker, err = charset.New(enc, "utf-8"); err != nil {
			return nil, err
		}
		if c.packer, err = charset.New("utf-8", enc); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *CharacterColumn) Pack(value interface{}) ([]byte, error) {
	s := stringify(value)
	if c.packer != nil {
		var err error
		if s, err = c.packer.En(s); err != nil {
			return nil, errors.InvalidValue(c.name, value, err)
		}
	}
	return ljust(s, c.size), nil
}

func (c *CharacterColumn) Unpack(data []byte) (interface{}, error) {
	s := strings.TrimRight(string(data), " \x00")
	if c.unpacker != nil {
		return c.unpacker.En(s)
	}
	return s, nil
}

func (c *CharacterColumn) String() string {
	return fmt.Sprintf("%s(string %d)", c.name, c.size)
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
