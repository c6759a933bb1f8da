package column

import (
	"fmt"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/xbase/errors"
	"github.com/timtadh/xbase/memo"
)

const MEMO_SIZE = 10

// MemoColumn keeps the text in the table's memo file and the index of
// its first block, left justified, in the record.
type MemoColumn struct {
	base
	source memo.Source
}

func newMemo(spec Spec, opts Options) (Column, error) {
	return &MemoColumn{base: newBase(spec, MEMO_SIZE, 0), source: opts.Memo}, nil
}

func (c *MemoColumn) store() memo.Store {
	if c.source == nil {
		return memo.Unavailable{}
	}
	if s := c.source.Memo(); s != nil {
		return s
	}
	return memo.Unavailable{}
}

// Pack writes value to the memo file. A nil value is stored as blanks
// and writes nothing.
func (c *MemoColumn) Pack(value interface{}) ([]byte, error) {
	if value == nil {
		return spaces(c.size), nil
	}
	var text string
	switch v := value.(type) {
	case string:
		text = v
	case []byte:
		text = string(v)
	case fmt.Stringer:
		text = v.String()
	default:
		return nil, c.invalid(value, "%T is not text", value)
	}
	block, err := c.store().Write(text)
	if err != nil {
		return nil, errors.InvalidValue(c.name, value, err)
	}
	if block == memo.NoBlock {
		return spaces(c.size), nil
	}
	return c.fit(value, fmt.Sprintf("%-10d", block))
}

func (c *MemoColumn) Unpack(data []byte) (interface{}, error) {
	if blank(data) {
		return nil, nil
	}
	block, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, errors.Errorf("column %s: bad memo block %q", c.name, data)
	}
	return c.store().Read(block)
}

func (c *MemoColumn) String() string {
	return fmt.Sprintf("%s(memo)", c.name)
}
