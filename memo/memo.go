package memo

import (
	"bytes"
	"encoding/binary"
	"io"
)

import (
	"github.com/timtadh/xbase/consts"
	"github.com/timtadh/xbase/errors"
	"github.com/timtadh/xbase/file"
)

// NoBlock is returned by stores that do not keep memo text.
const NoBlock = -1

// Store keeps variable length text addressed by block index.
type Store interface {
	Read(block int) (string, error)
	Write(text string) (block int, err error)
	Close() error
}

// Source hands out the memo store a memo column writes through. A table
// implements it so columns can be built before the store is bound.
type Source interface {
	Memo() Store
}

// DBase3 is the dBase III .dbt layout: a 512 byte header holding the next
// free block counter and 512 byte blocks of 0x1A 0x1A terminated text.
type DBase3 struct {
	bf   file.BlockDevice
	path string
}

// Create a new, empty memo file at path, replacing any existing file.
func Create(path string) (*DBase3, error) {
	bf := file.NewBlockFile(path)
	if err := bf.Create(); err != nil {
		bf.Close()
		return nil, err
	}
	return &DBase3{bf: bf, path: path}, nil
}

// Open an existing memo file. When cacheBlocks > 0 reads go through an LRU
// cache of that many blocks.
func Open(path string, cacheBlocks int) (*DBase3, error) {
	bf := file.NewBlockFile(path)
	if err := bf.Open(); err != nil {
		bf.Close()
		return nil, err
	}
	m := &DBase3{bf: bf, path: path}
	if cacheBlocks > 0 {
		m.bf = file.NewLRUCacheFile(bf, uint64(cacheBlocks)*uint64(bf.BlockSize()))
	}
	return m, nil
}

func (m *DBase3) Path() string {
	return m.path
}

// NextBlock is the block the next Write will start at.
func (m *DBase3) NextBlock() int {
	return int(binary.LittleEndian.Uint32(m.bf.ControlData()[0:4]))
}

func (m *DBase3) Version() byte {
	return m.bf.ControlData()[consts.MEMO_VERSIONOFFSET]
}

func (m *DBase3) Read(block int) (string, error) {
	if block < 0 {
		return "", errors.Errorf("memo: negative block index %d", block)
	}
	var result []byte
	blk_size := int64(m.bf.BlockSize())
	for pos := file.Position(int64(block)); ; pos += blk_size {
		data, err := m.bf.ReadBlock(pos)
		if err == io.EOF {
			return "", errors.Errorf("memo: block %d is not terminated", block)
		} else if err != nil {
			return "", err
		}
		// the terminator may straddle two blocks
		from := len(result) - 1
		if from < 0 {
			from = 0
		}
		result = append(result, data...)
		if i := bytes.Index(result[from:], consts.MEMO_TERMINATOR); i >= 0 {
			return string(result[:from+i]), nil
		}
	}
}

// Write appends text plus the terminator, padded to whole blocks, and
// returns the index of its first block.
func (m *DBase3) Write(text string) (int, error) {
	blk_size := int(m.bf.BlockSize())
	n := (len(text) + len(consts.MEMO_TERMINATOR) + blk_size - 1) / blk_size
	data := make([]byte, n*blk_size)
	copy(data, text)
	copy(data[len(text):], consts.MEMO_TERMINATOR)
	pos, err := m.bf.AllocateBlocks(n)
	if err != nil {
		return NoBlock, err
	}
	if err := m.bf.WriteBlock(pos, data); err != nil {
		return NoBlock, err
	}
	return int(file.Block(pos)), nil
}

func (m *DBase3) Close() error {
	return m.bf.Close()
}

// Dummy keeps nothing: reads are empty and writes store no block.
type Dummy struct{}

func (Dummy) Read(block int) (string, error) { return "", nil }

func (Dummy) Write(text string) (int, error) { return NoBlock, nil }

func (Dummy) Close() error { return nil }

// Unavailable fails every access. It is bound to tables opened without a
// memo file.
type Unavailable struct{}

func (Unavailable) Read(block int) (string, error) {
	return "", errors.MemoUnavailable("read")
}

func (Unavailable) Write(text string) (int, error) {
	return NoBlock, errors.MemoUnavailable("write")
}

func (Unavailable) Close() error { return nil }
