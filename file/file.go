package file

import (
	"encoding/binary"
	"io"
	"os"
)

import (
	"github.com/timtadh/xbase/consts"
	"github.com/timtadh/xbase/errors"
)

const BLOCKSIZE = consts.MEMO_BLOCKSIZE

// The control block is the header of the side file. Only the next free
// block counter and the version byte are interpreted, the rest is kept as
// read.
type ctrlblk struct {
	back []byte
}

func load_ctrlblk(bytes []byte) (cb *ctrlblk, err error) {
	if len(bytes) != consts.MEMO_HEADERSIZE {
		return nil, errors.Errorf("Bad control block size %d != %d", len(bytes), consts.MEMO_HEADERSIZE)
	}
	return &ctrlblk{back: bytes}, nil
}

func new_ctrlblk(version byte) (cb *ctrlblk) {
	cb = &ctrlblk{back: make([]byte, consts.MEMO_HEADERSIZE)}
	cb.setNextFree(0)
	cb.back[consts.MEMO_VERSIONOFFSET] = version
	return cb
}

func (cb *ctrlblk) nextFree() uint32 {
	return binary.LittleEndian.Uint32(cb.back[0:4])
}

func (cb *ctrlblk) setNextFree(n uint32) {
	binary.LittleEndian.PutUint32(cb.back[0:4], n)
}

func (cb *ctrlblk) version() byte {
	return cb.back[consts.MEMO_VERSIONOFFSET]
}

// BlockFile is a file made of a fixed size header followed by fixed size
// blocks. Keys are byte positions in the file.
type BlockFile struct {
	path   string
	opened bool
	file   *os.File
	ctrl   *ctrlblk
}

func NewBlockFile(path string) *BlockFile {
	return &BlockFile{
		path: path,
		ctrl: new_ctrlblk(consts.MEMO_VERSION),
	}
}

// Open an existing block file, creating and initializing it when it is
// missing or empty.
func (self *BlockFile) Open() error {
	if err := self.open(0); err != nil {
		return err
	}
	if size, err := self.Size(); err != nil {
		return err
	} else if size == 0 {
		return self.write_ctrlblk()
	}
	return self.read_ctrlblk()
}

// Create truncates whatever is at the path and writes a fresh header.
func (self *BlockFile) Create() error {
	if err := self.open(os.O_TRUNC); err != nil {
		return err
	}
	self.ctrl = new_ctrlblk(consts.MEMO_VERSION)
	return self.write_ctrlblk()
}

func (self *BlockFile) Close() error {
	if !self.opened {
		return nil
	}
	if err := self.file.Close(); err != nil {
		return err
	} else {
		self.file = nil
		self.opened = false
	}
	return nil
}

func (self *BlockFile) write_ctrlblk() error {
	return self.WriteBlock(0, self.ctrl.back)
}

func (self *BlockFile) read_ctrlblk() error {
	bytes := make([]byte, consts.MEMO_HEADERSIZE)
	if err := self.readAt(0, bytes); err != nil {
		return err
	}
	if cb, err := load_ctrlblk(bytes); err != nil {
		return err
	} else {
		self.ctrl = cb
	}
	return nil
}

func (self *BlockFile) ControlData() (data []byte) {
	data = make([]byte, len(self.ctrl.back))
	copy(data, self.ctrl.back)
	return data
}

func (self *BlockFile) Path() string {
	return self.path
}

func (self *BlockFile) BlockSize() uint32 {
	return BLOCKSIZE
}

// NextFree is the index of the first block that has not been handed out.
func (self *BlockFile) NextFree() uint32 {
	return self.ctrl.nextFree()
}

func (self *BlockFile) Version() byte {
	return self.ctrl.version()
}

func (self *BlockFile) Size() (uint64, error) {
	if !self.opened {
		return 0, errors.Errorf("File is not open")
	}
	fi, err := self.file.Stat()
	if err != nil {
		return 0, err
	}
	return uint64(fi.Size()), nil
}

// Position of block i. Block 0 starts right after the header.
func Position(i int64) int64 {
	return consts.MEMO_HEADERSIZE + i*BLOCKSIZE
}

// Block is the inverse of Position.
func Block(pos int64) int64 {
	return (pos - consts.MEMO_HEADERSIZE) / BLOCKSIZE
}

// AllocateBlocks hands out n consecutive blocks starting at the next free
// counter and persists the advanced counter.
func (self *BlockFile) AllocateBlocks(n int) (pos int64, err error) {
	if n <= 0 {
		return 0, errors.Errorf("Must allocate at least one block, got %d", n)
	}
	start := self.ctrl.nextFree()
	self.ctrl.setNextFree(start + uint32(n))
	if err := self.write_ctrlblk(); err != nil {
		self.ctrl.setNextFree(start)
		return 0, err
	}
	return Position(int64(start)), nil
}

func (self *BlockFile) WriteBlock(p int64, block []byte) error {
	if !self.opened {
		return errors.Errorf("File is not open")
	}
	if _, err := self.file.Seek(p, io.SeekStart); err != nil {
		return err
	}
	n, err := self.file.Write(block)
	if err == nil && n != len(block) {
		return errors.Errorf("could not write the full block")
	}
	return err
}

func (self *BlockFile) readAt(p int64, block []byte) error {
	if !self.opened {
		return errors.Errorf("File is not open")
	}
	if _, err := self.file.Seek(p, io.SeekStart); err != nil {
		return err
	}
	_, err := io.ReadFull(self.file, block)
	return err
}

// ReadInto fills block from position p. A short read of the last block in
// the file is zero filled; reading wholly past the end returns io.EOF.
func (self *BlockFile) ReadInto(p int64, block []byte) error {
	if len(block)%BLOCKSIZE != 0 {
		return errors.Errorf("block is not a multiple of the block size")
	}
	err := self.readAt(p, block)
	if err == io.ErrUnexpectedEOF {
		return nil
	}
	return err
}

func (self *BlockFile) ReadBlock(p int64) ([]byte, error) {
	block := make([]byte, BLOCKSIZE)
	if err := self.ReadInto(p, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (self *BlockFile) ReadBlocks(p int64, n int) ([]byte, error) {
	block := make([]byte, BLOCKSIZE*n)
	if err := self.ReadInto(p, block); err != nil {
		return nil, err
	}
	return block, nil
}
