package file

type BlockSizer interface {
	BlockSize() uint32
}

type BlockReader interface {
	ReadBlock(key int64) (block []byte, err error)
	ReadBlocks(key int64, n int) (blocks []byte, err error)
}

type BlockWriter interface {
	WriteBlock(key int64, block []byte) error
}

type BlockReadWriter interface {
	BlockReader
	BlockWriter
}

// Blocks are never freed: the allocator only appends.
type BlockAllocator interface {
	AllocateBlocks(n int) (key int64, err error)
}

type Closer interface {
	Close() error
}

// RootController exposes a copy of the header block.
type RootController interface {
	ControlData() (block []byte)
}

type BlockDevice interface {
	BlockSizer
	BlockReadWriter
	BlockAllocator
	Closer
	RootController
}
