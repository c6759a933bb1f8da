package file

import (
	"container/list"
)

type lru struct {
	buffer map[int64]*list.Element
	stack  *list.List
	size   int
}

// LRUCacheFile keeps recently read blocks in memory. Writes go straight
// through to the underlying device so nothing is ever dirty; memo blocks
// are written once and only read afterwards.
type LRUCacheFile struct {
	file BlockDevice
	lru  *lru
	hits int
	miss int
}

// NewLRUCacheFile caches up to size bytes worth of blocks.
func NewLRUCacheFile(file BlockDevice, size uint64) *LRUCacheFile {
	cache_size := 0
	if size > 0 {
		cache_size = 1 + int(size/uint64(file.BlockSize()))
	}
	return &LRUCacheFile{
		file: file,
		lru:  newLRU(cache_size),
	}
}

func (self *LRUCacheFile) Close() error {
	self.lru.Clear()
	return self.file.Close()
}

func (self *LRUCacheFile) ControlData() (data []byte) {
	return self.file.ControlData()
}

func (self *LRUCacheFile) BlockSize() uint32 { return self.file.BlockSize() }

func (self *LRUCacheFile) AllocateBlocks(n int) (key int64, err error) {
	return self.file.AllocateBlocks(n)
}

// Stats reports cache hits and misses since the file was wrapped.
func (self *LRUCacheFile) Stats() (hits, misses int) {
	return self.hits, self.miss
}

func (self *LRUCacheFile) WriteBlock(key int64, block []byte) (err error) {
	if err := self.file.WriteBlock(key, block); err != nil {
		return err
	}
	blk_size := int64(self.BlockSize())
	for i := int64(0); i*blk_size < int64(len(block)); i++ {
		end := (i + 1) * blk_size
		if end > int64(len(block)) {
			self.lru.Remove(key + i*blk_size)
			continue
		}
		cp := make([]byte, blk_size)
		copy(cp, block[i*blk_size:end])
		self.lru.Update(key+i*blk_size, cp)
	}
	return nil
}

func (self *LRUCacheFile) ReadBlock(key int64) (block []byte, err error) {
	if block, has := self.lru.Read(key, self.BlockSize()); has {
		self.hits++
		return copyOf(block), nil
	}
	self.miss++
	block, err = self.file.ReadBlock(key)
	if err != nil {
		return nil, err
	}
	self.lru.Update(key, copyOf(block))
	return block, nil
}

func (self *LRUCacheFile) ReadBlocks(key int64, n int) (blocks []byte, err error) {
	blk_size := int64(self.BlockSize())
	blocks = make([]byte, int64(n)*blk_size)
	for i := int64(0); i < int64(n); i++ {
		blk, err := self.ReadBlock(key + i*blk_size)
		if err != nil {
			return nil, err
		}
		copy(blocks[i*blk_size:(i+1)*blk_size], blk)
	}
	return blocks, nil
}

func copyOf(bytes []byte) []byte {
	cp := make([]byte, len(bytes))
	copy(cp, bytes)
	return cp
}

// -------------------------------------------------------------------------------------

type lru_item struct {
	bytes []byte
	p     int64
}

func newLRU(size int) *lru {
	self := new(lru)
	self.buffer = make(map[int64]*list.Element)
	self.stack = list.New()
	self.size = size
	return self
}

func (self *lru) Size() int { return self.size }

func (self *lru) Len() int { return self.stack.Len() }

func (self *lru) Has(p int64) bool {
	_, has := self.buffer[p]
	return has
}

func (self *lru) Clear() {
	self.buffer = make(map[int64]*list.Element)
	self.stack.Init()
}

func (self *lru) Remove(p int64) {
	if e, has := self.buffer[p]; has {
		delete(self.buffer, p)
		self.stack.Remove(e)
	}
}

func (self *lru) Update(p int64, block []byte) {
	if self.size <= 0 {
		return
	}
	if e, has := self.buffer[p]; has {
		e.Value.(*lru_item).bytes = block
		self.stack.MoveToFront(e)
		return
	}
	for self.stack.Len() >= self.size {
		e := self.stack.Back()
		i := e.Value.(*lru_item)
		delete(self.buffer, i.p)
		self.stack.Remove(e)
	}
	self.buffer[p] = self.stack.PushFront(&lru_item{p: p, bytes: block})
}

func (self *lru) Read(p int64, length uint32) ([]byte, bool) {
	if e, has := self.buffer[p]; has {
		if i, ok := e.Value.(*lru_item); ok {
			if len(i.bytes) != int(length) {
				return nil, false
			}
			self.stack.MoveToFront(e)
			// hit
			return i.bytes, true
		}
	}
	// miss
	return nil, false
}

var _ BlockDevice = (*LRUCacheFile)(nil)
var _ BlockDevice = (*BlockFile)(nil)
