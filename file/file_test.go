package file

import "testing"

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
)

func path(t *testing.T) string {
	return filepath.Join(t.TempDir(), "__x.dbt")
}

func fill(b byte) []byte {
	blk := make([]byte, BLOCKSIZE)
	for i := range blk {
		blk[i] = b
	}
	return blk
}

func TestOpenInitializesHeader(t *testing.T) {
	f := NewBlockFile(path(t))
	if err := f.Open(); err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if size, err := f.Size(); err != nil {
		t.Fatal(err)
	} else if size != BLOCKSIZE {
		t.Fatalf("Expected size == %d got %d", BLOCKSIZE, size)
	}
	if f.NextFree() != 0 {
		t.Fatalf("Expected next free == 0 got %d", f.NextFree())
	}
	if f.Version() != 0x03 {
		t.Fatalf("Expected version 3 got %d", f.Version())
	}
}

func TestAllocateBlocks(t *testing.T) {
	f := NewBlockFile(path(t))
	if err := f.Open(); err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if p, err := f.AllocateBlocks(1); err != nil {
		t.Fatal(err)
	} else if p != BLOCKSIZE {
		t.Fatalf("Expected p == BLOCKSIZE got %d", p)
	}
	if p, err := f.AllocateBlocks(3); err != nil {
		t.Fatal(err)
	} else if p != 2*BLOCKSIZE {
		t.Fatalf("Expected p == 2*BLOCKSIZE got %d", p)
	}
	if f.NextFree() != 4 {
		t.Fatalf("Expected next free == 4 got %d", f.NextFree())
	}
	if _, err := f.AllocateBlocks(0); err == nil {
		t.Fatal("Expected an error allocating zero blocks")
	}
}

func TestCounterPersists(t *testing.T) {
	p := path(t)
	f := NewBlockFile(p)
	if err := f.Open(); err != nil {
		t.Fatal(err)
	}
	if _, err := f.AllocateBlocks(5); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if n := binary.LittleEndian.Uint32(raw[0:4]); n != 5 {
		t.Fatalf("Expected on disk counter 5 got %d", n)
	}
	g := NewBlockFile(p)
	if err := g.Open(); err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	if g.NextFree() != 5 {
		t.Fatalf("Expected next free == 5 got %d", g.NextFree())
	}
}

func TestCreateTruncates(t *testing.T) {
	p := path(t)
	if err := os.WriteFile(p, bytes.Repeat([]byte{1}, 3*BLOCKSIZE), 0644); err != nil {
		t.Fatal(err)
	}
	f := NewBlockFile(p)
	if err := f.Create(); err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if size, err := f.Size(); err != nil {
		t.Fatal(err)
	} else if size != BLOCKSIZE {
		t.Fatalf("Expected size == %d got %d", BLOCKSIZE, size)
	}
	if f.NextFree() != 0 {
		t.Fatalf("Expected next free == 0 got %d", f.NextFree())
	}
}

func TestWriteRead(t *testing.T) {
	p := path(t)
	f := NewBlockFile(p)
	if err := f.Open(); err != nil {
		t.Fatal(err)
	}
	a, err := f.AllocateBlocks(2)
	if err != nil {
		t.Fatal(err)
	}
	blks := append(fill(0xf), fill(0xe)...)
	if err := f.WriteBlock(a, blks); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Open(); err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if rblk, err := f.ReadBlock(a + BLOCKSIZE); err != nil {
		t.Fatal(err)
	} else if !bytes.Equal(rblk, fill(0xe)) {
		t.Fatalf("Expected second block to be 0xe")
	}
	if rblks, err := f.ReadBlocks(a, 2); err != nil {
		t.Fatal(err)
	} else if !bytes.Equal(rblks, blks) {
		t.Fatalf("Expected both blocks back")
	}
}

func TestShortTailIsZeroFilled(t *testing.T) {
	p := path(t)
	f := NewBlockFile(p)
	if err := f.Open(); err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := f.WriteBlock(Position(0), []byte("abc")); err != nil {
		t.Fatal(err)
	}
	blk, err := f.ReadBlock(Position(0))
	if err != nil {
		t.Fatal(err)
	}
	if string(blk[:3]) != "abc" || blk[3] != 0 || len(blk) != BLOCKSIZE {
		t.Fatalf("Unexpected tail block %v", blk[:8])
	}
	if _, err := f.ReadBlock(Position(4)); err == nil {
		t.Fatal("Expected an error reading past the end")
	}
}

func TestPosition(t *testing.T) {
	for i := int64(0); i < 10; i++ {
		if Block(Position(i)) != i {
			t.Fatalf("Expected Block(Position(%d)) == %d", i, i)
		}
	}
	if Position(0) != BLOCKSIZE {
		t.Fatalf("Expected block 0 right after the header")
	}
}

func TestLRUCacheFile(t *testing.T) {
	f := NewBlockFile(path(t))
	if err := f.Open(); err != nil {
		t.Fatal(err)
	}
	c := NewLRUCacheFile(f, BLOCKSIZE)
	defer c.Close()
	a, err := c.AllocateBlocks(3)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.WriteBlock(a, append(append(fill(1), fill(2)...), fill(3)...)); err != nil {
		t.Fatal(err)
	}
	if c.lru.Len() != c.lru.Size() {
		t.Fatalf("Expected the cache to be full, %d of %d", c.lru.Len(), c.lru.Size())
	}
	if blk, err := c.ReadBlock(a + 2*BLOCKSIZE); err != nil {
		t.Fatal(err)
	} else if !bytes.Equal(blk, fill(3)) {
		t.Fatal("wrong block")
	}
	if hits, misses := c.Stats(); hits != 1 || misses != 0 {
		t.Fatalf("Expected one hit got %d hits %d misses", hits, misses)
	}
	if blk, err := c.ReadBlock(a); err != nil {
		t.Fatal(err)
	} else if !bytes.Equal(blk, fill(1)) {
		t.Fatal("wrong block")
	}
	if _, misses := c.Stats(); misses != 1 {
		t.Fatalf("Expected first block to have been evicted")
	}
	blk, _ := c.ReadBlock(a)
	blk[0] = 9
	if again, _ := c.ReadBlock(a); again[0] != 1 {
		t.Fatal("cache handed out its own buffer")
	}
}
