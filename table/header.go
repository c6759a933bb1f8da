package table

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"
	"time"
)

import (
	"github.com/timtadh/xbase/column"
	"github.com/timtadh/xbase/consts"
	"github.com/timtadh/xbase/errors"
)

// Header is the fixed 32 byte table header.
type Header struct {
	Version      byte
	Year         uint8
	Month        uint8
	Day          uint8
	Count        uint32
	HeaderLength uint16
	RecordLength uint16
	_            [2]byte
	Transaction  byte
	Encryption   byte
	_            [12]byte
	MDX          byte
	Language     byte
	_            [2]byte
}

// field is one 32 byte column directory entry.
type field struct {
	Name    [consts.FIELDNAMESIZE]byte
	Type    byte
	Offset  uint32
	Size    uint8
	Decimal uint8
	_       [14]byte
}

func init() {
	if n := binary.Size(Header{}); n != consts.HEADERSIZE {
		panic(errors.Errorf("the Header was an unexpected size %d", n))
	}
	if n := binary.Size(field{}); n != consts.FIELDSIZE {
		panic(errors.Errorf("the field was an unexpected size %d", n))
	}
}

// Years at or past 100 are years since 1900, smaller ones since 2000.
func decodeYear(stored uint8) int {
	if stored >= 100 {
		return 1900 + int(stored)
	}
	return 2000 + int(stored)
}

func (h *Header) LastModified() time.Time {
	return time.Date(decodeYear(h.Year), time.Month(h.Month), int(h.Day), 0, 0, 0, 0, time.UTC)
}

func (h *Header) touch(now time.Time) {
	h.Year = uint8(now.Year() % 100)
	h.Month = uint8(now.Month())
	h.Day = uint8(now.Day())
}

func (h *Header) Bytes() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, h)
	return buf.Bytes()
}

func readHeader(r io.Reader) (*Header, error) {
	h := new(Header)
	if err := binary.Read(r, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	return h, nil
}

func newField(c column.Column) field {
	f := field{
		Type:    byte(c.Type()),
		Offset:  uint32(c.Offset()),
		Size:    uint8(c.Size()),
		Decimal: uint8(c.Decimal()),
	}
	copy(f.Name[:], c.Name())
	return f
}

func (f *field) Bytes() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, f)
	return buf.Bytes()
}

func (f *field) spec() column.Spec {
	name := f.Name[:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return column.Spec{
		Name:    strings.TrimSpace(string(name)),
		Type:    column.Type(f.Type),
		Offset:  int(f.Offset),
		Size:    int(f.Size),
		Decimal: int(f.Decimal),
	}
}

func readField(r io.Reader) (*field, error) {
	f := new(field)
	if err := binary.Read(r, binary.LittleEndian, f); err != nil {
		return nil, err
	}
	return f, nil
}
