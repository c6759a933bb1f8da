/*
Package table reads and writes dBase III .dbf files.

A table file is a 32 byte header, one 32 byte directory entry per column, a
0x0D terminator and then fixed width records, each prefixed by a deletion
flag byte. The file ends with a 0x1A marker. Memo text lives in a .dbt side
file next to the table.

	err := table.With("people", table.OpenOptions{}, func(t *table.Table) error {
		r, err := t.Create(map[string]interface{}{"name": "Ann", "age": 30})
		...
	})

A Table is not safe for concurrent use and takes no file locks.
*/
package table

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

import (
	"github.com/timtadh/xbase/column"
	"github.com/timtadh/xbase/consts"
	"github.com/timtadh/xbase/errors"
	"github.com/timtadh/xbase/logging"
	"github.com/timtadh/xbase/memo"
)

type CreateOptions struct {
	// Language is the code page byte. Nil means Russian Windows (0xC9).
	Language *byte
	Encoding string
	Logger   *slog.Logger
}

type OpenOptions struct {
	// Encoding is the charset of character columns.
	Encoding string
	// Memo opens the .dbt file next to the table.
	Memo bool
	// MemoStore is used as is when set, ahead of Memo.
	MemoStore memo.Store
	// MemoCacheBlocks is the number of memo blocks kept in memory.
	MemoCacheBlocks int
	Logger          *slog.Logger
}

type Table struct {
	path    string
	name    string
	file    *os.File
	header  *Header
	columns []column.Column
	byName  map[string]column.Column
	memo    memo.Store
	log     *slog.Logger
	now     func() time.Time
}

// DBFPath adds the .dbf extension to a bare table name.
func DBFPath(path string) string {
	if filepath.Ext(path) == "" {
		return path + ".dbf"
	}
	return path
}

// MemoPath is the .dbt file that belongs to a table.
func MemoPath(path string) string {
	path = DBFPath(path)
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".dbt"
}

func tableName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// layout builds the columns for specs and assigns their offsets. Names
// longer than 10 bytes are rejected rather than truncated.
func layout(specs []column.Spec, opts column.Options) ([]column.Column, error) {
	if len(specs) == 0 {
		return nil, errors.Errorf("a table needs at least one column")
	}
	seen := make(map[string]bool, len(specs))
	columns := make([]column.Column, 0, len(specs))
	offset := 1
	for _, spec := range specs {
		key := strings.ToUpper(spec.Name)
		if spec.Name == "" {
			return nil, errors.Errorf("column %d has no name", len(columns))
		} else if len(spec.Name) > consts.MAXFIELDNAME {
			return nil, errors.Errorf("column name '%s' is longer than %d bytes", spec.Name, consts.MAXFIELDNAME)
		} else if seen[key] {
			return nil, errors.Errorf("duplicate column '%s'", spec.Name)
		}
		seen[key] = true
		spec.Offset = offset
		c, err := column.New(spec, opts)
		if err != nil {
			return nil, err
		}
		columns = append(columns, c)
		offset += c.Size()
	}
	if offset > consts.MAXRECORDSIZE {
		return nil, errors.Errorf("record length %d is too large", offset)
	}
	return columns, nil
}

// Create writes a new, empty table file, and its memo file when a column
// needs one. An existing file is replaced.
func Create(path string, specs []column.Spec, opts CreateOptions) error {
	path = DBFPath(path)
	columns, err := layout(specs, column.Options{Encoding: opts.Encoding})
	if err != nil {
		return err
	}
	hasMemo := false
	recordLength := 1
	for _, c := range columns {
		recordLength += c.Size()
		hasMemo = hasMemo || c.Type() == column.Memo
	}
	h := &Header{
		Version:      consts.DBASE3,
		HeaderLength: uint16(consts.HEADERSIZE + consts.FIELDSIZE*len(columns) + 1),
		RecordLength: uint16(recordLength),
		Language:     consts.LANGUAGE_RUSSIAN_WINDOWS,
	}
	if hasMemo {
		h.Version = consts.DBASE3_MEMO
	}
	if opts.Language != nil {
		h.Language = *opts.Language
	}
	h.touch(time.Now())

	data := h.Bytes()
	for _, c := range columns {
		f := newField(c)
		data = append(data, f.Bytes()...)
	}
	data = append(data, consts.TERMINATOR, consts.EOF)
	if err := os.WriteFile(path, data, 0666); err != nil {
		return err
	}
	if hasMemo {
		m, err := memo.Create(MemoPath(path))
		if err != nil {
			return err
		}
		if err := m.Close(); err != nil {
			return err
		}
	}
	log := opts.Logger
	if log == nil {
		log = logging.WithTable(tableName(path))
	}
	log.Debug("table created", "path", path, "columns", len(columns), "record_length", recordLength)
	return nil
}

// Open a table. Memo columns fail on access unless a memo store is
// configured through opts.
func Open(path string, opts OpenOptions) (*Table, error) {
	path = DBFPath(path)
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	t := &Table{
		path:   path,
		name:   tableName(path),
		file:   f,
		byName: make(map[string]column.Column),
		memo:   memo.Unavailable{},
		log:    opts.Logger,
		now:    time.Now,
	}
	if t.log == nil {
		t.log = logging.WithTable(t.name)
	}
	if err := t.open(opts); err != nil {
		f.Close()
		return nil, err
	}
	t.log.Debug("table opened", "path", path, "columns", len(t.columns), "count", t.Count())
	return t, nil
}

// With opens a table, runs do and closes the table whatever happens.
func With(path string, opts OpenOptions, do func(*Table) error) (err error) {
	t, err := Open(path, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := t.Close(); err == nil {
			err = cerr
		}
	}()
	return do(t)
}

func (t *Table) open(opts OpenOptions) error {
	h, err := readHeader(t.file)
	if err != nil {
		return err
	}
	t.header = h

	fi, err := t.file.Stat()
	if err != nil {
		return err
	}
	r := bufio.NewReader(io.NewSectionReader(t.file, consts.HEADERSIZE, fi.Size()-consts.HEADERSIZE))
	copts := column.Options{Encoding: opts.Encoding, Memo: t}
	for {
		if b, err := r.Peek(1); err == io.EOF {
			return errors.Errorf("%s: column directory is not terminated", t.path)
		} else if err != nil {
			return err
		} else if b[0] == consts.TERMINATOR {
			break
		}
		f, err := readField(r)
		if err != nil {
			return err
		}
		c, err := column.New(f.spec(), copts)
		if err != nil {
			return err
		}
		t.columns = append(t.columns, c)
		t.byName[strings.ToUpper(c.Name())] = c
	}

	switch {
	case opts.MemoStore != nil:
		t.memo = opts.MemoStore
	case opts.Memo:
		m, err := memo.Open(MemoPath(t.path), opts.MemoCacheBlocks)
		if err != nil {
			return err
		}
		t.memo = m
	}
	return nil
}

// Close releases the table file and the memo store.
func (t *Table) Close() error {
	merr := t.memo.Close()
	if err := t.file.Close(); err != nil {
		return err
	}
	return merr
}

func (t *Table) Name() string { return t.name }

func (t *Table) Path() string { return t.path }

// Header returns a copy of the in-memory header.
func (t *Table) Header() Header { return *t.header }

func (t *Table) Count() int { return int(t.header.Count) }

func (t *Table) Language() byte { return t.header.Language }

func (t *Table) LastModified() time.Time { return t.header.LastModified() }

func (t *Table) Columns() []column.Column {
	columns := make([]column.Column, len(t.columns))
	copy(columns, t.columns)
	return columns
}

// Column looks a column up by case-insensitive name.
func (t *Table) Column(name string) (column.Column, bool) {
	c, has := t.byName[strings.ToUpper(name)]
	return c, has
}

// Lookup is Column that reports a missing column as UnknownColumnError.
func (t *Table) Lookup(name string) (column.Column, error) {
	c, has := t.Column(name)
	if !has {
		return nil, errors.UnknownColumn(name)
	}
	return c, nil
}

// Memo is the store memo columns go through.
func (t *Table) Memo() memo.Store {
	return t.memo
}

func (t *Table) recordLength() int {
	return int(t.header.RecordLength)
}

func (t *Table) offset(index int) int64 {
	return int64(t.header.HeaderLength) + int64(index)*int64(t.header.RecordLength)
}

// Build makes a new, unsaved record holding attrs.
func (t *Table) Build(attrs map[string]interface{}) (*Record, error) {
	r := newRecord(t)
	for name, value := range attrs {
		if err := r.Set(name, value); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Create builds a record from attrs and appends it.
func (t *Table) Create(attrs map[string]interface{}) (*Record, error) {
	r, err := t.Build(attrs)
	if err != nil {
		return nil, err
	}
	if err := t.Save(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (t *Table) Load(index int) (*Record, error) {
	if index < 0 || index >= t.Count() {
		return nil, errors.IndexOutOfRange(index, t.Count())
	}
	data := make([]byte, t.recordLength())
	if _, err := t.file.ReadAt(data, t.offset(index)); err != nil {
		return nil, err
	}
	return loadedRecord(t, index, data), nil
}

// Save appends a record that has no index yet and overwrites the row of
// one that has. The header date and count are rewritten either way.
func (t *Table) Save(r *Record) error {
	if r.table != t {
		return errors.Errorf("record belongs to table '%s', not '%s'", r.table.name, t.name)
	}
	if r.index >= t.Count() {
		return errors.IndexOutOfRange(r.index, t.Count())
	}
	data, err := r.Serialize()
	if err != nil {
		return err
	}
	if r.index < 0 {
		index := t.Count()
		row := make([]byte, 0, len(data)+1)
		row = append(row, data...)
		row = append(row, consts.EOF)
		if _, err := t.file.WriteAt(row, t.offset(index)); err != nil {
			return err
		}
		r.index = index
		t.header.Count++
		t.log.Debug("record appended", "index", index)
	} else {
		if _, err := t.file.WriteAt(data, t.offset(r.index)); err != nil {
			return err
		}
	}
	return t.updateHeader()
}

// Store saves r over the row at index.
func (t *Table) Store(index int, r *Record) error {
	if index < 0 || index >= t.Count() {
		return errors.IndexOutOfRange(index, t.Count())
	}
	r.index = index
	return t.Save(r)
}

// Pack drops deleted rows, moving the survivors down in order, and cuts
// the file after the last one.
func (t *Table) Pack() error {
	count := t.Count()
	data := make([]byte, t.recordLength())
	packed := 0
	for i := 0; i < count; i++ {
		if _, err := t.file.ReadAt(data, t.offset(i)); err != nil {
			return err
		}
		if data[0] == consts.DELETED {
			continue
		}
		if i != packed {
			if _, err := t.file.WriteAt(data, t.offset(packed)); err != nil {
				return err
			}
		}
		packed++
	}
	if err := t.truncate(packed); err != nil {
		return err
	}
	t.log.Debug("table packed", "removed", count-packed, "count", packed)
	return nil
}

// Clear removes every row.
func (t *Table) Clear() error {
	if err := t.truncate(0); err != nil {
		return err
	}
	t.log.Debug("table cleared")
	return nil
}

func (t *Table) truncate(count int) error {
	end := t.offset(count)
	if _, err := t.file.WriteAt([]byte{consts.EOF}, end); err != nil {
		return err
	}
	if err := t.file.Truncate(end + 1); err != nil {
		return err
	}
	t.header.Count = uint32(count)
	return t.updateHeader()
}

// updateHeader writes the modification date and record count.
func (t *Table) updateHeader() error {
	t.header.touch(t.now())
	_, err := t.file.WriteAt(t.header.Bytes()[1:8], 1)
	return err
}
