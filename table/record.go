package table

import (
	"strings"
)

import (
	"github.com/timtadh/xbase/column"
	"github.com/timtadh/xbase/consts"
	"github.com/timtadh/xbase/errors"
)

// Record is one row of a Table. A new record has no index and no bytes
// until it is saved. A loaded record unpacks its columns lazily.
type Record struct {
	table   *Table
	index   int
	data    []byte
	mark    byte
	changed map[string]interface{}
	cached  map[string]interface{}
}

func newRecord(t *Table) *Record {
	return &Record{
		table:   t,
		index:   -1,
		mark:    consts.ACTIVE,
		changed: make(map[string]interface{}),
		cached:  make(map[string]interface{}),
	}
}

func loadedRecord(t *Table, index int, data []byte) *Record {
	r := newRecord(t)
	r.index = index
	r.data = data
	r.mark = data[0]
	return r
}

func key(name string) string {
	return strings.ToUpper(name)
}

func (r *Record) Table() *Table { return r.table }

// Index is the row number, or -1 for a record that was never saved.
func (r *Record) Index() int { return r.index }

// IsNew reports whether the record has never been saved.
func (r *Record) IsNew() bool { return r.index < 0 }

func (r *Record) Get(name string) (interface{}, error) {
	c, err := r.table.Lookup(name)
	if err != nil {
		return nil, err
	}
	k := key(c.Name())
	if v, has := r.changed[k]; has {
		return v, nil
	}
	if r.data == nil {
		return nil, nil
	}
	if v, has := r.cached[k]; has {
		return v, nil
	}
	v, err := c.Unpack(r.data[c.Offset() : c.Offset()+c.Size()])
	if err != nil {
		return nil, err
	}
	r.cached[k] = v
	return v, nil
}

// Set records value for the column. Nothing is packed until the record
// is serialized.
func (r *Record) Set(name string, value interface{}) error {
	c, err := r.table.Lookup(name)
	if err != nil {
		return err
	}
	r.changed[key(c.Name())] = value
	return nil
}

// Values returns every column value keyed by column name.
func (r *Record) Values() (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(r.table.columns))
	for _, c := range r.table.columns {
		v, err := r.Get(c.Name())
		if err != nil {
			return nil, err
		}
		values[c.Name()] = v
	}
	return values, nil
}

func (r *Record) IsDeleted() bool {
	return r.mark == consts.DELETED
}

// Delete marks the record deleted and saves it. The row stays in the file
// until the table is packed.
func (r *Record) Delete() error {
	r.mark = consts.DELETED
	return r.Save()
}

// Recall clears the deletion mark and saves the record.
func (r *Record) Recall() error {
	r.mark = consts.ACTIVE
	return r.Save()
}

func (r *Record) Save() error {
	return r.table.Save(r)
}

func (r *Record) pack(c column.Column, value interface{}) ([]byte, error) {
	b, err := c.Pack(value)
	if err == nil {
		return b, nil
	}
	var ierr *errors.InvalidValueError
	if errors.As(err, &ierr) {
		return nil, err
	}
	return nil, errors.InvalidValue(c.Name(), value, err)
}

// Serialize packs the record into its row bytes. The record keeps the
// bytes and its changed values become cached ones.
func (r *Record) Serialize() ([]byte, error) {
	if r.data == nil {
		data := make([]byte, 0, r.table.recordLength())
		data = append(data, r.mark)
		for _, c := range r.table.columns {
			b, err := r.pack(c, r.changed[key(c.Name())])
			if err != nil {
				return nil, err
			}
			data = append(data, b...)
		}
		r.data = data
	} else {
		packed := make(map[string][]byte, len(r.changed))
		for k, value := range r.changed {
			c, err := r.table.Lookup(k)
			if err != nil {
				return nil, err
			}
			if packed[k], err = r.pack(c, value); err != nil {
				return nil, err
			}
		}
		r.data[0] = r.mark
		for k, b := range packed {
			c, _ := r.table.Column(k)
			copy(r.data[c.Offset():c.Offset()+c.Size()], b)
		}
	}
	for k, value := range r.changed {
		r.cached[k] = value
		delete(r.changed, k)
	}
	return r.data, nil
}

// Clone makes an unsaved copy of the record. The copy owns its own bytes.
func (r *Record) Clone() *Record {
	c := newRecord(r.table)
	c.mark = r.mark
	for k, v := range r.changed {
		c.changed[k] = v
	}
	for k, v := range r.cached {
		c.cached[k] = v
	}
	if r.data != nil {
		c.data = make([]byte, len(r.data))
		copy(c.data, r.data)
	}
	return c
}
