package xbase

import (
	"os"
)

import (
	"github.com/timtadh/xbase/schema"
	"github.com/timtadh/xbase/table"
)

// CreateTable lets define declare the columns and then writes the empty
// table.
//
//	err := xbase.CreateTable("people", func(s *schema.Schema) error {
//		return s.Column("name", "string", schema.Options{Size: 10})
//	}, table.CreateOptions{})
func CreateTable(path string, define func(*schema.Schema) error, opts table.CreateOptions) error {
	s := schema.New()
	if err := define(s); err != nil {
		return err
	}
	return table.Create(path, s.Specs(), opts)
}

// OpenTable opens a table together with its memo file when one exists.
func OpenTable(path, encoding string) (*table.Table, error) {
	_, err := os.Stat(table.MemoPath(path))
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return table.Open(path, table.OpenOptions{Encoding: encoding, Memo: err == nil})
}
