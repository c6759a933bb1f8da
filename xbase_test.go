package xbase

import "testing"

import (
	"path/filepath"
	"strings"
)

import (
	"github.com/timtadh/xbase/schema"
	"github.com/timtadh/xbase/table"
)

func TestCreateTable(t *testing.T) {
	p := filepath.Join(t.TempDir(), "notes")
	err := CreateTable(p, func(s *schema.Schema) error {
		if err := s.Column("title", "string", schema.Options{Size: 20}); err != nil {
			return err
		}
		return s.Column("body", "memo", schema.Options{})
	}, table.CreateOptions{})
	if err != nil {
		t.Fatal(err)
	}

	tbl, err := OpenTable(p, "")
	if err != nil {
		t.Fatal(err)
	}
	body := strings.Repeat("x", 1000)
	if _, err := tbl.Create(map[string]interface{}{"title": "first", "body": body}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Close(); err != nil {
		t.Fatal(err)
	}

	tbl, err = OpenTable(p+".dbf", "")
	if err != nil {
		t.Fatal(err)
	}
	defer tbl.Close()
	r, err := tbl.Load(0)
	if err != nil {
		t.Fatal(err)
	}
	if v, err := r.Get("body"); err != nil {
		t.Fatal(err)
	} else if v != body {
		t.Fatalf("memo text did not round trip, got %d bytes", len(v.(string)))
	}
}

func TestCreateTableDefineError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad")
	err := CreateTable(p, func(s *schema.Schema) error {
		return s.Column("x", "blob", schema.Options{})
	}, table.CreateOptions{})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestOpenTableWithoutMemo(t *testing.T) {
	p := filepath.Join(t.TempDir(), "plain.dbf")
	err := CreateTable(p, func(s *schema.Schema) error {
		return s.Column("n", "integer", schema.Options{Size: 4})
	}, table.CreateOptions{})
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := OpenTable(p, "")
	if err != nil {
		t.Fatal(err)
	}
	defer tbl.Close()
	if tbl.Count() != 0 {
		t.Fatal("expected an empty table")
	}
}
