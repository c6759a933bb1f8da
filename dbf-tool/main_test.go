package main

import "testing"

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
)

import (
	"github.com/klauspost/compress/zstd"
)

import (
	"github.com/timtadh/xbase/table"
)

const peopleSchema = `
NAME   string  size=10
AGE    integer size=3
ACTIVE boolean
`

func run(t *testing.T, g *Global, command string, args ...string) string {
	var out bytes.Buffer
	if err := Commands[command](&out, g, args); err != nil {
		t.Fatalf("%s %v: %v", command, args, err)
	}
	return out.String()
}

func setup(t *testing.T) (*Global, string) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "people.schema")
	if err := os.WriteFile(schemaPath, []byte(peopleSchema), 0666); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, "people")
	g := &Global{}
	run(t, g, "create", "--schema="+schemaPath, p)
	err := table.With(p, g.OpenOptions(), func(tbl *table.Table) error {
		for i, name := range []string{"Ann", "Bob", "Cy"} {
			_, err := tbl.Create(map[string]interface{}{"name": name, "age": 30 + i, "active": i != 1})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return g, p
}

func TestCreateAndSchema(t *testing.T) {
	g, p := setup(t)
	got := run(t, g, "schema", p)
	want := "# people\nNAME string size=10\nAGE integer size=3\nACTIVE boolean\n"
	if got != want {
		t.Fatalf("schema dump\n%q\nwant\n%q", got, want)
	}
	pretty := run(t, g, "schema", "--pretty", p)
	if !strings.Contains(pretty, "ACTIVE") || !strings.Contains(pretty, "rows 3") {
		t.Fatalf("pretty output is missing columns:\n%s", pretty)
	}
}

func TestCreateNeedsSchema(t *testing.T) {
	var out bytes.Buffer
	if err := Create(&out, &Global{}, []string{filepath.Join(t.TempDir(), "x")}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestDeleteRecallPack(t *testing.T) {
	g, p := setup(t)
	run(t, g, "delete", p, "1")
	if got := run(t, g, "list", p); got != "0 \tAnn\t30\ttrue\n2 \tCy\t32\ttrue\n" {
		t.Fatalf("list %q", got)
	}
	if got := run(t, g, "list", "--deleted", p); !strings.Contains(got, "1*\tBob\t31\tfalse\n") {
		t.Fatalf("list --deleted %q", got)
	}
	run(t, g, "recall", p, "1")
	if got := run(t, g, "count", p); got != "3\n" {
		t.Fatalf("count %q", got)
	}
	run(t, g, "delete", p, "0")
	if got := run(t, g, "pack", p); got != "removed 1 of 3 rows\n" {
		t.Fatalf("pack %q", got)
	}
	if got := run(t, g, "list", p); got != "0 \tBob\t31\tfalse\n1 \tCy\t32\ttrue\n" {
		t.Fatalf("list after pack %q", got)
	}
	run(t, g, "clear", p)
	if got := run(t, g, "count", p); got != "0\n" {
		t.Fatalf("count after clear %q", got)
	}
}

func TestDeleteBadIndex(t *testing.T) {
	g, p := setup(t)
	var out bytes.Buffer
	if err := Delete(&out, g, []string{p, "7"}); err == nil {
		t.Fatal("expected an out of range error")
	}
	if err := Delete(&out, g, []string{p, "x"}); err == nil {
		t.Fatal("expected a bad index error")
	}
}

func TestExport(t *testing.T) {
	g, p := setup(t)
	got := run(t, g, "export", p)
	want := "NAME,AGE,ACTIVE\nAnn,30,true\nBob,31,false\nCy,32,true\n"
	if got != want {
		t.Fatalf("export\n%q\nwant\n%q", got, want)
	}
}

func TestExportZstd(t *testing.T) {
	g, p := setup(t)
	output := filepath.Join(t.TempDir(), "people.csv.zst")
	run(t, g, "export", "--zstd", "--output="+output, p)

	f, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()
	records, err := csv.NewReader(dec).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 || records[3][0] != "Cy" || records[2][2] != "false" {
		t.Fatalf("unexpected csv %v", records)
	}
}
