package main

import (
	"encoding/csv"
	"io"
	"os"
)

import (
	"github.com/klauspost/compress/zstd"
)

import (
	"github.com/timtadh/xbase/table"
)

// Export writes the live rows of a table as csv, header first.
func Export(out io.Writer, g *Global, args []string) (err error) {
	rest, flags, err := parse(args, "ho:", []string{"help", "output=", "zstd"}, 1)
	if err != nil {
		return err
	}
	if path := flags["--output"]; path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}
	if _, has := flags["--zstd"]; has {
		enc, err := zstd.NewWriter(out)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := enc.Close(); err == nil {
				err = cerr
			}
		}()
		out = enc
	}
	return table.With(rest[0], g.OpenOptions(), func(t *table.Table) error {
		return WriteCSV(out, t)
	})
}

func WriteCSV(out io.Writer, t *table.Table) error {
	w := csv.NewWriter(out)
	columns := t.Columns()
	header := make([]string, 0, len(columns))
	for _, c := range columns {
		header = append(header, c.Name())
	}
	if err := w.Write(header); err != nil {
		return err
	}
	err := table.Do(t.Each, func(r *table.Record) error {
		row, err := Row(t, r)
		if err != nil {
			return err
		}
		return w.Write(row)
	})
	if err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
