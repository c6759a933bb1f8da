package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

import (
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/xbase/column"
	"github.com/timtadh/xbase/errors"
	"github.com/timtadh/xbase/schema"
	"github.com/timtadh/xbase/table"
)

// parse runs getopt over a command's arguments and checks the number of
// positional arguments left. Options come back keyed by flag, short
// flags under their long name.
func parse(args []string, short string, long []string, positional int) ([]string, map[string]string, error) {
	rest, optargs, err := getopt.GetOpt(args, short, long)
	if err != nil {
		return nil, nil, err
	}
	opts := make(map[string]string, len(optargs))
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-s":
			opts["--schema"] = oa.Arg()
		case "-o":
			opts["--output"] = oa.Arg()
		default:
			opts[oa.Opt()] = oa.Arg()
		}
	}
	if len(rest) != positional {
		return nil, nil, errors.Errorf("expected %d arguments, got %d: %v", positional, len(rest), rest)
	}
	return rest, opts, nil
}

func Create(out io.Writer, g *Global, args []string) error {
	rest, flags, err := parse(args, "hs:", []string{"help", "schema=", "language="}, 1)
	if err != nil {
		return err
	}
	opts := table.CreateOptions{Encoding: g.Encoding}
	if arg, has := flags["--language"]; has {
		lang, err := strconv.ParseUint(arg, 0, 8)
		if err != nil {
			return errors.Errorf("bad language byte '%s': %v", arg, err)
		}
		language := byte(lang)
		opts.Language = &language
	}
	schemaPath := flags["--schema"]
	if schemaPath == "" {
		return errors.Errorf("create needs a schema file, -s")
	}
	f, err := os.Open(schemaPath)
	if err != nil {
		return err
	}
	defer f.Close()
	s, err := schema.Parse(f)
	if err != nil {
		return err
	}
	if err := table.Create(rest[0], s.Specs(), opts); err != nil {
		return err
	}
	fmt.Fprintf(out, "created %s with %d columns\n", table.DBFPath(rest[0]), s.Len())
	return nil
}

func Schema(out io.Writer, g *Global, args []string) error {
	rest, flags, err := parse(args, "h", []string{"help", "pretty"}, 1)
	if err != nil {
		return err
	}
	_, pretty := flags["--pretty"]
	return table.With(rest[0], g.OpenOptions(), func(t *table.Table) error {
		if pretty {
			_, err := fmt.Fprintln(out, Pretty(t))
			return err
		}
		return schema.Dump(out, t)
	})
}

func List(out io.Writer, g *Global, args []string) error {
	rest, flags, err := parse(args, "h", []string{"help", "deleted"}, 1)
	if err != nil {
		return err
	}
	_, deleted := flags["--deleted"]
	return table.With(rest[0], g.OpenOptions(), func(t *table.Table) error {
		run := t.Each
		if deleted {
			run = t.EachWithDeleted
		}
		return table.Do(run, func(r *table.Record) error {
			row, err := Row(t, r)
			if err != nil {
				return err
			}
			mark := " "
			if r.IsDeleted() {
				mark = "*"
			}
			_, err = fmt.Fprintf(out, "%d%s\t%s\n", r.Index(), mark, strings.Join(row, "\t"))
			return err
		})
	})
}

func Count(out io.Writer, g *Global, args []string) error {
	rest, _, err := parse(args, "h", []string{"help"}, 1)
	if err != nil {
		return err
	}
	return table.With(rest[0], g.OpenOptions(), func(t *table.Table) error {
		_, err := fmt.Fprintln(out, t.Count())
		return err
	})
}

func markRow(out io.Writer, g *Global, args []string, do func(*table.Record) error) error {
	rest, _, err := parse(args, "h", []string{"help"}, 2)
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(rest[1])
	if err != nil {
		return errors.Errorf("bad index '%s'", rest[1])
	}
	return table.With(rest[0], g.OpenOptions(), func(t *table.Table) error {
		r, err := t.Load(index)
		if err != nil {
			return err
		}
		return do(r)
	})
}

func Delete(out io.Writer, g *Global, args []string) error {
	return markRow(out, g, args, func(r *table.Record) error { return r.Delete() })
}

func Recall(out io.Writer, g *Global, args []string) error {
	return markRow(out, g, args, func(r *table.Record) error { return r.Recall() })
}

func Pack(out io.Writer, g *Global, args []string) error {
	rest, _, err := parse(args, "h", []string{"help"}, 1)
	if err != nil {
		return err
	}
	return table.With(rest[0], g.OpenOptions(), func(t *table.Table) error {
		before := t.Count()
		if err := t.Pack(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "removed %d of %d rows\n", before-t.Count(), before)
		return err
	})
}

func Clear(out io.Writer, g *Global, args []string) error {
	rest, _, err := parse(args, "h", []string{"help"}, 1)
	if err != nil {
		return err
	}
	return table.With(rest[0], g.OpenOptions(), func(t *table.Table) error {
		return t.Clear()
	})
}

// Row formats every column of r as text, in column order.
func Row(t *table.Table, r *table.Record) ([]string, error) {
	columns := t.Columns()
	row := make([]string, 0, len(columns))
	for _, c := range columns {
		v, err := r.Get(c.Name())
		if err != nil {
			return nil, err
		}
		row = append(row, Format(c, v))
	}
	return row, nil
}

func Format(c column.Column, v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return x.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(x, 'f', c.Decimal(), 64)
	case bool:
		if x {
			return "true"
		}
		return "false"
	}
	return fmt.Sprint(v)
}
