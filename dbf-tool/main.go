package main

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2015, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

import (
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/xbase/logging"
	"github.com/timtadh/xbase/table"
)

var ErrorCodes map[string]int = map[string]int{
	"usage":   0,
	"version": 2,
	"opts":    3,
	"badint":  5,
	"badfile": 7,
	"table":   8,
}

var UsageMessage string = "dbf-tool --help"
var ExtendedMessage string = `
dbf-tool -- create, inspect, edit and export dBase III tables

There is a subcommand for each operation. The table path may leave off
the .dbf extension.

  $ dbf-tool [global options] <command> [options] <table> [args]

Global Options
  -h, --help                view this message
  --commands                list the commands
  -e, --encoding=<charset>  charset of character columns (eg. cp1251)
  --memo                    open the .dbt memo file next to the table
  --memo-cache=<blocks>     memo blocks to keep in memory (default 0)
  --log-level=<level>       debug, info, warn or error (default warn)
  --log-file=<path>         append log entries to a file (default stderr)
  --log-format=<format>     text or json (default text)

create <table>
  -s, --schema=<path>       schema file, one column per line:
                                NAME string size=10 encoding=cp1251
                                AGE  integer size=3
  --language=<int>          code page byte (default 201)

schema <table>
  --pretty                  render the columns as a styled table

list <table>
  --deleted                 include rows marked deleted

count <table>

delete <table> <index>
recall <table> <index>

pack <table>                drop rows marked deleted
clear <table>               drop every row

export <table>
  -o, --output=<path>       where to put the csv (default stdout)
  --zstd                    compress the output with zstd
`

func Usage(code int) {
	fmt.Fprintln(os.Stderr, UsageMessage)
	if code == 0 {
		fmt.Fprintln(os.Stdout, ExtendedMessage)
		code = ErrorCodes["usage"]
	} else {
		fmt.Fprintln(os.Stderr, "Try -h or --help for help")
	}
	os.Exit(code)
}

func ParseInt(str string) int {
	i, err := strconv.Atoi(str)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected an int\n", str)
		Usage(ErrorCodes["badint"])
	}
	return i
}

// Global holds the options shared by every command.
type Global struct {
	Encoding  string
	Memo      bool
	MemoCache int
}

func (g *Global) OpenOptions() table.OpenOptions {
	return table.OpenOptions{
		Encoding:        g.Encoding,
		Memo:            g.Memo,
		MemoCacheBlocks: g.MemoCache,
	}
}

type Command func(out io.Writer, g *Global, args []string) error

var Commands = map[string]Command{
	"create": Create,
	"schema": Schema,
	"list":   List,
	"count":  Count,
	"delete": Delete,
	"recall": Recall,
	"pack":   Pack,
	"clear":  Clear,
	"export": Export,
}

func main() {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"he:",
		[]string{
			"help", "commands", "encoding=", "memo", "memo-cache=",
			"log-level=", "log-file=", "log-format=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}

	g := &Global{}
	logConfig := logging.Config{Level: logging.LevelWarn}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-e", "--encoding":
			g.Encoding = oa.Arg()
		case "--memo":
			g.Memo = true
		case "--memo-cache":
			g.MemoCache = ParseInt(oa.Arg())
		case "--log-level":
			level, err := logging.ParseLevel(oa.Arg())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				Usage(ErrorCodes["opts"])
			}
			logConfig.Level = level
		case "--log-file":
			logConfig.OutputPath = oa.Arg()
		case "--log-format":
			logConfig.Format = oa.Arg()
		case "--commands":
			names := make([]string, 0, len(Commands))
			for name := range Commands {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Fprintf(os.Stderr, "Commands\n")
			for _, name := range names {
				fmt.Fprintf(os.Stderr, "  %v\n", name)
			}
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}

	if err := logging.Init(logConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	defer logging.Close()

	if len(args) <= 0 {
		fmt.Fprintln(os.Stderr, "Must supply a command, try --help")
		Usage(ErrorCodes["opts"])
	}

	command, has := Commands[args[0]]
	if !has {
		fmt.Fprintf(os.Stderr, "Command '%v' not supported. Try --commands to see the commands.\n", args[0])
		Usage(ErrorCodes["opts"])
	}

	if err := command(os.Stdout, g, args[1:]); err != nil {
		logging.GetLogger().Error("command failed", "command", args[0], "error", err)
		fmt.Fprintln(os.Stderr, err)
		logging.Close()
		os.Exit(ErrorCodes["table"])
	}
}
