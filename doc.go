/*
XBase reads and writes dBase III tables.

A table is a .dbf file: a fixed header, a directory of typed, fixed width
columns and fixed width records, each with a deletion flag. Memo columns
keep variable length text in a .dbt file of 512 byte blocks next to the
table.

The major components of this project:

1. column - the character, numeric, logical, date, memo and float column
types. Each packs a Go value into exactly its width and back.

2. memo - the append only block store behind memo columns, built on the
block file in package file.

3. table - header and column directory codec, records, iteration,
compaction.

4. schema - declare columns in code or in a small text format, and dump
an existing table back to that format.

5. charset - transcoding for character columns stored in legacy code
pages.

6. errors - just a simple error package which maintains a stack trace
with every error.

7. dbf-tool - a command line tool to create, inspect, edit and export
tables.

*/
package xbase
