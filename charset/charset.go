/*
Package charset converts text between UTF-8 and the single byte code pages
found in dBase files (cp866, windows-1251, ...).
*/
package charset

import (
	"strings"
)

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

import (
	"github.com/timtadh/xbase/errors"
)

// aliases not known to the WHATWG or IANA tables
var aliases = map[string]encoding.Encoding{
	"cp437": charmap.CodePage437,
	"cp850": charmap.CodePage850,
	"cp852": charmap.CodePage852,
	"cp866": charmap.CodePage866,
	"dos":   charmap.CodePage866,
}

// Lookup resolves a charset name such as "cp1251" or "windows-1251".
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, errors.Errorf("charset: empty charset name")
	}
	if e, has := aliases[key]; has {
		return e, nil
	}
	if e, err := htmlindex.Get(key); err == nil {
		return e, nil
	}
	if e, err := ianaindex.IANA.Encoding(key); err == nil && e != nil {
		return e, nil
	}
	return nil, errors.Errorf("charset: unknown charset '%s'", name)
}

func isUTF8(e encoding.Encoding) bool {
	return e == unicode.UTF8 || e == encoding.Nop
}

// Encoder transcodes strings from one charset to another.
type Encoder struct {
	from, to encoding.Encoding
}

func New(from, to string) (*Encoder, error) {
	f, err := Lookup(from)
	if err != nil {
		return nil, err
	}
	t, err := Lookup(to)
	if err != nil {
		return nil, err
	}
	return &Encoder{from: f, to: t}, nil
}

// En reads str as the source charset and returns it in the target one.
func (e *Encoder) En(str string) (string, error) {
	s := str
	if !isUTF8(e.from) {
		decoded, err := e.from.NewDecoder().String(s)
		if err != nil {
			return "", errors.Wrap(err)
		}
		s = decoded
	}
	if !isUTF8(e.to) {
		encoded, err := e.to.NewEncoder().String(s)
		if err != nil {
			return "", errors.Wrap(err)
		}
		s = encoded
	}
	return s, nil
}
