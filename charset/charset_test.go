package charset

import "testing"

func TestWindows1251RoundTrip(t *testing.T) {
	pack, err := New("utf-8", "cp1251")
	if err != nil {
		t.Fatal(err)
	}
	unpack, err := New("windows-1251", "utf-8")
	if err != nil {
		t.Fatal(err)
	}
	raw, err := pack.En("Привет")
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 6 {
		t.Fatalf("Expected one byte per letter got %d bytes", len(raw))
	}
	if raw[0] != 0xCF {
		t.Fatalf("Expected 0xCF for 'П' got %x", raw[0])
	}
	back, err := unpack.En(raw)
	if err != nil {
		t.Fatal(err)
	}
	if back != "Привет" {
		t.Fatalf("Expected round trip got %q", back)
	}
}

func TestCP866(t *testing.T) {
	e, err := New("utf-8", "cp866")
	if err != nil {
		t.Fatal(err)
	}
	raw, err := e.En("Да")
	if err != nil {
		t.Fatal(err)
	}
	if raw != "\x84\xa0" {
		t.Fatalf("Unexpected cp866 bytes %x", raw)
	}
}

func TestASCIIPassesThrough(t *testing.T) {
	e, err := New("utf-8", "utf-8")
	if err != nil {
		t.Fatal(err)
	}
	if s, err := e.En("plain"); err != nil || s != "plain" {
		t.Fatalf("Expected plain got %q %v", s, err)
	}
}

func TestUnknown(t *testing.T) {
	if _, err := Lookup("no-such-charset"); err == nil {
		t.Fatal("Expected an error")
	}
	if _, err := New("utf-8", ""); err == nil {
		t.Fatal("Expected an error for an empty name")
	}
}
