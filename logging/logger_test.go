package logging

import "testing"

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel(" debug "); err != nil || l != LevelDebug {
		t.Fatalf("Expected DEBUG got %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("Expected an error")
	}
}

func TestInitFileJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "xbase.log")
	if err := Init(Config{Level: LevelDebug, OutputPath: p, Format: "json"}); err != nil {
		t.Fatal(err)
	}
	WithTable("people").Debug("record appended", "index", 3)
	if err := Close(); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["table"] != "people" || entry["msg"] != "record appended" || entry["index"] != 3.0 {
		t.Fatalf("Unexpected entry %v", entry)
	}
}

func TestBadFormat(t *testing.T) {
	if err := Init(Config{Format: "xml"}); err == nil {
		t.Fatal("Expected an error")
	}
	if GetLogger() == nil {
		t.Fatal("Expected a default logger")
	}
}
