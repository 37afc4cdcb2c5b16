package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodeJSON(t *testing.T) {
	b, err := EncodeJSON("=== OVERVIEW ===\nHello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc JSONDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.StructuredContent != "=== OVERVIEW ===\nHello" {
		t.Fatalf("unexpected content %q", doc.StructuredContent)
	}
}

func TestPDFBytes(t *testing.T) {
	b, err := PDFBytes("=== OVERVIEW ===\nHello World\n\nplain paragraph")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Fatalf("expected a PDF document, got %q", b[:min(len(b), 8)])
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	paths, err := WriteArtifacts(dir, "structured", "=== OVERVIEW ===\nHello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected txt, json and pdf, got %v", paths)
	}

	txt, err := os.ReadFile(filepath.Join(dir, "structured.txt"))
	if err != nil {
		t.Fatalf("missing txt artifact: %v", err)
	}
	if string(txt) != "=== OVERVIEW ===\nHello" {
		t.Fatalf("txt artifact mismatch: %q", txt)
	}

	jsonBody, err := os.ReadFile(filepath.Join(dir, "structured.json"))
	if err != nil {
		t.Fatalf("missing json artifact: %v", err)
	}
	var doc JSONDocument
	if err := json.Unmarshal(jsonBody, &doc); err != nil {
		t.Fatalf("json artifact invalid: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "structured.pdf")); err != nil {
		t.Fatalf("missing pdf artifact: %v", err)
	}
}
