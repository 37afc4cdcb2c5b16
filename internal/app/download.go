package app

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// JSONDocument is the download schema for the structured result.
type JSONDocument struct {
	StructuredContent string `json:"structured_content"`
}

// EncodeJSON renders the structured content as the downloadable JSON body.
func EncodeJSON(content string) ([]byte, error) {
	return json.MarshalIndent(JSONDocument{StructuredContent: content}, "", "  ")
}

// PDFBytes renders the structured document as a simple PDF, with
// `=== HEADING ===` lines set in bold.
func PDFBytes(content string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			pdf.Ln(5)
			continue
		}
		if title, ok := headingLine(s); ok {
			pdf.SetFont("Helvetica", "B", 13)
			pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		pdf.MultiCell(0, 5, s, "", "L", false)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func headingLine(s string) (string, bool) {
	if strings.HasPrefix(s, "=== ") && strings.HasSuffix(s, " ===") {
		return strings.TrimSuffix(strings.TrimPrefix(s, "=== "), " ==="), true
	}
	return "", false
}

// WriteArtifacts writes the structured content under dir as <name>.txt,
// <name>.json, and <name>.pdf, and returns the written paths.
func WriteArtifacts(dir, name, content string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir artifact dir: %w", err)
	}
	var paths []string

	txtPath := filepath.Join(dir, name+".txt")
	if err := os.WriteFile(txtPath, []byte(content), 0o644); err != nil {
		return nil, err
	}
	paths = append(paths, txtPath)

	jsonBody, err := EncodeJSON(content)
	if err != nil {
		return nil, err
	}
	jsonPath := filepath.Join(dir, name+".json")
	if err := os.WriteFile(jsonPath, jsonBody, 0o644); err != nil {
		return nil, err
	}
	paths = append(paths, jsonPath)

	pdfBody, err := PDFBytes(content)
	if err != nil {
		return nil, err
	}
	pdfPath := filepath.Join(dir, name+".pdf")
	if err := os.WriteFile(pdfPath, pdfBody, 0o644); err != nil {
		return nil, err
	}
	paths = append(paths, pdfPath)

	return paths, nil
}
