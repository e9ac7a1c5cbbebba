package service

import (
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// UnsupportedFormatError reports an upload with an extension the
// extractor cannot handle.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Ext)
}

// ExtractionError means a supported file yielded no text at all, which
// is treated as a failure rather than a silent empty result.
type ExtractionError struct {
	Ext    string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s file: %s", e.Ext, e.Reason)
}

var (
	docxTagPattern  = regexp.MustCompile(`<[^>]+>`)
	docxParaPattern = regexp.MustCompile(`</w:p>`)
)

// ExtractText normalizes an uploaded file into a single text string.
// Plain text is returned verbatim; PDF pages are concatenated in order;
// DOCX is converted whole-document. The scoped temp file is removed on
// every exit path.
func ExtractText(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	switch ext {
	case "txt":
		data, err := io.ReadAll(r)
		if err != nil {
			return "", &ExtractionError{Ext: ext, Reason: err.Error()}
		}
		return string(data), nil
	case "pdf", "docx":
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}

	tmp, err := os.CreateTemp("", "upload-*."+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", &ExtractionError{Ext: ext, Reason: err.Error()}
	}
	if err := tmp.Close(); err != nil {
		return "", &ExtractionError{Ext: ext, Reason: err.Error()}
	}

	if ext == "pdf" {
		return extractPDF(tmpPath)
	}
	return extractDocx(tmpPath)
}

// extractPDF concatenates page text in page order. All pages empty is an
// extraction failure.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", &ExtractionError{Ext: "pdf", Reason: err.Error()}
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", &ExtractionError{Ext: "pdf", Reason: "no extractable text in any page"}
	}
	return sb.String(), nil
}

// extractDocx pulls the document XML and strips markup, turning
// paragraph boundaries into newlines.
func extractDocx(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", &ExtractionError{Ext: "docx", Reason: err.Error()}
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = docxParaPattern.ReplaceAllString(content, "\n")
	content = docxTagPattern.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	if strings.TrimSpace(content) == "" {
		return "", &ExtractionError{Ext: "docx", Reason: "no extractable text in document"}
	}
	return content, nil
}
