package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported format hints.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// SupportedFormats returns the accepted format hints.
func SupportedFormats() []string {
	return []string{FormatPDF, FormatDOCX}
}

// DetectFormat maps a filename extension to a format hint. Unknown
// extensions return the empty string; the caller decides whether that is an
// UnsupportedFormatError or a prompt for an explicit hint.
func DetectFormat(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	default:
		return ""
	}
}

// Extract converts a raw document payload into normalized plain text.
// Paragraph and page breaks collapse to single newlines, horizontal
// whitespace runs collapse to single spaces, and the result is trimmed.
// A document that yields no text at all is an ExtractionError, never an
// empty success.
func Extract(data []byte, formatHint string) (string, error) {
	var raw string
	var err error

	switch strings.ToLower(formatHint) {
	case FormatPDF:
		raw, err = extractPDF(data)
	case FormatDOCX:
		raw, err = extractDOCX(data)
	default:
		return "", &UnsupportedFormatError{Format: formatHint}
	}
	if err != nil {
		return "", &ExtractionError{Format: formatHint, Message: "document could not be read", Cause: err}
	}

	text := Normalize(raw)
	if text == "" {
		return "", &ExtractionError{Format: formatHint, Message: "document contains no extractable text"}
	}
	return text, nil
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed inputs; surface those as errors.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader failed: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	// GetContent returns the raw document.xml; convert paragraph boundaries
	// to newlines before stripping the remaining tags.
	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:br/>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	return xmlTagPattern.ReplaceAllString(content, " "), nil
}

var horizontalWhitespace = regexp.MustCompile(`[ \t\r\f\v]+`)

// Normalize collapses whitespace while preserving line structure: runs of
// spaces and tabs become one space, each line is trimmed, and blank lines
// are dropped so paragraph breaks collapse to single newlines. Section and
// education heuristics downstream depend on the surviving line breaks.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = horizontalWhitespace.ReplaceAllString(s, " ")

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
