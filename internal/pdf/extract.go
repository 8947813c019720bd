// Package pdf extracts text and document metadata from PDF attachments so
// they can be handed back to an agent as plain content. Extraction failures
// are reported inside the result document, never as panics.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// MaxPages limits the number of pages to process
	MaxPages = 100

	// MaxExtractedTextSize limits the extracted text size (1MB)
	MaxExtractedTextSize = 1024 * 1024
)

// ExtractText parses the PDF in data and returns a result document with the
// extracted text, the page count, and a success flag. Pages that fail text
// extraction are skipped rather than failing the whole document.
func ExtractText(data []byte) map[string]any {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return extractionFailure(fmt.Sprintf("failed to open PDF: %v", err))
	}

	totalPages := reader.NumPage()
	if totalPages == 0 {
		return extractionFailure("PDF has no pages")
	}
	if totalPages > MaxPages {
		return extractionFailure(fmt.Sprintf("PDF has too many pages (%d), max allowed is %d", totalPages, MaxPages))
	}

	var textBuilder strings.Builder
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")

		if textBuilder.Len() > MaxExtractedTextSize {
			textBuilder.WriteString("\n... [Content truncated - size limit reached]")
			break
		}
	}

	return map[string]any{
		"text":    textBuilder.String(),
		"pages":   totalPages,
		"success": true,
	}
}

// Metadata returns the document information dictionary of the PDF in data.
// Empty entries are dropped from the result.
func Metadata(data []byte) map[string]any {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return map[string]any{
			"success": false,
			"error":   fmt.Sprintf("failed to open PDF: %v", err),
		}
	}

	result := map[string]any{
		"pages":   reader.NumPage(),
		"success": true,
	}

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return result
	}

	fields := map[string]string{
		"title":             "Title",
		"author":            "Author",
		"subject":           "Subject",
		"creator":           "Creator",
		"producer":          "Producer",
		"creation_date":     "CreationDate",
		"modification_date": "ModDate",
	}
	for key, dictKey := range fields {
		if v := info.Key(dictKey); !v.IsNull() {
			if s := v.Text(); s != "" {
				result[key] = s
			}
		}
	}

	return result
}

func extractionFailure(msg string) map[string]any {
	return map[string]any{
		"text":    "",
		"pages":   0,
		"success": false,
		"error":   msg,
	}
}
