package docext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// minTextLayerChars is the threshold below which a PDF is treated as a
// scanned/image-only document and handed to the OCR engine instead.
const minTextLayerChars = 100

// extractPDFText reads the text layer of a PDF. Pages that fail to decode
// are skipped; an empty result is returned as an empty string, not an
// error, so the caller can decide whether to fall back to OCR. The pdf
// library panics on some malformed files, so the whole read is guarded.
func extractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Message: fmt.Sprintf("PDF parser panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Message: "failed to open PDF", Cause: err}
	}

	var sb strings.Builder
	totalPages := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip undecodable pages and keep going.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	return sb.String(), nil
}
