// Package docext converts raw resume bytes (PDF, image, plain text) into
// normalized, quality-checked text.
package docext

import "bytes"

// Format is the detected document format.
type Format string

// Detected formats.
const (
	FormatPDF   Format = "pdf"
	FormatImage Format = "image"
	FormatText  Format = "text"
)

// imageMagics are content signatures for the image formats the OCR engine
// accepts.
var imageMagics = [][]byte{
	{0x89, 'P', 'N', 'G'},       // PNG
	{0xFF, 0xD8, 0xFF},          // JPEG
	[]byte("GIF87a"),            // GIF
	[]byte("GIF89a"),            // GIF
	{'B', 'M'},                  // BMP
}

// DetectFormat identifies a document by its byte signature. Declared file
// types and extensions are ignored; content wins.
func DetectFormat(data []byte) Format {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return FormatPDF
	}
	for _, magic := range imageMagics {
		if bytes.HasPrefix(data, magic) {
			return FormatImage
		}
	}
	return FormatText
}
