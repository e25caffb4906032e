package docext

import (
	"bytes"
	"image/png"

	"github.com/disintegration/imaging"
)

// preprocessImage prepares image bytes for OCR: grayscale, contrast
// normalization, and sharpening raise recognition accuracy on photographed
// or low-quality scans. Preprocessing is best-effort; on any failure the
// original bytes are returned so OCR can still proceed.
func preprocessImage(data []byte) []byte {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	img = imaging.Grayscale(img)
	img = imaging.AdjustContrast(img, 20)
	img = imaging.Sharpen(img, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return data
	}
	return buf.Bytes()
}
