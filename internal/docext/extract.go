package docext

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/ocr"
	"github.com/jonathan/candidate-screener/internal/types"
)

// Extractor converts raw document bytes into validated text. The OCR
// engine is injected by the composition root; a nil engine disables the
// OCR fallback paths.
type Extractor struct {
	engine ocr.Engine
	logger *zap.Logger
}

// NewExtractor creates an Extractor. engine may be nil to disable OCR.
func NewExtractor(engine ocr.Engine, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{engine: engine, logger: logger}
}

// Extract converts a raw document into normalized text with a quality
// verdict. Format detection is by content signature, never by the declared
// filename. An invalid verdict is returned as an *InputQualityError; the
// ExtractedText carrying the verdict is returned alongside it for
// diagnostics.
func (e *Extractor) Extract(ctx context.Context, doc types.RawDocument) (types.ExtractedText, error) {
	if len(doc.Data) == 0 {
		return e.verdict("")
	}

	format := DetectFormat(doc.Data)
	e.logger.Debug("detected document format",
		zap.String("format", string(format)),
		zap.String("filename", doc.Filename),
		zap.Int("bytes", len(doc.Data)))

	var raw string
	switch format {
	case FormatPDF:
		text, err := e.extractPDF(ctx, doc.Data)
		if err != nil {
			return types.ExtractedText{}, err
		}
		raw = text
	case FormatImage:
		text, err := e.extractImage(ctx, doc.Data)
		if err != nil {
			return types.ExtractedText{}, err
		}
		raw = text
	default:
		raw = string(doc.Data)
	}

	return e.verdict(CleanText(raw))
}

// extractPDF tries the text layer first and falls back to OCR when the
// yield suggests a scanned/image-only document.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) (string, error) {
	text, err := extractPDFText(data)
	if err != nil {
		e.logger.Warn("PDF text-layer extraction failed", zap.Error(err))
		text = ""
	}

	if len(CleanText(text)) >= minTextLayerChars {
		return text, nil
	}

	if e.engine == nil {
		// OCR unavailable; whatever the text layer yielded is all we have.
		return text, nil
	}

	e.logger.Info("PDF text layer too small, falling back to OCR",
		zap.Int("text_layer_chars", len(text)))
	recognized, err := e.engine.Recognize(ctx, data)
	if err != nil {
		if text != "" {
			e.logger.Warn("OCR fallback failed, keeping text-layer yield", zap.Error(err))
			return text, nil
		}
		return "", &ExtractionError{Message: "OCR fallback failed", Cause: err}
	}
	return recognized, nil
}

// extractImage preprocesses the image and runs OCR.
func (e *Extractor) extractImage(ctx context.Context, data []byte) (string, error) {
	if e.engine == nil {
		return "", &ExtractionError{Message: "image document requires OCR but no engine is configured"}
	}

	prepared := preprocessImage(data)
	text, err := e.engine.Recognize(ctx, prepared)
	if err != nil {
		return "", &ExtractionError{Message: "OCR recognition failed", Cause: err}
	}
	return text, nil
}

// verdict validates cleaned text and pairs an invalid result with a typed
// error.
func (e *Extractor) verdict(text string) (types.ExtractedText, error) {
	extracted := Validate(text)
	if !extracted.Valid {
		e.logger.Info("extracted text rejected", zap.String("reason", string(extracted.Reason)))
		return extracted, &InputQualityError{Reason: extracted.Reason}
	}
	return extracted, nil
}
