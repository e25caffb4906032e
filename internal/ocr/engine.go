// Package ocr provides the optical character recognition engine used for
// scanned documents. The engine is an explicitly constructed, injected
// resource owned by the process composition root.
package ocr

import (
	"context"
	"fmt"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Engine recognizes text in image bytes. Implementations must be safe for
// concurrent use.
type Engine interface {
	// Recognize returns the text found in the given image bytes.
	Recognize(ctx context.Context, data []byte) (string, error)
	// Close releases resources held by the engine.
	Close() error
}

// InitError indicates the engine could not be constructed. It is fatal for
// the document being processed, not for the process.
type InitError struct {
	Cause error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("ocr engine initialization failed: %v", e.Cause)
}

func (e *InitError) Unwrap() error {
	return e.Cause
}

// TesseractEngine wraps a gosseract client. The underlying client is not
// goroutine-safe, so calls are serialized with a mutex.
type TesseractEngine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed engine for the given
// languages (defaults to English when none are given).
func NewTesseractEngine(languages ...string) (*TesseractEngine, error) {
	client := gosseract.NewClient()
	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			_ = client.Close()
			return nil, &InitError{Cause: err}
		}
	}
	return &TesseractEngine{client: client}, nil
}

// Recognize runs OCR over the given image bytes.
func (e *TesseractEngine) Recognize(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client == nil {
		return "", &InitError{Cause: fmt.Errorf("engine is closed")}
	}
	if err := e.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to load image for OCR: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR recognition failed: %w", err)
	}
	return text, nil
}

// Close releases the underlying Tesseract client.
func (e *TesseractEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	return err
}
