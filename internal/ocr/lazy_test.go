package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	text   string
	closed bool
}

func (s *stubEngine) Recognize(_ context.Context, _ []byte) (string, error) {
	return s.text, nil
}

func (s *stubEngine) Close() error {
	s.closed = true
	return nil
}

func TestLazyConstructsOnce(t *testing.T) {
	constructed := 0
	engine := &stubEngine{text: "recognized"}
	lazy := NewLazy(func() (Engine, error) {
		constructed++
		return engine, nil
	})

	for i := 0; i < 3; i++ {
		text, err := lazy.Recognize(context.Background(), []byte("img"))
		require.NoError(t, err)
		assert.Equal(t, "recognized", text)
	}
	assert.Equal(t, 1, constructed)
}

func TestLazyConstructionErrorPersists(t *testing.T) {
	constructErr := errors.New("tesseract missing")
	constructed := 0
	lazy := NewLazy(func() (Engine, error) {
		constructed++
		return nil, constructErr
	})

	_, err := lazy.Recognize(context.Background(), nil)
	assert.ErrorIs(t, err, constructErr)
	_, err = lazy.Recognize(context.Background(), nil)
	assert.ErrorIs(t, err, constructErr)
	assert.Equal(t, 1, constructed, "a failed constructor is not retried")
}

func TestLazyCloseWithoutUse(t *testing.T) {
	lazy := NewLazy(func() (Engine, error) {
		t.Fatal("constructor must not run on Close")
		return nil, nil
	})
	assert.NoError(t, lazy.Close())
}

func TestLazyCloseShutsDownEngine(t *testing.T) {
	engine := &stubEngine{}
	lazy := NewLazy(func() (Engine, error) { return engine, nil })

	_, err := lazy.Recognize(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, lazy.Close())
	assert.True(t, engine.closed)
	assert.NoError(t, lazy.Close(), "second close is a no-op")
}
