package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const driveFormInterstitial = `<html><body>
<form id="download-form" action="https://drive.usercontent.google.com/download" method="get">
  <input type="hidden" name="id" value="FILE123">
  <input type="hidden" name="export" value="download">
  <input type="hidden" name="confirm" value="t">
  <input type="hidden" name="uuid" value="abc-def">
  <input type="submit" value="Download anyway">
</form>
</body></html>`

const driveTokenInterstitial = `<html><body>
<a href="/uc?export=download&amp;confirm=AbC-9&amp;id=FILE123">Download anyway</a>
</body></html>`

func TestDriveConfirmURLFromForm(t *testing.T) {
	got, err := driveConfirmURL(driveFormInterstitial, "FILE123")
	require.NoError(t, err)
	assert.Contains(t, got, "https://drive.usercontent.google.com/download?")
	assert.Contains(t, got, "id=FILE123")
	assert.Contains(t, got, "confirm=t")
	assert.Contains(t, got, "uuid=abc-def")
}

func TestDriveConfirmURLFromToken(t *testing.T) {
	got, err := driveConfirmURL(driveTokenInterstitial, "FILE123")
	require.NoError(t, err)
	assert.Equal(t, "https://drive.google.com/uc?export=download&id=FILE123&confirm=AbC-9", got)
}

func TestDriveConfirmURLMissingToken(t *testing.T) {
	_, err := driveConfirmURL("<html><body>Sign in required</body></html>", "FILE123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no confirmation token")
}

func TestDriveConfirmURLFormWithoutID(t *testing.T) {
	page := `<form id="download-form" action="https://drive.usercontent.google.com/download">
<input type="hidden" name="confirm" value="t"></form>`
	got, err := driveConfirmURL(page, "FALLBACK")
	require.NoError(t, err)
	assert.Contains(t, got, "id=FALLBACK")
	assert.Contains(t, got, "export=download")
}
