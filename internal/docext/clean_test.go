package docext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/candidate-screener/internal/types"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses space runs", "Go    engineer\tresume", "Go engineer resume"},
		{"normalizes CRLF", "line one\r\nline two\rline three", "line one\nline two\nline three"},
		{"trims line edges", "  padded line  \n  another  ", "padded line\nanother"},
		{"collapses blank line runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"strips control garbage", "name\x00\x01 here", "name here"},
		{"keeps resume punctuation", "C. Doe (Backend): Go, SQL & more @acme #1", "C. Doe (Backend): Go, SQL & more @acme #1"},
		{"keeps accented names", "José Müller, Développeur", "José Müller, Développeur"},
		{"keeps non-latin scripts", "張偉 Инженер C++", "張偉 Инженер C++"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

// Cleaning must be idempotent: a second pass never changes the result.
func TestCleanTextIdempotent(t *testing.T) {
	samples := []string{
		"Jane Doe\r\n\r\n\r\nBackend   Engineer\t\tGo, PostgreSQL",
		"  leading and trailing  \n\n\n\n mid \x00\x02 garbage ",
		"already clean text\n\nwith one blank line",
		"",
		strings.Repeat("word ", 500),
	}
	for _, sample := range samples {
		once := CleanText(sample)
		assert.Equal(t, once, CleanText(once))
	}
}

func TestValidate(t *testing.T) {
	longText := strings.Repeat("resume content ", 10)

	tests := []struct {
		name   string
		in     string
		valid  bool
		reason types.QualityReason
	}{
		{"valid text", longText, true, ""},
		{"empty", "", false, types.ReasonEmpty},
		{"too short", "tiny resume", false, types.ReasonTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.in)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf", []byte("%PDF-1.7 ..."), FormatPDF},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A}, FormatImage},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, FormatImage},
		{"plain text", []byte("Jane Doe, Backend Engineer"), FormatText},
		{"pdf named as txt is still pdf", []byte("%PDF-1.4"), FormatPDF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.data))
		})
	}
}
