package docext

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/candidate-screener/internal/types"
)

// Validation thresholds for the quality verdict.
const (
	// minValidLength is the minimum character count for valid text.
	minValidLength = 50
	// minPrintableRatio is the minimum ratio of printable characters.
	minPrintableRatio = 0.7
)

var (
	// disallowedChars strips characters outside a conservative allow-list:
	// letters and digits in any script plus punctuation commonly found in
	// resumes. \p{L}\p{N} rather than \w, so accented names survive.
	disallowedChars = regexp.MustCompile(`[^\p{L}\p{N}_\s.,;:!?'"()\[\]{}<>@#$%&*+=/\\|~^` + "`" + `–—-]`)
	// spaceRuns collapses runs of spaces and tabs.
	spaceRuns = regexp.MustCompile(`[ \t]+`)
	// blankLineRuns collapses three or more consecutive line breaks.
	blankLineRuns = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes extracted text: line endings, whitespace runs,
// disallowed characters, and excess blank lines. Applying it twice yields
// the same result as applying it once.
func CleanText(text string) string {
	// Normalize line endings first so the line-based rules see only \n.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = disallowedChars.ReplaceAllString(text, "")
	text = spaceRuns.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = blankLineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Validate attaches a quality verdict to cleaned text. Empty text, text
// under the minimum length, and text with too few printable characters are
// all rejected before downstream stages run.
func Validate(text string) types.ExtractedText {
	if text == "" {
		return types.ExtractedText{Valid: false, Reason: types.ReasonEmpty}
	}
	if len([]rune(text)) < minValidLength {
		return types.ExtractedText{Text: text, Valid: false, Reason: types.ReasonTooShort}
	}
	if printableRatio(text) < minPrintableRatio {
		return types.ExtractedText{Text: text, Valid: false, Reason: types.ReasonUnreadable}
	}
	return types.ExtractedText{Text: text, Valid: true}
}

// printableRatio returns the fraction of runes that are printable or
// whitespace.
func printableRatio(text string) float64 {
	runes := []rune(text)
	if len(runes) == 0 {
		return 0
	}
	printable := 0
	for _, r := range runes {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	return float64(printable) / float64(len(runes))
}
