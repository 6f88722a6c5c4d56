package source

import "strings"

// LineMetrics holds raw line counts for one file.
type LineMetrics struct {
	Total   int `json:"total"`
	Code    int `json:"code"`
	Comment int `json:"comment"`
	Blank   int `json:"blank"`
}

// CommentRatio returns comment lines over total lines, 0 for empty input.
func (m LineMetrics) CommentRatio() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(m.Comment) / float64(m.Total)
}

// commentPrefixes are the line-prefix tokens that classify a line as a
// comment. This is deliberately approximate: a line inside a multi-line
// string starting with one of these tokens is misclassified. The trade-off
// buys language-agnostic counting without parsing.
var commentPrefixes = []string{"//", "#", "*", "/*", "--"}

// IsCommentLine reports whether a trimmed line looks like a comment.
func IsCommentLine(trimmed string) bool {
	for _, p := range commentPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// CountLines classifies each line of content as code, comment, or blank.
// Empty input returns all-zero counts; there is no error path.
func CountLines(content string) LineMetrics {
	if content == "" {
		return LineMetrics{}
	}

	var m LineMetrics
	for _, line := range SplitLines(content) {
		m.Total++
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			m.Blank++
		case IsCommentLine(trimmed):
			m.Comment++
		default:
			m.Code++
		}
	}
	return m
}

// SplitLines splits content into lines, tolerating CRLF endings. A trailing
// newline does not produce a phantom empty line.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// NonBlankCount returns the number of non-blank lines.
func NonBlankCount(lines []string) int {
	n := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
