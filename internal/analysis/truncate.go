package analysis

import "strings"

// TruncateLines keeps the first max newline-delimited lines of text. The kept prefix
// is returned byte-for-byte; the terminator of the last kept line is dropped. Text
// with max lines or fewer is returned unchanged. A non-positive max keeps everything.
func TruncateLines(text string, max int) string {
	if max <= 0 {
		return text
	}
	end := 0
	for n := 0; n < max; n++ {
		i := strings.IndexByte(text[end:], '\n')
		if i < 0 {
			return text
		}
		end += i + 1
	}
	if end == len(text) {
		return text
	}
	kept := text[:end-1]
	return strings.TrimSuffix(kept, "\r")
}

// CountLines returns the number of newline-delimited lines in text. A trailing
// newline does not start a new line.
func CountLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}

// ExceedsLimit reports whether text would be cut by TruncateLines(text, MaxLines).
func ExceedsLimit(text string) bool {
	return TruncateLines(text, MaxLines) != text
}
