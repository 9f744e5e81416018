package ai

// truncationSuffix matches what users of the original bot saw.
const truncationSuffix = "...(response truncated)"

// TruncateResponse caps text at maxLen characters. The cut is made on a
// rune boundary, never inside a multi-byte sequence. A text exactly at
// the limit is returned unmodified.
func TruncateResponse(text string, maxLen int) string {
	if maxLen <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + truncationSuffix
}
