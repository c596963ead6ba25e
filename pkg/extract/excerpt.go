package extract

import "strings"

// Excerpt returns a bounded prefix of text suitable for prompt context.
// It cuts on sentence boundaries where possible and never exceeds maxLen.
func Excerpt(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}

	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var b strings.Builder
	for _, sentence := range sentences {
		// +2 accounts for the ". " separator appended below.
		if b.Len()+len(sentence)+2 > maxLen {
			break
		}
		b.WriteString(sentence)
		b.WriteString(". ")
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		// Single run longer than the limit; fall back to a hard cut.
		return text[:maxLen]
	}
	return out
}
