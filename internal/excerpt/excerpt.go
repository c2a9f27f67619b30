// Package excerpt trims memory content to fit a retrieval budget,
// preferring markdown block boundaries over mid-sentence cuts.
package excerpt

import (
	"strings"
)

const ellipsis = "..."

// Clip returns at most maxChars characters of text. When text must be
// cut, whole blocks (headings, paragraphs) are kept in order until the
// budget runs out; if not even the first block fits, the cut falls on
// a word boundary. Clipped output ends with an ellipsis.
func Clip(text string, maxChars int) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxChars {
		return text
	}
	if maxChars <= len(ellipsis) {
		return ""
	}
	budget := maxChars - len(ellipsis)

	var b strings.Builder
	for _, blk := range blocks(text) {
		need := len(blk)
		if b.Len() > 0 {
			need += 2
		}
		if b.Len()+need > budget {
			break
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(blk)
	}
	if b.Len() == 0 {
		return wordCut(text, budget) + ellipsis
	}
	return b.String() + ellipsis
}

// blocks splits text on heading lines and blank lines.
func blocks(text string) []string {
	lines := strings.Split(text, "\n")
	var out []string
	var cur []string

	flush := func() {
		if len(cur) == 0 {
			return
		}
		t := strings.TrimSpace(strings.Join(cur, "\n"))
		if t != "" {
			out = append(out, t)
		}
		cur = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			flush()
		}
		if trimmed == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()

	return out
}

// wordCut truncates at the last space inside budget, unless that would
// throw away more than half of it.
func wordCut(text string, budget int) string {
	cut := text[:budget]
	if i := strings.LastIndexByte(cut, ' '); i > budget/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut)
}
