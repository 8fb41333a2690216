package tools

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// cleanText turns upstream rich text into plain text: markup is dropped,
// entities are decoded, control characters other than newline and tab are
// removed and runs of blank space are collapsed.
func cleanText(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsAny(s, "<&") {
		s = stripMarkup(s)
	}
	s = stripControl(s)
	return collapseSpace(s)
}

// stripMarkup keeps only the text tokens of an HTML fragment. Block-level
// breaks become newlines so paragraphs stay apart.
func stripMarkup(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input: keep what was read so far.
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "br", "p", "li", "div", "h1", "h2", "h3", "h4", "tr":
				b.WriteByte('\n')
			}
		}
	}
}

func stripControl(s string) string {
	clean := true
	for _, r := range s {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t'
}

// collapseSpace trims every line, squeezes inner spaces and drops empty lines.
func collapseSpace(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
