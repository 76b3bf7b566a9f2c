// Package markup renders the small subset of inline formatting the chat
// assistant uses: spans wrapped in double asterisks are emphasized,
// everything else is plain text.
package markup

import (
	"html"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const marker = "**"

var boldPattern = regexp.MustCompile(`\*\*.*?\*\*`)

// policy strips anything but the elements Render emits.
var policy = bluemonday.NewPolicy().AllowElements("strong", "span")

// Segment is one run of text with uniform emphasis.
type Segment struct {
	Text string
	Bold bool
}

// Parse splits text into plain and emphasized segments. A delimited span
// only counts as emphasis when it is at least one marker pair long;
// unmatched markers stay in the plain text.
func Parse(text string) []Segment {
	if text == "" {
		return nil
	}

	var segments []Segment
	last := 0
	for _, loc := range boldPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Text: text[last:loc[0]]})
		}
		part := text[loc[0]:loc[1]]
		if len(part) >= 2*len(marker) && strings.HasPrefix(part, marker) && strings.HasSuffix(part, marker) {
			segments = append(segments, Segment{Text: part[len(marker) : len(part)-len(marker)], Bold: true})
		} else {
			segments = append(segments, Segment{Text: part})
		}
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// Render returns escaped HTML for text with emphasized spans wrapped in
// <strong>.
func Render(text string) template.HTML {
	segments := Parse(text)
	if len(segments) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<span>")
	for _, seg := range segments {
		escaped := html.EscapeString(seg.Text)
		if seg.Bold {
			b.WriteString("<strong>")
			b.WriteString(escaped)
			b.WriteString("</strong>")
			continue
		}
		b.WriteString(escaped)
	}
	b.WriteString("</span>")

	return template.HTML(policy.Sanitize(b.String())) //nolint:gosec // sanitized above
}
