// Package format turns the constrained Markdown emitted by the model into
// HTML for the chat panel. Each line is classified once, then rendered;
// nothing is re-scanned after markup has been added.
package format

import (
	"html"
	"regexp"
	"strings"
)

// Kind is the construct a line was classified as.
type Kind int

const (
	KindPlain Kind = iota
	KindBlank
	KindHeader2
	KindHeader1
	KindBold
	KindBullet
	KindCallout
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindHeader2:
		return "header2"
	case KindHeader1:
		return "header1"
	case KindBold:
		return "bold"
	case KindBullet:
		return "bullet"
	case KindCallout:
		return "callout"
	default:
		return "plain"
	}
}

// Line is one classified input line. Text has the construct's marker
// stripped (header hashes, bullet symbol) but is otherwise literal.
type Line struct {
	Kind Kind
	Text string
}

// RoutineTitle heads every rendered routine.
const RoutineTitle = "✨ Your Daily Beauty Routine ✨"

var (
	header2Prefix = regexp.MustCompile(`^##\s*`)
	header1Prefix = regexp.MustCompile(`^#\s*`)
	bulletPrefix  = regexp.MustCompile(`^[-•]\s*`)
	boldSpan      = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// Classify assigns exactly one Kind to a line. Precedence: header2,
// header1, bold, bullet, callout, plain.
func Classify(raw string) Line {
	line := strings.TrimSpace(raw)
	lower := strings.ToLower(line)
	switch {
	case line == "":
		return Line{Kind: KindBlank}
	case strings.HasPrefix(line, "##"):
		return Line{Kind: KindHeader2, Text: header2Prefix.ReplaceAllString(line, "")}
	case strings.HasPrefix(line, "#"):
		return Line{Kind: KindHeader1, Text: header1Prefix.ReplaceAllString(line, "")}
	case strings.Contains(line, "**"):
		return Line{Kind: KindBold, Text: line}
	case strings.HasPrefix(line, "-"), strings.HasPrefix(line, "•"):
		return Line{Kind: KindBullet, Text: bulletPrefix.ReplaceAllString(line, "")}
	case strings.Contains(lower, "quick highlight"), strings.Contains(lower, "pro tip"):
		return Line{Kind: KindCallout, Text: line}
	default:
		return Line{Kind: KindPlain, Text: line}
	}
}

// Parse classifies every line of text and drops blank lines.
func Parse(text string) []Line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []Line
	for _, raw := range strings.Split(text, "\n") {
		l := Classify(raw)
		if l.Kind == KindBlank {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Render produces HTML for classified lines. Line text is escaped before
// any markup is added.
func Render(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		text := html.EscapeString(l.Text)
		switch l.Kind {
		case KindHeader2:
			b.WriteString("<h3>" + text + "</h3>")
		case KindHeader1:
			b.WriteString("<h2>" + text + "</h2>")
		case KindBold:
			b.WriteString("<p>" + strong(text) + "</p>")
		case KindBullet:
			b.WriteString(`<p class="bullet">• ` + text + "</p>")
		case KindCallout:
			b.WriteString(`<h3 class="callout">💡 ` + text + "</h3>")
		case KindBlank:
		default:
			b.WriteString("<p>" + text + "</p>")
		}
	}
	return b.String()
}

// strong converts complete **pairs**; an unmatched marker stays literal.
func strong(escaped string) string {
	return boldSpan.ReplaceAllString(escaped, "<strong>$1</strong>")
}

// Format renders model text as HTML. It never fails.
func Format(text string) string {
	return Render(Parse(text))
}

// RoutineHTML renders a generated routine under the routine title.
func RoutineHTML(text string) string {
	return "<h2>" + RoutineTitle + "</h2><hr>" + Format(text)
}
