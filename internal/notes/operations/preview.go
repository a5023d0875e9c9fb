package operations

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const previewBlocks = 2

// Preview renders the first blocks of markdown-ish note content as a single
// line of plain text, truncated to maxLen runes (0 means no limit).
func Preview(content string, maxLen int) string {
	source := []byte(content)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var preview strings.Builder
	blocks := 0

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindParagraph, ast.KindHeading, ast.KindTextBlock:
			if blocks >= previewBlocks {
				return ast.WalkStop, nil
			}
			var raw strings.Builder
			inlineText(n, source, &raw)
			line := strings.Join(strings.Fields(raw.String()), " ")
			if line != "" {
				if preview.Len() > 0 {
					preview.WriteString(" ")
				}
				preview.WriteString(line)
				blocks++
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	out := []rune(preview.String())
	if maxLen > 3 && len(out) > maxLen {
		return string(out[:maxLen-3]) + "..."
	}
	return string(out)
}

func inlineText(n ast.Node, source []byte, b *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Value(source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		default:
			inlineText(c, source, b)
		}
	}
}
