package readme

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Summary is what a README says about itself.
type Summary struct {
	// Title is the text of the first heading.
	Title string
	// Abstract is the first top-level paragraph.
	Abstract string
	// Sections lists every heading in document order.
	Sections []string
}

// Summarize walks the markdown AST of content.
func Summarize(content string) (Summary, error) {
	var summary Summary
	source := []byte(content)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := plainText(n, source)
			if summary.Title == "" {
				summary.Title = heading
			}
			summary.Sections = append(summary.Sections, heading)
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if summary.Abstract == "" && n.Parent() == root {
				summary.Abstract = plainText(n, source)
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

// plainText concatenates the text segments under n, dropping markup such as
// emphasis and link targets, and folds soft line breaks into spaces.
func plainText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(buf.String()), " ")
}
