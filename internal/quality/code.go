package quality

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// codeBlock is a fenced code block found in the document.
type codeBlock struct {
	Language string
	Line     int
}

func (c *Checker) codeBlocks(src []byte) []codeBlock {
	doc := c.md.Parser().Parse(text.NewReader(src))

	var blocks []codeBlock
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		b := codeBlock{Language: string(fcb.Language(src))}
		if fcb.Info != nil {
			b.Line = lineOf(src, fcb.Info.Segment.Start)
		} else if fcb.Lines().Len() > 0 {
			b.Line = lineOf(src, fcb.Lines().At(0).Start) - 1
		}
		blocks = append(blocks, b)
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

func lineOf(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	return bytes.Count(src[:offset], []byte("\n")) + 1
}

func (c *Checker) checkCode(r *Report, text string) {
	blocks := c.codeBlocks([]byte(text))
	r.CodeBlocks = len(blocks)

	if c.rules.RequireCodeLanguage {
		for _, b := range blocks {
			if b.Language == "" {
				r.add(CategoryCode, b.Line, "code block has no language")
			}
		}
	}
	if c.rules.MinCodeExamples > 0 && len(blocks) < c.rules.MinCodeExamples {
		r.add(CategoryCode, 0, "too few code examples: %d < %d", len(blocks), c.rules.MinCodeExamples)
	}
}
