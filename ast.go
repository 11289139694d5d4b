package hunkgrep

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type CodeBlock struct {
	Lang    string
	Content string
}

func ExtractCodeBlocks(source []byte) ([]CodeBlock, error) {
	var blocks []CodeBlock
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fencedCodeBlock, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var block CodeBlock
		block.Lang = string(fencedCodeBlock.Language(source))

		var content bytes.Buffer
		lines := fencedCodeBlock.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			content.Write(line.Value(source))
		}
		block.Content = content.String()

		blocks = append(blocks, block)
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}

	return blocks, nil
}

// ExtractDiffText joins the diff and patch fenced blocks of a markdown
// document into one diff stream, in document order.
func ExtractDiffText(source []byte) (string, error) {
	blocks, err := ExtractCodeBlocks(source)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range blocks {
		if block.Lang != "diff" && block.Lang != "patch" {
			continue
		}
		b.WriteString(block.Content)
		if !strings.HasSuffix(block.Content, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
