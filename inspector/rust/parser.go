package rust

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// SyntaxError describes the first point where the grammar could not be
// matched. Line is 1-based, Column and Offset are 0-based byte positions.
type SyntaxError struct {
	Offset  uint32
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d (offset %d): %s", e.Line, e.Column, e.Offset, e.Message)
}

// parseSource parses Rust source text into a syntax tree. Malformed input
// yields a *SyntaxError and no tree; no partial result is ever returned.
func parseSource(ctx context.Context, src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	root := tree.RootNode()
	if root.HasError() {
		if syntaxErr := firstSyntaxError(root, src, 0); syntaxErr != nil {
			return nil, syntaxErr
		}
		return nil, &SyntaxError{Message: "malformed source"}
	}
	return tree, nil
}

// Bound recursion on heavily malformed input
const maxErrorDepth = 1000

// firstSyntaxError locates the first ERROR or MISSING node, depth-first.
func firstSyntaxError(node *sitter.Node, src []byte, depth int) *SyntaxError {
	if depth > maxErrorDepth {
		return nil
	}
	if node.IsError() || node.IsMissing() {
		point := node.StartPoint()
		message := "unexpected token"
		if node.IsMissing() {
			message = fmt.Sprintf("missing %q", node.Type())
		} else if snippet := errorSnippet(node, src); snippet != "" {
			message = fmt.Sprintf("unexpected %q", snippet)
		}
		return &SyntaxError{
			Offset:  node.StartByte(),
			Line:    int(point.Row) + 1,
			Column:  int(point.Column),
			Message: message,
		}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := firstSyntaxError(node.Child(i), src, depth+1); found != nil {
			return found
		}
	}
	return nil
}

func errorSnippet(node *sitter.Node, src []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if end > uint32(len(src)) {
		end = uint32(len(src))
	}
	if end <= start || end-start > 40 {
		return ""
	}
	return string(src[start:end])
}
