package rust

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// attributeText returns the attribute content with whitespace removed so that
// `#![forbid( unsafe_code )]` and `#![forbid(unsafe_code)]` compare equal.
func attributeText(node *sitter.Node, src []byte) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, node.Content(src))
}

// isForbidUnsafe reports whether an attribute declares forbid(unsafe_code).
func isForbidUnsafe(node *sitter.Node, src []byte) bool {
	return strings.Contains(attributeText(node, src), "forbid(unsafe_code)")
}

// hasOuterAttribute checks the attribute_item siblings directly preceding an
// item for the given content fragment. The Rust grammar attaches outer
// attributes as siblings of the item they decorate, not as children.
func hasOuterAttribute(node *sitter.Node, src []byte, fragment string) bool {
	for prev := node.PrevNamedSibling(); prev != nil; prev = prev.PrevNamedSibling() {
		switch prev.Type() {
		case "attribute_item":
			if strings.Contains(attributeText(prev, src), fragment) {
				return true
			}
		case "line_comment", "block_comment":
			// comments may sit between an attribute and its item
		default:
			return false
		}
	}
	return false
}

// isTestFn reports whether a function carries a #[test] attribute.
func isTestFn(node *sitter.Node, src []byte) bool {
	return hasOuterAttribute(node, src, "#[test]")
}

// isTestMod reports whether a module is decorated with #[cfg(test)].
func isTestMod(node *sitter.Node, src []byte) bool {
	return hasOuterAttribute(node, src, "cfg(test)")
}
