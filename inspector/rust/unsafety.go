package rust

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/rustscan/inspector/metrics"
)

// walker tallies unsafe usage while traversing a parsed Rust tree. The
// insideUnsafe context travels as a call parameter, so the prior scope is
// restored structurally on return from each subtree.
type walker struct {
	src           []byte
	includeTests  bool
	counters      metrics.CounterBlock
	forbidsUnsafe bool
}

func newWalker(src []byte, includeTests bool) *walker {
	return &walker{src: src, includeTests: includeTests}
}

// walkFile processes the top-level item sequence of a source file. A root
// level #![forbid(unsafe_code)] sets the forbid flag; detection never
// suppresses counting, a forbid coexisting with unsafe items is reported
// as is.
func (w *walker) walkFile(root *sitter.Node) {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() == "inner_attribute_item" {
			if isForbidUnsafe(child, w.src) {
				w.forbidsUnsafe = true
			}
			continue
		}
		w.walkItem(child, false, false)
	}
}

// walkItem dispatches declaration-like nodes. insideUnsafe carries the
// enclosing unsafe context; inImpl marks members of impl or trait bodies so
// their functions count as methods.
func (w *walker) walkItem(node *sitter.Node, insideUnsafe, inImpl bool) {
	switch node.Type() {
	case "function_item", "function_signature_item":
		if !w.includeTests && isTestFn(node, w.src) {
			return
		}
		isUnsafe := hasUnsafeModifier(node)
		if inImpl {
			w.counters.Methods.Count(isUnsafe)
		} else {
			w.counters.Functions.Count(isUnsafe)
		}
		if body := node.ChildByFieldName("body"); body != nil {
			w.walkBlock(body, insideUnsafe || isUnsafe)
		}
	case "trait_item":
		w.counters.ItemTraits.Count(hasUnsafeModifier(node))
		if body := node.ChildByFieldName("body"); body != nil {
			w.walkItems(body, insideUnsafe, true)
		}
	case "impl_item":
		w.counters.ItemImpls.Count(hasUnsafeModifier(node))
		if body := node.ChildByFieldName("body"); body != nil {
			w.walkItems(body, insideUnsafe, true)
		}
	case "mod_item":
		if !w.includeTests && isTestMod(node, w.src) {
			return
		}
		// an inner-module forbid governs only that module; the file level
		// flag reflects the outermost annotation alone
		if body := node.ChildByFieldName("body"); body != nil {
			w.walkItems(body, insideUnsafe, false)
		}
	default:
		// static/const initializers and other declarations may still hold
		// blocks or unsafe blocks
		w.walkChildren(node, insideUnsafe)
	}
}

// walkItems visits every member of a declaration_list.
func (w *walker) walkItems(list *sitter.Node, insideUnsafe, inImpl bool) {
	for i := 0; i < int(list.NamedChildCount()); i++ {
		w.walkItem(list.NamedChild(i), insideUnsafe, inImpl)
	}
}

// walkBlock visits one block expression. Each statement-granularity child
// tallies once under Exprs against the current context; sub-expressions of a
// counted statement do not tally separately, while nested blocks resume
// counting for their own statements.
func (w *walker) walkBlock(block *sitter.Node, insideUnsafe bool) {
	for i := 0; i < int(block.NamedChildCount()); i++ {
		w.walkStatement(block.NamedChild(i), insideUnsafe)
	}
}

func (w *walker) walkStatement(node *sitter.Node, insideUnsafe bool) {
	switch node.Type() {
	case "expression_statement":
		// counting is decided on the wrapped expression
		if inner := node.NamedChild(0); inner != nil {
			w.walkStatement(inner, insideUnsafe)
		}
	case "unsafe_block":
		// the marker itself is not an expression occurrence; only its body
		// counts, and re-entering an already unsafe context changes nothing
		if body := namedChildOfType(node, "block"); body != nil {
			w.walkBlock(body, true)
		}
	case "block":
		w.walkBlock(node, insideUnsafe)
	case "function_item", "function_signature_item", "struct_item", "enum_item",
		"union_item", "type_item", "trait_item", "impl_item", "mod_item",
		"use_declaration", "const_item", "static_item", "macro_definition",
		"extern_crate_declaration", "foreign_mod_item":
		w.walkItem(node, insideUnsafe, false)
	case "empty_statement", "attribute_item", "inner_attribute_item", "label":
		// not executable
	case "let_declaration":
		w.counters.Exprs.Count(insideUnsafe)
		w.walkChildren(node, insideUnsafe)
	default:
		// bare paths and literals never count, so f(x) stays a single
		// expression occurrence rather than three
		if !isLeafExpr(node.Type()) {
			w.counters.Exprs.Count(insideUnsafe)
		}
		w.walkChildren(node, insideUnsafe)
	}
}

// walkNode descends into arbitrary expression content, tracking scope
// boundaries without counting until the next block is reached.
func (w *walker) walkNode(node *sitter.Node, insideUnsafe bool) {
	switch node.Type() {
	case "unsafe_block":
		if body := namedChildOfType(node, "block"); body != nil {
			w.walkBlock(body, true)
		}
	case "block":
		w.walkBlock(node, insideUnsafe)
	case "function_item", "function_signature_item", "struct_item", "enum_item",
		"union_item", "type_item", "trait_item", "impl_item", "mod_item",
		"use_declaration", "const_item", "static_item", "macro_definition",
		"extern_crate_declaration", "foreign_mod_item":
		w.walkItem(node, insideUnsafe, false)
	default:
		w.walkChildren(node, insideUnsafe)
	}
}

func (w *walker) walkChildren(node *sitter.Node, insideUnsafe bool) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		w.walkNode(node.NamedChild(i), insideUnsafe)
	}
}

// hasUnsafeModifier reports whether an item carries the `unsafe` keyword.
// For functions the keyword nests inside a function_modifiers node; for
// trait and impl items it is a direct child token.
func hasUnsafeModifier(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "unsafe":
			return true
		case "function_modifiers":
			for j := 0; j < int(child.ChildCount()); j++ {
				if child.Child(j).Type() == "unsafe" {
					return true
				}
			}
		}
	}
	return false
}

func namedChildOfType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == nodeType {
			return child
		}
	}
	return nil
}

func isLeafExpr(nodeType string) bool {
	switch nodeType {
	case "identifier", "scoped_identifier", "self", "super", "crate",
		"integer_literal", "float_literal", "string_literal",
		"raw_string_literal", "char_literal", "boolean_literal",
		"unit_expression", "line_comment", "block_comment":
		return true
	}
	return false
}
