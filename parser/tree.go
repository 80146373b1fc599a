package parser

import (
	"github.com/grovetools/gram/tokenizer"
)

// Tree is a node in a parse tree. TokenOffset and TokenCount describe the
// span of the token slice this node covers. A node with an empty Type is an
// untyped structural node produced by concatenation, repetition or choice;
// pruning removes these before a tree is returned to callers.
type Tree struct {
	TokenOffset int       `json:"token_offset"`
	TokenCount  int       `json:"token_count"`
	Type        TokenType `json:"type,omitempty"`
	Children    []*Tree   `json:"children,omitempty"`
}

// Value returns the source text covered by this node.
func (t *Tree) Value(tokens []tokenizer.Token, code string) string {
	if t.TokenCount == 0 {
		return ""
	}

	first := tokens[t.TokenOffset]
	last := tokens[t.TokenOffset+t.TokenCount-1]
	return code[first.Offset : last.Offset+last.Length]
}

// ByteOffset returns the byte offset in the source of the first token this
// node covers, or len(code) for an empty node at the end of input.
func (t *Tree) ByteOffset(tokens []tokenizer.Token, code string) int {
	if t.TokenOffset >= len(tokens) {
		return len(code)
	}
	return tokens[t.TokenOffset].Offset
}

// Child returns the i-th child, or nil if out of range. Convenient for
// destructuring trees after pruning.
func (t *Tree) Child(i int) *Tree {
	if i < 0 || i >= len(t.Children) {
		return nil
	}
	return t.Children[i]
}

// ChildrenOfType returns the direct children with the given type.
func (t *Tree) ChildrenOfType(typ TokenType) []*Tree {
	var out []*Tree
	for _, child := range t.Children {
		if child.Type == typ {
			out = append(out, child)
		}
	}
	return out
}

// FirstOfType returns the first direct child with the given type, or nil.
func (t *Tree) FirstOfType(typ TokenType) *Tree {
	for _, child := range t.Children {
		if child.Type == typ {
			return child
		}
	}
	return nil
}

// Walk calls fn for this node and every descendant, depth-first. Walking
// stops early if fn returns false.
func (t *Tree) Walk(fn func(*Tree) bool) bool {
	if !fn(t) {
		return false
	}
	for _, child := range t.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Equal reports structural equality of two trees.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.TokenOffset != other.TokenOffset ||
		t.TokenCount != other.TokenCount ||
		t.Type != other.Type ||
		len(t.Children) != len(other.Children) {
		return false
	}
	for i := range t.Children {
		if !t.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
