package treeview

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/gram/parser"
)

func sampleTree() *parser.Tree {
	return &parser.Tree{
		Type: "ROOT", TokenCount: 3,
		Children: []*parser.Tree{
			{Type: "A", TokenOffset: 0, TokenCount: 1},
			{Type: "B", TokenOffset: 1, TokenCount: 2, Children: []*parser.Tree{
				{Type: "C", TokenOffset: 1, TokenCount: 1},
				{Type: "D", TokenOffset: 2, TokenCount: 1},
			}},
		},
	}
}

func TestFlatten(t *testing.T) {
	m := New("t.txt", sampleTree(), nil, "")
	require.Len(t, m.visible, 5)

	// Collapsing B hides C and D.
	m.visible[2].collapsed = true
	m.refresh()
	assert.Len(t, m.visible, 3)

	m.visible[2].collapsed = false
	m.refresh()
	assert.Len(t, m.visible, 5)
}

func TestSetCollapsedAll(t *testing.T) {
	m := New("t.txt", sampleTree(), nil, "")

	m.setCollapsedAll(m.root, true)
	m.root.collapsed = false
	m.refresh()

	// Root stays open, B is folded.
	assert.Len(t, m.visible, 3)
}

func TestParentOf(t *testing.T) {
	m := New("t.txt", sampleTree(), nil, "")

	c := m.visible[3]
	parent := m.parentOf(c)
	require.NotNil(t, parent)
	assert.Equal(t, parser.TokenType("B"), parent.tree.Type)
	assert.Nil(t, m.parentOf(m.root))
}

func TestNewNilTree(t *testing.T) {
	m := New("t.txt", nil, nil, "")
	assert.Empty(t, m.visible)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFoldKeySequences(t *testing.T) {
	m := New("t.txt", sampleTree(), nil, "")

	m.handleKey(keyMsg("z"))
	m.handleKey(keyMsg("M"))
	assert.Len(t, m.visible, 3)

	m.handleKey(keyMsg("z"))
	m.handleKey(keyMsg("R"))
	assert.Len(t, m.visible, 5)

	// R and M without a preceding z do nothing.
	fresh := New("t.txt", sampleTree(), nil, "")
	fresh.handleKey(keyMsg("M"))
	assert.Len(t, fresh.visible, 5)
}

func TestGotoKeySequences(t *testing.T) {
	m := New("t.txt", sampleTree(), nil, "")

	m.handleKey(keyMsg("G"))
	assert.Equal(t, 4, m.cursor)

	// A single g arms the sequence but does not move.
	m.handleKey(keyMsg("g"))
	assert.Equal(t, 4, m.cursor)

	m.handleKey(keyMsg("g"))
	assert.Equal(t, 0, m.cursor)
}
