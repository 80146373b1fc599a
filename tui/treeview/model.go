// Package treeview is an interactive parse tree navigator with vim-style
// folding and navigation.
package treeview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/gram/parser"
	"github.com/grovetools/gram/tokenizer"
	"github.com/grovetools/gram/tui/theme"
)

const maxValueLen = 40

// sequenceTimeout bounds two-key sequences like gg and zR.
const sequenceTimeout = 500 * time.Millisecond

// node is one element in the flattened parse tree.
type node struct {
	tree      *parser.Tree
	depth     int
	children  []*node
	collapsed bool
}

// Model is the Bubble Tea model for the parse tree viewer.
type Model struct {
	filename string
	code     string
	tokens   []tokenizer.Token

	viewport  viewport.Model
	root      *node
	visible   []*node // flattened list of visible nodes for rendering
	cursor    int
	keys      KeyMap
	width     int
	height    int
	ready     bool
	lastZ     time.Time // for detecting zR/zM sequences
	lastG     time.Time // for detecting gg
}

// New creates a viewer for a parse tree. Tokens and code are needed to
// show source text on leaf nodes.
func New(filename string, tree *parser.Tree, tokens []tokenizer.Token, code string) *Model {
	m := &Model{
		filename: filename,
		code:     code,
		tokens:   tokens,
		keys:     DefaultKeyMap(),
	}
	if tree != nil {
		m.root = buildNode(tree, 0)
		m.visible = flatten(m.root)
	}
	return m
}

// buildNode mirrors the parse tree as view nodes. Everything starts
// expanded: parse trees are usually shallow enough, and zM collapses.
func buildNode(tree *parser.Tree, depth int) *node {
	n := &node{tree: tree, depth: depth}
	for _, child := range tree.Children {
		n.children = append(n.children, buildNode(child, depth+1))
	}
	return n
}

func flatten(root *node) []*node {
	if root == nil {
		return nil
	}
	var out []*node
	var walk func(*node)
	walk = func(n *node) {
		out = append(out, n)
		if n.collapsed {
			return
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(root)
	return out
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height - 2 // status line + help line
		if !m.ready {
			m.viewport = viewport.New(m.width, m.height)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = m.height
		}
		m.refresh()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.HalfPageUp):
		m.moveCursor(-m.height / 2)

	case key.Matches(msg, m.keys.HalfPageDown):
		m.moveCursor(m.height / 2)

	case key.Matches(msg, m.keys.GotoTop):
		if time.Since(m.lastG) < sequenceTimeout {
			m.cursor = 0
			m.lastG = time.Time{}
		} else {
			m.lastG = time.Now()
		}
		m.refresh()

	case key.Matches(msg, m.keys.GotoEnd):
		m.cursor = len(m.visible) - 1
		m.refresh()

	case key.Matches(msg, m.keys.FoldPrefix):
		m.lastZ = time.Now()

	case key.Matches(msg, m.keys.ExpandAll) && time.Since(m.lastZ) < sequenceTimeout:
		m.setCollapsedAll(m.root, false)
		m.refresh()

	case key.Matches(msg, m.keys.CollapseAll) && time.Since(m.lastZ) < sequenceTimeout:
		m.setCollapsedAll(m.root, true)
		m.root.collapsed = false // keep the root visible and open
		m.cursor = 0
		m.refresh()

	case key.Matches(msg, m.keys.Toggle):
		if n := m.current(); n != nil && len(n.children) > 0 {
			n.collapsed = !n.collapsed
			m.refresh()
		}

	case key.Matches(msg, m.keys.Fold):
		if n := m.current(); n != nil {
			if len(n.children) > 0 && !n.collapsed {
				n.collapsed = true
			} else if parent := m.parentOf(n); parent != nil {
				parent.collapsed = true
				m.cursorTo(parent)
			}
			m.refresh()
		}
	}

	return m, nil
}

func (m *Model) current() *node {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.cursor]
}

func (m *Model) parentOf(target *node) *node {
	var found *node
	var walk func(*node)
	walk = func(n *node) {
		for _, child := range n.children {
			if child == target {
				found = n
				return
			}
			walk(child)
		}
	}
	if m.root != nil {
		walk(m.root)
	}
	return found
}

func (m *Model) cursorTo(target *node) {
	for i, n := range m.visible {
		if n == target {
			m.cursor = i
			return
		}
	}
}

func (m *Model) setCollapsedAll(n *node, collapsed bool) {
	if n == nil {
		return
	}
	if len(n.children) > 0 {
		n.collapsed = collapsed
	}
	for _, child := range n.children {
		m.setCollapsedAll(child, collapsed)
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.visible = flatten(m.root)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if !m.ready {
		return
	}

	var b strings.Builder
	for i, n := range m.visible {
		line := m.renderNode(n)
		if i == m.cursor {
			line = theme.DefaultTheme.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
	m.scrollToCursor()
}

func (m *Model) scrollToCursor() {
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Model) renderNode(n *node) string {
	t := theme.DefaultTheme
	indent := strings.Repeat("  ", n.depth)

	marker := "  "
	if len(n.children) > 0 {
		if n.collapsed {
			marker = t.Muted.Render("▸ ")
		} else {
			marker = t.Muted.Render("▾ ")
		}
	}

	label := t.Symbol.Render(string(n.tree.Type))
	if len(n.tree.Children) == 0 {
		value := n.tree.Value(m.tokens, m.code)
		if len(value) > maxValueLen {
			value = value[:maxValueLen] + "..."
		}
		label = t.Terminal.Render(string(n.tree.Type)) + " " + t.Value.Render(fmt.Sprintf("%q", value))
	}
	if n.collapsed {
		label += t.Muted.Render(fmt.Sprintf(" (%d children)", len(n.children)))
	}

	return indent + marker + label
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	t := theme.DefaultTheme
	status := t.Header.Render(m.filename) +
		t.Muted.Render(fmt.Sprintf("  %d nodes", len(m.visible)))
	help := t.Muted.Render("j/k move · space toggle · h fold · zR/zM all · q quit")

	return status + "\n" + m.viewport.View() + "\n" + help
}
