package parse

import "github.com/dekarrin/ictiobus/grammar"

// Node is a parse-tree node: either a NodeTerm (a shifted token) or a
// NodeNonTerm (a reduced production and its children). Children, where
// present, are in grammar RHS order.
type Node interface {
	// Start returns the node's start position in the source input.
	Start() int

	// End returns the node's end position in the source input.
	End() int

	// Symbol returns the grammar symbol this node stands for: the token's
	// terminal for a NodeTerm, the production's LHS for a NodeNonTerm.
	Symbol() grammar.Symbol

	// LayoutContent returns the layout (whitespace/comment) text consumed
	// immediately before this node, if the layout sub-parser or default
	// whitespace skipping captured any.
	LayoutContent() string
}

// NodeTerm is a leaf parse-tree node produced by a shift.
type NodeTerm struct {
	StartPos, EndPos int
	Token            Token
	Layout           string
}

func (n *NodeTerm) Start() int             { return n.StartPos }
func (n *NodeTerm) End() int               { return n.EndPos }
func (n *NodeTerm) Symbol() grammar.Symbol { return n.Token.Symbol.Name }
func (n *NodeTerm) LayoutContent() string  { return n.Layout }

// NodeNonTerm is an interior parse-tree node produced by a reduce.
type NodeNonTerm struct {
	StartPos, EndPos int
	Production       grammar.Production
	Children         []Node
	Layout           string
}

func (n *NodeNonTerm) Start() int             { return n.StartPos }
func (n *NodeNonTerm) End() int               { return n.EndPos }
func (n *NodeNonTerm) Symbol() grammar.Symbol { return n.Production.LHS }
func (n *NodeNonTerm) LayoutContent() string  { return n.Layout }

// buildShiftNode constructs the NodeTerm the tree-building semantic dispatch
// yields for a shift.
func buildShiftNode(ctx *Context) Node {
	return &NodeTerm{
		StartPos: ctx.StartPosition,
		EndPos:   ctx.EndPosition,
		Token:    ctx.Token,
		Layout:   ctx.LayoutContent,
	}
}

// buildReduceNode constructs the NodeNonTerm the tree-building semantic
// dispatch yields for a reduce: start is the first child's start (or the
// reduction context's end if there are no children) and end is the last
// child's end (or the reduction context's end).
func buildReduceNode(ctx *Context, children []Node) Node {
	if len(children) == 0 {
		return &NodeNonTerm{
			StartPos:   ctx.StartPosition,
			EndPos:     ctx.EndPosition,
			Production: ctx.Production,
			Children:   children,
			Layout:     ctx.LayoutContent,
		}
	}
	return &NodeNonTerm{
		StartPos:   children[0].Start(),
		EndPos:     children[len(children)-1].End(),
		Production: ctx.Production,
		Children:   children,
		Layout:     ctx.LayoutContent,
	}
}
