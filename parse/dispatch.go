package parse

import "github.com/dekarrin/ictiobus/grammar"

// callShiftAction computes the semantic value produced by a shift: a tree
// node in tree mode, else the resolved terminal action applied to the
// token's value, else the raw matched value if no action is registered.
func (p *Parser) callShiftAction(ctx *Context) interface{} {
	actions := p.actionsFor()
	actionName := ctx.Token.Symbol.ActionName
	fn, hasFn := actions.resolveTerminal(actionName)

	if p.opts.BuildTree {
		if p.opts.CallActionsDuringTreeBuild && hasFn {
			fn(ctx, ctx.Token.Value)
		}
		return buildShiftNode(ctx)
	}

	if hasFn {
		return fn(ctx, ctx.Token.Value)
	}
	return ctx.Token.Value
}

// callReduceAction computes the semantic value produced by a reduce.
func (p *Parser) callReduceAction(ctx *Context, subresults []interface{}) interface{} {
	actions := p.actionsFor()
	production := ctx.Production

	var treeNode interface{}
	if p.opts.BuildTree {
		children := make([]Node, 0, len(subresults))
		for _, sr := range subresults {
			if n, ok := sr.(Node); ok {
				children = append(children, n)
			}
		}
		treeNode = buildReduceNode(ctx, children)
		if !p.opts.CallActionsDuringTreeBuild {
			return treeNode
		}
	}

	fn, hasFn := actions.resolveProduction(production.ActionName)
	var result interface{}
	if hasFn {
		result = fn(ctx, subresults, assignmentArgs(production, subresults))
	} else if len(subresults) == 1 {
		result = subresults[0]
	} else {
		result = subresults
	}

	if treeNode != nil {
		return treeNode
	}
	return result
}

func (p *Parser) actionsFor() *Actions {
	return p.opts.Actions
}

// assignmentArgs builds the named-assignment keyword-argument map a
// production's action receives alongside its positional children, per
// grammar.Assignment.Op.
func assignmentArgs(prod grammar.Production, subresults []interface{}) map[string]interface{} {
	if len(prod.Assignments) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(prod.Assignments))
	for _, a := range prod.Assignments {
		if a.RHSIdx < 0 || a.RHSIdx >= len(subresults) {
			continue
		}
		if a.Op == grammar.AssignPresence {
			out[a.Name] = truthy(subresults[a.RHSIdx])
		} else {
			out[a.Name] = subresults[a.RHSIdx]
		}
	}
	return out
}

func truthy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	return true
}

// CallActions offline-reproduces the semantic dispatch that action mode
// would have performed while parsing, walking a tree built with build_tree
// bottom-up and left-to-right. Pass the same *Context fields (FileName,
// InputStr) the tree was parsed with so error locations stay meaningful; a
// nil ctx is fine for trees whose actions don't need them.
func (p *Parser) CallActions(node Node, ctx *Context) interface{} {
	if ctx == nil {
		ctx = &Context{}
	}
	ctx.Parser = p
	return p.callActionsInner(node, ctx)
}

func (p *Parser) callActionsInner(node Node, ctx *Context) interface{} {
	actions := p.actionsFor()

	switch n := node.(type) {
	case *NodeTerm:
		setCallActionsContext(ctx, n)
		fn, ok := actions.resolveTerminal(n.Token.Symbol.ActionName)
		if ok {
			return fn(ctx, n.Token.Value)
		}
		return n.Token.Value
	case *NodeNonTerm:
		subresults := make([]interface{}, len(n.Children))
		for i := 0; i < len(n.Children); i++ {
			subresults[i] = p.callActionsInner(n.Children[i], ctx)
		}
		setCallActionsContext(ctx, n)
		fn, ok := actions.resolveProduction(n.Production.ActionName)
		if ok {
			return fn(ctx, subresults, assignmentArgs(n.Production, subresults))
		}
		if len(subresults) == 1 {
			return subresults[0]
		}
		return subresults
	default:
		return nil
	}
}

func setCallActionsContext(ctx *Context, node Node) {
	ctx.StartPosition = node.Start()
	ctx.EndPosition = node.End()
	ctx.Node = node
	ctx.LayoutContent = node.LayoutContent()
	ctx.HasProduction = false
	if nt, ok := node.(*NodeNonTerm); ok {
		ctx.Production = nt.Production
		ctx.HasProduction = true
	}
}
