package cypher

import "strings"

// ClauseAdapter bridges AST nodes with the Clause interface used by Query.
// Adapters form chains: each clause added with Then becomes a child of the
// previous one, and rendering an adapter renders its whole chain.
type ClauseAdapter struct {
	TreeNode
	Node Node
}

// NewClauseAdapter constructs a ClauseAdapter for a given node.
func NewClauseAdapter(n Node) *ClauseAdapter {
	return &ClauseAdapter{Node: n}
}

// Then appends n after c in the clause chain and returns the new link.
func (c *ClauseAdapter) Then(n Node) *ClauseAdapter {
	next := NewClauseAdapter(n)
	AddChild(c, next)
	return next
}

// BuildCypher compiles the AST node followed by every chained clause,
// registering parameters in q.
func (c *ClauseAdapter) BuildCypher(q *Query) string {
	compiler := NewCompilerFor(q)
	compiler.Compile(c.Node)

	var b strings.Builder
	b.WriteString(compiler.Output())
	for _, child := range c.children {
		next, ok := child.(Clause)
		if !ok {
			continue
		}
		if s := next.BuildCypher(q); s != "" {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(s)
		}
	}
	return b.String()
}

// Type returns the ClauseType of the underlying Node.
func (c *ClauseAdapter) Type() ClauseType {
	if typed, ok := c.Node.(interface{ Type() ClauseType }); ok {
		return typed.Type()
	}
	return UnknownClauseType
}
