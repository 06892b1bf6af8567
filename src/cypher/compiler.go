package cypher

import (
	"fmt"
	"strings"
)

// Compiler walks the AST and builds Cypher output. Parameters are
// registered in the Query the compiler is bound to.
type Compiler struct {
	output      strings.Builder
	query       *Query
	firstClause bool
}

// NewCompiler creates a compiler with its own parameter registry.
func NewCompiler() *Compiler {
	return NewCompilerFor(NewQuery())
}

// NewCompilerFor creates a compiler that registers parameters into q.
func NewCompilerFor(q *Query) *Compiler {
	if q == nil {
		q = NewQuery()
	}
	return &Compiler{query: q, firstClause: true}
}

// Output returns the compiled query string.
func (c *Compiler) Output() string { return c.output.String() }

// Parameters returns the parameters registered so far.
func (c *Compiler) Parameters() map[string]interface{} { return c.query.Parameters() }

// Compile compiles one or more AST nodes.
func (c *Compiler) Compile(nodes ...Node) (string, map[string]interface{}) {
	for _, n := range nodes {
		if !c.firstClause {
			c.output.WriteByte('\n')
		}
		n.Accept(c)
		c.firstClause = false
	}
	return c.output.String(), c.Parameters()
}

func (c *Compiler) registerParameter(val interface{}) string {
	return c.query.RegisterParameter(val)
}

// VisitLiteralNode renders a literal value.
func (c *Compiler) VisitLiteralNode(n *LiteralNode) error {
	c.output.WriteString("$" + c.registerParameter(n.Value))
	return nil
}

// helper to render expressions or raw values
func (c *Compiler) renderExpression(expr interface{}) {
	switch v := expr.(type) {
	case Expression:
		c.output.WriteString(v.BuildCypher(c.query))
	case Node:
		v.Accept(c)
	case string:
		c.output.WriteString(v)
	case []interface{}:
		c.output.WriteString(c.formatArrayLiteral(v))
	default:
		c.VisitLiteralNode(&LiteralNode{Value: v})
	}
}

func (c *Compiler) formatArrayLiteral(arr []interface{}) string {
	parts := make([]string, len(arr))
	for i, el := range arr {
		switch v := el.(type) {
		case string:
			parts[i] = fmt.Sprintf("'%s'", v)
		case []interface{}:
			parts[i] = c.formatArrayLiteral(v)
		case Expression:
			parts[i] = v.BuildCypher(c.query)
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (c *Compiler) renderList(items []interface{}) {
	for i, item := range items {
		if i > 0 {
			c.output.WriteString(", ")
		}
		c.renderExpression(item)
	}
}

func (c *Compiler) renderConditions(conds []Expression) {
	for i, cond := range conds {
		if i > 0 {
			c.output.WriteString(" AND ")
		}
		c.renderExpression(cond)
	}
}

// VisitMatchNode handles MATCH clauses
func (c *Compiler) VisitMatchNode(n *MatchNode) error {
	if n.Optional {
		c.output.WriteString("OPTIONAL ")
	}
	c.output.WriteString("MATCH ")
	c.renderExpression(n.Pattern)
	return nil
}

// VisitWhereNode handles WHERE clauses
func (c *Compiler) VisitWhereNode(n *WhereNode) error {
	if len(n.Conditions) == 0 {
		return nil
	}
	c.output.WriteString("WHERE ")
	c.renderConditions(n.Conditions)
	return nil
}

// VisitReturnNode handles RETURN clauses
func (c *Compiler) VisitReturnNode(n *ReturnNode) error {
	c.output.WriteString("RETURN ")
	if n.Distinct {
		c.output.WriteString("DISTINCT ")
	}
	c.renderList(n.Items)
	return nil
}

// VisitWithNode handles WITH clauses
func (c *Compiler) VisitWithNode(n *WithNode) error {
	c.output.WriteString("WITH ")
	if n.Distinct {
		c.output.WriteString("DISTINCT ")
	}
	c.renderList(n.Items)
	if len(n.WhereConditions) > 0 {
		c.output.WriteString("\nWHERE ")
		for i, cond := range n.WhereConditions {
			if i > 0 {
				c.output.WriteString(" AND ")
			}
			c.renderExpression(cond)
		}
	}
	return nil
}

// VisitUnwindNode handles UNWIND clauses
func (c *Compiler) VisitUnwindNode(n *UnwindNode) error {
	c.output.WriteString("UNWIND ")
	c.renderExpression(n.Expression)
	c.output.WriteString(" AS ")
	c.output.WriteString(n.AliasName)
	return nil
}

// VisitOrderByNode handles ORDER BY clauses
func (c *Compiler) VisitOrderByNode(n *OrderByNode) error {
	c.output.WriteString("ORDER BY ")
	for i, item := range n.Items {
		if i > 0 {
			c.output.WriteString(", ")
		}
		c.renderExpression(item.Expression)
		dir := strings.ToUpper(item.Direction)
		if dir != "" && dir != "ASC" {
			c.output.WriteByte(' ')
			c.output.WriteString(dir)
		}
	}
	return nil
}

// VisitSkipNode handles SKIP clauses
func (c *Compiler) VisitSkipNode(n *SkipNode) error {
	c.output.WriteString("SKIP ")
	c.renderExpression(n.Amount)
	return nil
}

// VisitLimitNode handles LIMIT clauses
func (c *Compiler) VisitLimitNode(n *LimitNode) error {
	c.output.WriteString("LIMIT ")
	c.renderExpression(n.Expression)
	return nil
}
