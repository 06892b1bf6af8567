package cypher

import "regexp"

var patternVariablePattern = regexp.MustCompile(`[(\[]\s*([A-Za-z_]\w*)`)

// CollectVariables returns the identifiers bound or referenced anywhere in
// the query, including inside EXISTS subqueries, in order of first use.
func (q *Query) CollectVariables() []string {
	col := &variableCollector{seen: make(map[string]bool)}
	for _, c := range q.Clauses() {
		col.visit(c)
	}
	return col.names
}

// CollectVariables returns the identifiers used inside the subquery.
func (e *ExistsExpr) CollectVariables() []string {
	col := &variableCollector{seen: make(map[string]bool)}
	col.visit(e)
	return col.names
}

type variableCollector struct {
	seen  map[string]bool
	names []string
}

func (c *variableCollector) add(name string) {
	if name == "" || c.seen[name] {
		return
	}
	c.seen[name] = true
	c.names = append(c.names, name)
}

func (c *variableCollector) visit(x interface{}) {
	switch v := x.(type) {
	case nil:
	case TreeMember:
		c.visitMember(v)
	case *MatchNode:
		if s, ok := v.Pattern.(string); ok {
			for _, m := range patternVariablePattern.FindAllStringSubmatch(s, -1) {
				c.add(m[1])
			}
		} else {
			c.visit(v.Pattern)
		}
	case *WhereNode:
		for _, cond := range v.Conditions {
			c.visit(cond)
		}
	case *WithNode:
		c.visitAll(v.Items)
		for _, cond := range v.WhereConditions {
			c.visit(cond)
		}
	case *ReturnNode:
		c.visitAll(v.Items)
	case *UnwindNode:
		c.visit(v.Expression)
		c.add(v.AliasName)
	case *OrderByNode:
		for _, item := range v.Items {
			c.visit(item.Expression)
		}
	case *ComparisonExpr:
		c.visit(v.LHS)
		c.visit(v.RHS)
	case *PropertyAccessExpr:
		c.visit(v.Variable)
	case *VariableExpr:
		c.add(v.Name)
	case *AliasExpr:
		c.visit(v.Expression)
		c.add(v.Alias)
	case *FunctionCallExpr:
		c.visitAll(v.Arguments)
	case *MathExpr:
		c.visit(v.Left)
		c.visit(v.Right)
	case *NotExpr:
		c.visit(v.Expression)
	}
}

func (c *variableCollector) visitAll(items []interface{}) {
	for _, item := range items {
		c.visit(item)
	}
}

// visitMember handles tree members: the node of a clause adapter is visited
// before its chained clauses, and an EXISTS expression is entered through its
// registered children.
func (c *variableCollector) visitMember(m TreeMember) {
	if a, ok := m.(*ClauseAdapter); ok {
		c.visit(a.Node)
	}
	for _, child := range m.treeNode().children {
		c.visitMember(child)
	}
}
