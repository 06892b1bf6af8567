package parser

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/seuros/gopher-cypher/src/cypher"
)

var cypherLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Backtick", Pattern: "`[^`]+`"},
	{Name: "Param", Pattern: `\$[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Operators", Pattern: `<>|>=|<=|!=|>|<|=`},
	{Name: "Punct", Pattern: `[(),.:\[\]{}|+\-*/]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// Parser turns Cypher text into the clause tree of the cypher package.
type Parser struct {
	parser *participle.Parser[Query]
	exists *cypher.ExistsConfig
}

// Option configures a Parser.
type Option func(*Parser)

// WithExistsConfig sets the configuration given to every EXISTS expression
// the parser builds.
func WithExistsConfig(cfg *cypher.ExistsConfig) Option {
	return func(p *Parser) { p.exists = cfg }
}

func New(opts ...Option) (*Parser, error) {
	parser, err := participle.Build[Query](
		participle.Lexer(cypherLexer),
		participle.Unquote("String"),
		participle.CaseInsensitive("Ident"),
		participle.UseLookahead(4),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	p := &Parser{parser: parser}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Parse parses a full statement. Clauses are added to the returned Query,
// which renders them in canonical clause order.
func (p *Parser) Parse(input string) (*cypher.Query, error) {
	query, err := p.parseString(input)
	if err != nil {
		return nil, err
	}

	nodes, err := p.convertClauses(query.Clauses)
	if err != nil {
		return nil, err
	}
	q := cypher.NewQuery()
	for _, n := range nodes {
		q.AddClause(cypher.NewClauseAdapter(n))
	}
	return q, nil
}

// ParseSubquery parses input as a clause chain and returns its head. The
// chain keeps the clauses in source order, ready to be wrapped in an EXISTS
// expression.
func (p *Parser) ParseSubquery(input string) (cypher.Clause, error) {
	query, err := p.parseString(input)
	if err != nil {
		return nil, err
	}
	head, err := p.convertChain(query.Clauses)
	if err != nil {
		return nil, err
	}
	return head, nil
}

// ParseExists parses input as the body of an EXISTS subquery.
func (p *Parser) ParseExists(input string) (*cypher.ExistsExpr, error) {
	head, err := p.ParseSubquery(input)
	if err != nil {
		return nil, err
	}
	return cypher.NewExistsExprWithConfig(head, p.exists), nil
}

func (p *Parser) parseString(input string) (*Query, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	query, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return query, nil
}

func validateInput(input string) error {
	if strings.Contains(input, ";") {
		return fmt.Errorf("multiple statements not allowed")
	}

	if strings.Contains(input, "'") {
		return fmt.Errorf("single quotes not allowed, use double quotes")
	}

	return nil
}

func (p *Parser) convertChain(clauses []*Clause) (*cypher.ClauseAdapter, error) {
	nodes, err := p.convertClauses(clauses)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("empty subquery")
	}
	head := cypher.NewClauseAdapter(nodes[0])
	link := head
	for _, n := range nodes[1:] {
		link = link.Then(n)
	}
	return head, nil
}

// convertClauses maps grammar clauses to AST nodes in source order. A WHERE
// directly following WITH is folded into the WITH node.
func (p *Parser) convertClauses(clauses []*Clause) ([]cypher.Node, error) {
	var nodes []cypher.Node
	for _, clause := range clauses {
		switch {
		case clause.Match != nil:
			patterns := make([]string, len(clause.Match.Patterns))
			for i, pat := range clause.Match.Patterns {
				patterns[i] = renderPattern(pat)
			}
			nodes = append(nodes, &cypher.MatchNode{
				Pattern:  strings.Join(patterns, ", "),
				Optional: clause.Match.Optional,
			})

		case clause.Unwind != nil:
			nodes = append(nodes, &cypher.UnwindNode{
				Expression: unwindValue(clause.Unwind.Expression),
				AliasName:  clause.Unwind.Alias,
			})

		case clause.Where != nil:
			conds, err := p.convertConditions(clause.Where.Conditions)
			if err != nil {
				return nil, err
			}
			if n := len(nodes); n > 0 {
				if with, ok := nodes[n-1].(*cypher.WithNode); ok && len(with.WhereConditions) == 0 {
					for _, c := range conds {
						with.WhereConditions = append(with.WhereConditions, c)
					}
					continue
				}
			}
			nodes = append(nodes, &cypher.WhereNode{Conditions: conds})

		case clause.With != nil:
			items, err := p.convertItems(clause.With.Items)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &cypher.WithNode{Items: items, Distinct: clause.With.Distinct})

		case clause.Return != nil:
			items, err := p.convertItems(clause.Return.Items)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &cypher.ReturnNode{Items: items, Distinct: clause.Return.Distinct})

		case clause.OrderBy != nil:
			items := make([]cypher.OrderByItem, len(clause.OrderBy.Items))
			for i, item := range clause.OrderBy.Items {
				items[i] = cypher.OrderByItem{Expression: convertTerm(item.Term), Direction: item.Direction}
			}
			nodes = append(nodes, &cypher.OrderByNode{Items: items})

		case clause.Skip != nil:
			var amount interface{}
			if clause.Skip.SkipInt != nil {
				amount = *clause.Skip.SkipInt
			} else if clause.Skip.SkipParam != nil {
				amount = cypher.RawExpr(*clause.Skip.SkipParam)
			}
			nodes = append(nodes, &cypher.SkipNode{Amount: amount})

		case clause.Limit != nil:
			var limit interface{}
			if clause.Limit.LimitInt != nil {
				limit = *clause.Limit.LimitInt
			} else if clause.Limit.LimitParam != nil {
				limit = cypher.RawExpr(*clause.Limit.LimitParam)
			}
			nodes = append(nodes, &cypher.LimitNode{Expression: limit})
		}
	}
	return nodes, nil
}

func (p *Parser) convertConditions(conditions []*Condition) ([]cypher.Expression, error) {
	out := make([]cypher.Expression, 0, len(conditions))
	for _, cond := range conditions {
		var expr cypher.Expression
		switch pred := cond.Predicate; {
		case pred.Exists != nil:
			exists, err := p.convertExists(pred.Exists)
			if err != nil {
				return nil, err
			}
			expr = exists
		case pred.Comparison != nil:
			expr = &cypher.ComparisonExpr{
				LHS: convertOperand(pred.Comparison.Left),
				Op:  pred.Comparison.Operator,
				RHS: convertOperand(pred.Comparison.Right),
			}
		}
		if cond.Not {
			expr = &cypher.NotExpr{Expression: expr}
		}
		out = append(out, expr)
	}
	return out, nil
}

func (p *Parser) convertExists(sub *Subquery) (*cypher.ExistsExpr, error) {
	head, err := p.convertChain(sub.Clauses)
	if err != nil {
		return nil, fmt.Errorf("exists subquery: %w", err)
	}
	return cypher.NewExistsExprWithConfig(head, p.exists), nil
}

func (p *Parser) convertItems(items []*ReturnItem) ([]interface{}, error) {
	out := make([]interface{}, len(items))
	for i, item := range items {
		var base interface{}
		expr := item.Expression
		switch {
		case expr.Exists != nil:
			exists, err := p.convertExists(expr.Exists)
			if err != nil {
				return nil, err
			}
			base = exists
		case expr.FunctionCall != nil:
			args := make([]interface{}, len(expr.FunctionCall.Arguments))
			for j, arg := range expr.FunctionCall.Arguments {
				args[j] = convertTerm(arg)
			}
			base = &cypher.FunctionCallExpr{Name: expr.FunctionCall.Name, Arguments: args}
		case expr.MathExpression != nil:
			left := convertTerm(expr.MathExpression.Left)
			if tail := expr.MathExpression.Tail; tail != nil {
				base = &cypher.MathExpr{Left: left, Operator: tail.Operator, Right: convertTerm(tail.Right)}
			} else {
				base = left
			}
		}

		if item.Alias != nil && base != nil {
			out[i] = &cypher.AliasExpr{Expression: base, Alias: *item.Alias}
		} else {
			out[i] = base
		}
	}
	return out, nil
}

func renderPattern(p *Pattern) string {
	var b strings.Builder
	renderNode(&b, p.Start)
	for _, step := range p.Steps {
		rel := step.Relationship
		if rel.Incoming {
			b.WriteByte('<')
		}
		b.WriteByte('-')
		if d := rel.Detail; d != nil {
			b.WriteString("[" + d.Variable)
			if len(d.Types) > 0 {
				b.WriteString(":" + strings.Join(d.Types, "|"))
			}
			b.WriteByte(']')
		}
		b.WriteByte('-')
		if rel.Outgoing {
			b.WriteByte('>')
		}
		renderNode(&b, step.Node)
	}
	return b.String()
}

func renderNode(b *strings.Builder, n *NodePattern) {
	b.WriteString("(" + n.Variable)
	for _, label := range n.Labels {
		b.WriteString(":" + label)
	}
	b.WriteByte(')')
}

// convertOperand maps a comparison side to an expression. Parameters are
// kept by name, literals become fresh query parameters.
func convertOperand(o *Operand) cypher.Expression {
	switch {
	case o.Property != nil:
		return cypher.Prop(o.Property.Variable, o.Property.Property)
	case o.Value != nil:
		return valueExpr(o.Value)
	case o.Variable != nil:
		return &cypher.VariableExpr{Name: *o.Variable}
	}
	return nil
}

func valueExpr(v *Value) cypher.Expression {
	if v.Param != nil {
		return cypher.RawExpr(*v.Param)
	}
	return &cypher.LiteralExpr{Value: plainValue(v)}
}

func plainValue(v *Value) interface{} {
	switch {
	case v.String != nil:
		return *v.String
	case v.Number != nil:
		return *v.Number
	case v.Param != nil:
		return cypher.RawExpr(*v.Param)
	case v.List != nil:
		elements := make([]interface{}, len(v.List.Elements))
		for i, el := range v.List.Elements {
			elements[i] = plainValue(el)
		}
		return elements
	}
	return nil
}

// unwindValue keeps list literals inline and parameterises scalars.
func unwindValue(v *Value) interface{} {
	if v.List != nil {
		return plainValue(v)
	}
	return valueExpr(v)
}

func convertTerm(term *Term) interface{} {
	switch {
	case term.PropertyAccess != nil:
		return cypher.Prop(term.PropertyAccess.Variable, term.PropertyAccess.Property)
	case term.Parameter != nil:
		return cypher.RawExpr(*term.Parameter)
	case term.Variable != nil:
		return &cypher.VariableExpr{Name: *term.Variable}
	case term.Number != nil:
		return *term.Number
	case term.String != nil:
		return &cypher.LiteralExpr{Value: *term.String}
	}
	return nil
}
