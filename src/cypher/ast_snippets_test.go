package cypher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func compileNodesAST(nodes ...Node) (string, map[string]interface{}) {
	c := NewCompiler()
	c.Compile(nodes...)
	return c.Output(), c.Parameters()
}

func litNode(v interface{}) *LiteralNode { return &LiteralNode{Value: v} }

// chain links nodes into a clause chain and returns its last link.
func chain(nodes ...Node) *ClauseAdapter {
	link := NewClauseAdapter(nodes[0])
	for _, n := range nodes[1:] {
		link = link.Then(n)
	}
	return link
}

func TestASTSnippets(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []Node
		expected string
	}{
		{
			name:     "return_param",
			nodes:    []Node{&ReturnNode{Items: []interface{}{litNode(1)}}},
			expected: "RETURN $p1",
		},
		{
			name:     "return_two_params",
			nodes:    []Node{&ReturnNode{Items: []interface{}{litNode(1), litNode(2)}}},
			expected: "RETURN $p1, $p2",
		},
		{
			name:     "limit_param",
			nodes:    []Node{&LimitNode{Expression: litNode(10)}},
			expected: "LIMIT $p1",
		},
		{
			name:     "skip_param",
			nodes:    []Node{&SkipNode{Amount: litNode(5)}},
			expected: "SKIP $p1",
		},
		{
			name:     "where_eq",
			nodes:    []Node{&WhereNode{Conditions: []Expression{RawExpr("$p1 = $p2")}}},
			expected: "WHERE $p1 = $p2",
		},
		{
			name: "unwind_return",
			nodes: []Node{
				&UnwindNode{Expression: litNode([]int{1, 2}), AliasName: "x"},
				&ReturnNode{Items: []interface{}{"x"}},
			},
			expected: "UNWIND $p1 AS x\nRETURN x",
		},
		{
			name:     "return_aliases",
			nodes:    []Node{&ReturnNode{Items: []interface{}{"$p1 AS name", "$p2 AS age"}}},
			expected: "RETURN $p1 AS name, $p2 AS age",
		},
		{
			name: "with_where_return",
			nodes: []Node{
				&WithNode{Items: []interface{}{"$p1", "$p2"}, Distinct: true, WhereConditions: []interface{}{"$p3 > $p4"}},
				&ReturnNode{Items: []interface{}{"$p5"}},
			},
			expected: "WITH DISTINCT $p1, $p2\nWHERE $p3 > $p4\nRETURN $p5",
		},
		{
			name: "match_param",
			nodes: []Node{
				&MatchNode{Pattern: "(n:User {id: $p1})"},
				&ReturnNode{Items: []interface{}{"n"}},
			},
			expected: "MATCH (n:User {id: $p1})\nRETURN n",
		},
		{
			name: "optional_match_order_skip_limit",
			nodes: []Node{
				&MatchNode{Pattern: "(n:User)"},
				&MatchNode{Pattern: "(n)-[:OWNS]->(c:Car)", Optional: true},
				&ReturnNode{Items: []interface{}{"n", "c"}},
				&OrderByNode{Items: []OrderByItem{{Expression: "n.name", Direction: "DESC"}}},
				&SkipNode{Amount: "5"},
				&LimitNode{Expression: "10"},
			},
			expected: "MATCH (n:User)\nOPTIONAL MATCH (n)-[:OWNS]->(c:Car)\nRETURN n, c\nORDER BY n.name DESC\nSKIP 5\nLIMIT 10",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, _ := compileNodesAST(tc.nodes...)
			if out != tc.expected {
				t.Fatalf("expected %q got %q", tc.expected, out)
			}
		})
	}
}

func TestExistsSnippets(t *testing.T) {
	tests := []struct {
		name     string
		subquery []Node
		expected string
		params   map[string]interface{}
	}{
		{
			name: "exists_param_reference",
			subquery: []Node{
				&MatchNode{Pattern: "(this1:Movie)"},
				&WhereNode{Conditions: []Expression{RawExpr("this1.title = $title")}},
			},
			expected: "WHERE EXISTS (\n\t(:Movie { title: $title })\n)",
			params:   map[string]interface{}{},
		},
		{
			name: "exists_literal",
			subquery: []Node{
				&MatchNode{Pattern: "(this1:Movie)"},
				&WhereNode{Conditions: []Expression{
					&ComparisonExpr{LHS: Prop("this1", "title"), Op: "=", RHS: &LiteralExpr{Value: "Heat"}},
				}},
			},
			expected: "WHERE EXISTS (\n\t(:Movie { title: $p1 })\n)",
			params:   map[string]interface{}{"p1": "Heat"},
		},
		{
			name: "exists_relationship",
			subquery: []Node{
				&MatchNode{Pattern: "(this0)-[:ACTED_IN]->(this1:Movie)"},
				&WhereNode{Conditions: []Expression{RawExpr("this1.released = 1999")}},
			},
			expected: "WHERE EXISTS (\n\t(this0)-[:ACTED_IN]->(:Movie { released: 1999 })\n)",
			params:   map[string]interface{}{},
		},
		{
			name: "exists_two_conditions",
			subquery: []Node{
				&MatchNode{Pattern: "(this1:Movie)"},
				&WhereNode{Conditions: []Expression{
					&ComparisonExpr{LHS: Prop("this1", "title"), Op: "=", RHS: &LiteralExpr{Value: "Heat"}},
					&ComparisonExpr{LHS: Prop("this1", "released"), Op: "=", RHS: &LiteralExpr{Value: 1995}},
				}},
			},
			expected: "WHERE EXISTS (\n\t(:Movie { title: $p1, released: $p2 })\n)",
			params:   map[string]interface{}{"p1": "Heat", "p2": 1995},
		},
		{
			name: "exists_block_without_where",
			subquery: []Node{
				&MatchNode{Pattern: "(this1:Movie)"},
				&ReturnNode{Items: []interface{}{"this1"}},
			},
			expected: "WHERE EXISTS {\n\tMATCH (this1:Movie)\n\tRETURN this1\n)",
			params:   map[string]interface{}{},
		},
		{
			name: "exists_block_with_unwind",
			subquery: []Node{
				&UnwindNode{Expression: litNode([]interface{}{1, 2}), AliasName: "x"},
				&ReturnNode{Items: []interface{}{"x"}},
			},
			expected: "WHERE EXISTS {\n\tUNWIND $p1 AS x\n\tRETURN x\n)",
			params:   map[string]interface{}{"p1": []interface{}{1, 2}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			exists := NewExistsExpr(chain(tc.subquery...))
			out, params := compileNodesAST(&WhereNode{Conditions: []Expression{exists}})
			assert.Equal(t, tc.expected, out)
			assert.Equal(t, tc.params, params)
		})
	}
}
