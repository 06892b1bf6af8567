package cypher

import (
	"strings"
	"sync"
	"testing"

	"github.com/seuros/gopher-cypher/src/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawClause is a clause that renders a fixed Cypher snippet.
type rawClause string

func (r rawClause) BuildCypher(q *Query) string { return string(r) }
func (r rawClause) Type() ClauseType            { return MatchClause }

func movieByTitle(alias, title string) (*ClauseAdapter, *ClauseAdapter) {
	match := NewClauseAdapter(&MatchNode{Pattern: "(" + alias + ":Movie)"})
	where := match.Then(&WhereNode{Conditions: []Expression{
		&ComparisonExpr{LHS: Prop(alias, "title"), Op: "=", RHS: &LiteralExpr{Value: title}},
	}})
	return match, where
}

func TestExistsRendersInlinePattern(t *testing.T) {
	for _, alias := range []string{"n", "this0", "movie"} {
		e := NewExistsExpr(rawClause("MATCH (" + alias + ":Label) WHERE " + alias + ".prop = $val"))
		assert.Equal(t, "EXISTS (\n\t(:Label { prop: $val })\n)", e.BuildCypher(NewQuery()))
	}
}

func TestExistsMultipleConditions(t *testing.T) {
	e := NewExistsExpr(rawClause("MATCH (n:Movie)\nWHERE n.a = 1 AND n.b = 2"))
	assert.Equal(t, "EXISTS (\n\t(:Movie { a: 1, b: 2 })\n)", e.BuildCypher(NewQuery()))
}

func TestExistsFallbackWithoutWhere(t *testing.T) {
	e := NewExistsExpr(rawClause("MATCH (n:Label)\nRETURN n"))
	assert.Equal(t, "EXISTS {\n\tMATCH (n:Label)\n\tRETURN n\n)", e.BuildCypher(NewQuery()))
}

func TestExistsBalancedFallback(t *testing.T) {
	e := NewExistsExprWithConfig(rawClause("MATCH (n:Label)"), &ExistsConfig{BalancedFallback: true})
	assert.Equal(t, "EXISTS {\n\tMATCH (n:Label)\n}", e.BuildCypher(NewQuery()))

	// the compact form is unaffected
	e = NewExistsExprWithConfig(rawClause("MATCH (n:Label) WHERE n.a = 1"), &ExistsConfig{BalancedFallback: true})
	assert.Equal(t, "EXISTS (\n\t(:Label { a: 1 })\n)", e.BuildCypher(NewQuery()))
}

func TestExistsRewritesOncePerRender(t *testing.T) {
	var calls []string
	counting := RewriterFunc(func(fragment string) (string, error) {
		calls = append(calls, fragment)
		return RewritePattern(fragment)
	})
	e := NewExistsExprWithConfig(rawClause("MATCH (n:L) WHERE n.a = 1"), &ExistsConfig{Rewriter: counting})

	e.BuildCypher(NewQuery())
	require.Len(t, calls, 1)
	assert.Equal(t, "\tMATCH (n:L) WHERE n.a = 1", calls[0])

	e.BuildCypher(NewQuery())
	assert.Len(t, calls, 2)
}

func TestExistsOwnsSubqueryRoot(t *testing.T) {
	match, where := movieByTitle("this0", "The Matrix")

	e := NewExistsExpr(where)
	assert.Same(t, match, e.SubQuery(), "subquery should resolve to the head of the chain")
	assert.Equal(t, TreeMember(e), match.Parent())
	require.Len(t, e.Children(), 1)
	assert.Equal(t, TreeMember(match), e.Children()[0])
	assert.Equal(t, TreeMember(e), Root(where))
}

func TestExistsFromClauseChain(t *testing.T) {
	_, where := movieByTitle("this0", "The Matrix")
	e := NewExistsExpr(where)

	q := NewQuery()
	out := e.BuildCypher(q)
	assert.Equal(t, "EXISTS (\n\t(:Movie { title: $p1 })\n)", out)
	assert.Equal(t, map[string]interface{}{"p1": "The Matrix"}, q.Parameters())
}

func TestExistsInsideOuterQuery(t *testing.T) {
	_, where := movieByTitle("this1", "The Matrix")
	exists := NewExistsExpr(where)

	q := NewQuery()
	q.AddClause(NewClauseAdapter(&ReturnNode{Items: []interface{}{"this0"}}))
	q.AddClause(NewClauseAdapter(&WhereNode{Conditions: []Expression{
		&ComparisonExpr{LHS: Prop("this0", "name"), Op: "=", RHS: &LiteralExpr{Value: "Keanu"}},
		exists,
	}}))
	q.AddClause(NewClauseAdapter(&MatchNode{Pattern: "(this0:Person)"}))

	cypher, params := q.BuildCypher()
	expected := "MATCH (this0:Person)\n" +
		"WHERE this0.name = $p1 AND EXISTS (\n\t(:Movie { title: $p2 })\n)\n" +
		"RETURN this0"
	assert.Equal(t, expected, cypher)
	assert.Equal(t, map[string]interface{}{"p1": "Keanu", "p2": "The Matrix"}, params)
}

func TestNotExists(t *testing.T) {
	_, where := movieByTitle("m", "Speed")
	expr := &NotExpr{Expression: NewExistsExpr(where)}
	assert.Equal(t, "NOT EXISTS (\n\t(:Movie { title: $p1 })\n)", expr.BuildCypher(NewQuery()))
}

func TestNestedExists(t *testing.T) {
	_, innerWhere := movieByTitle("this1", "The Matrix")
	inner := NewExistsExpr(innerWhere)

	person := NewClauseAdapter(&MatchNode{Pattern: "(this0:Person)"})
	ret := person.Then(&ReturnNode{Items: []interface{}{&AliasExpr{Expression: inner, Alias: "acted"}}})
	outer := NewExistsExpr(ret)

	q := NewQuery()
	expected := "EXISTS {\n" +
		"\tMATCH (this0:Person)\n" +
		"\tRETURN EXISTS (\n" +
		"\t\t(:Movie { title: $p1 })\n" +
		"\t) AS acted\n" +
		")"
	assert.Equal(t, expected, outer.BuildCypher(q))
	assert.Equal(t, map[string]interface{}{"p1": "The Matrix"}, q.Parameters())
}

func TestNestedExistsBothFallback(t *testing.T) {
	inner := NewExistsExpr(NewClauseAdapter(&MatchNode{Pattern: "(this1:Movie)"}))
	person := NewClauseAdapter(&MatchNode{Pattern: "(this0:Person)"})
	ret := person.Then(&ReturnNode{Items: []interface{}{inner}})

	expected := "EXISTS {\n" +
		"\tMATCH (this0:Person)\n" +
		"\tRETURN EXISTS {\n" +
		"\t\tMATCH (this1:Movie)\n" +
		"\t)\n" +
		")"
	assert.Equal(t, expected, NewExistsExpr(ret).BuildCypher(NewQuery()))
}

func TestExistsReportsToLogger(t *testing.T) {
	rec := &logging.RecordingLogger{}

	fallback := NewExistsExprWithConfig(rawClause("MATCH (n:L)"), &ExistsConfig{Logger: rec})
	fallback.BuildCypher(NewQuery())
	debug := rec.EntriesAt(logging.LogLevelDebug)
	require.Len(t, debug, 1)
	assert.ErrorIs(t, debug[0].Fields["reason"].(error), ErrNoWhereClause)

	degraded := NewExistsExprWithConfig(rawClause("MATCH (n:L) WHERE n.a = 1 AND n.b"), &ExistsConfig{Logger: rec})
	assert.Equal(t, "EXISTS (\n\t(:L { a: 1, b:  })\n)", degraded.BuildCypher(NewQuery()))
	assert.Len(t, rec.EntriesAt(logging.LogLevelWarn), 1)
}

func TestExistsReparenting(t *testing.T) {
	match, where := movieByTitle("m", "Heat")
	first := NewExistsExpr(where)
	second := NewExistsExpr(where)

	assert.Equal(t, TreeMember(second), match.Parent())
	assert.Empty(t, first.Children())
	assert.Same(t, match, first.SubQuery(), "subquery root is never reassigned")
}

func TestExistsNilQueryAndSubquery(t *testing.T) {
	e := NewExistsExpr(rawClause("MATCH (n:L) WHERE n.a = $x"))
	assert.Equal(t, "EXISTS (\n\t(:L { a: $x })\n)", e.BuildCypher(nil))

	empty := NewExistsExpr(nil)
	assert.Nil(t, empty.SubQuery())
	assert.Equal(t, "EXISTS {\n\t\n)", empty.BuildCypher(NewQuery()))
}

func TestExistsConcurrentRender(t *testing.T) {
	_, where := movieByTitle("this0", "Alien")
	e := NewExistsExpr(where)
	want := "EXISTS (\n\t(:Movie { title: $p1 })\n)"

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.BuildCypher(NewQuery())
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, want, got, "goroutine %d", i)
	}
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "\tMATCH (n)\n\tRETURN n", Indent("MATCH (n)\nRETURN n"))
	assert.Equal(t, "\t", Indent(""))
	assert.Equal(t, "\t\tx", Indent(Indent("x")))
	assert.Equal(t, 2, strings.Count(Indent("a\n\nb"), "\n"))
}
