package cypher

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Query represents a Cypher query under construction. It tracks
// registered parameters and accumulated clauses, and is the rendering
// environment handed to every clause and expression: nested subqueries
// register their parameters in the same Query as the enclosing statement.
type Query struct {
	mu           sync.RWMutex
	parameters   map[string]interface{}
	paramCounter int
	clauses      []Clause
	renderCtx    context.Context
}

// NewQuery creates a new empty Query instance.
func NewQuery() *Query {
	return &Query{parameters: make(map[string]interface{})}
}

// RegisterParameter stores a value and returns its parameter key.
// Equal values share a key.
func (q *Query) RegisterParameter(value interface{}) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	for k, v := range q.parameters {
		if sameParameter(v, value) {
			return k
		}
	}
	q.paramCounter++
	key := fmt.Sprintf("p%d", q.paramCounter)
	q.parameters[key] = value
	return key
}

func sameParameter(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// WithContext sets the context that render spans of q descend from.
func (q *Query) WithContext(ctx context.Context) *Query {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.renderCtx = ctx
	return q
}

func (q *Query) renderContext() context.Context {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.renderCtx == nil {
		return context.Background()
	}
	return q.renderCtx
}

// enterRender makes ctx the render context until the returned func runs, so
// subqueries rendered in between start their spans under it.
func (q *Query) enterRender(ctx context.Context) func() {
	q.mu.Lock()
	prev := q.renderCtx
	q.renderCtx = ctx
	q.mu.Unlock()
	return func() {
		q.mu.Lock()
		q.renderCtx = prev
		q.mu.Unlock()
	}
}

// Parameters returns a copy of the registered parameters.
func (q *Query) Parameters() map[string]interface{} {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make(map[string]interface{}, len(q.parameters))
	for k, v := range q.parameters {
		out[k] = v
	}
	return out
}

// AddClause appends a clause to the query.
func (q *Query) AddClause(c Clause) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.clauses = append(q.clauses, c)
}

// Clauses returns the clauses in rendering order.
func (q *Query) Clauses() []Clause {
	q.mu.Lock()
	defer q.mu.Unlock()
	sort.SliceStable(q.clauses, func(i, j int) bool {
		return ClauseOrder(q.clauses[i]) < ClauseOrder(q.clauses[j])
	})
	return append([]Clause(nil), q.clauses...)
}

// BuildCypher assembles the full query string from its clauses.
// The lock is not held while clauses render because they register
// parameters on q.
func (q *Query) BuildCypher() (string, map[string]interface{}) {
	var b strings.Builder
	for i, c := range q.Clauses() {
		if i > 0 {
			b.WriteByte('\n') // Use newline for better readability between clauses
		}
		b.WriteString(c.BuildCypher(q))
	}
	return b.String(), q.Parameters()
}
