package cypher

// ExistsExpr is an existential subquery: a boolean check that a graph
// pattern has at least one match. It owns the root clause of the subquery
// and renders either as a compact pattern,
//
//	EXISTS (
//		(:Movie { title: $p1 })
//	)
//
// when the subquery is a MATCH with equality conditions, or as a block
// containing the subquery verbatim otherwise.
type ExistsExpr struct {
	TreeNode
	subQueryRoot Clause
	config       *ExistsConfig
	instruments  *renderInstruments
}

// NewExistsExpr wraps the clause chain that subquery belongs to.
func NewExistsExpr(subquery Clause) *ExistsExpr {
	return NewExistsExprWithConfig(subquery, nil)
}

// NewExistsExprWithConfig is NewExistsExpr with explicit configuration.
// Unset fields of cfg take their defaults.
func NewExistsExprWithConfig(subquery Clause, cfg *ExistsConfig) *ExistsExpr {
	cfg = cfg.withDefaults()
	e := &ExistsExpr{
		subQueryRoot: rootClause(subquery),
		config:       cfg,
		instruments:  instrumentsFor(cfg.Observability),
	}
	if m, ok := e.subQueryRoot.(TreeMember); ok {
		AddChild(e, m)
	}
	return e
}

// SubQuery returns the root clause of the wrapped subquery.
func (e *ExistsExpr) SubQuery() Clause { return e.subQueryRoot }

// BuildCypher renders the expression. Parameters of the subquery are
// registered in q, shared with the enclosing query.
func (e *ExistsExpr) BuildCypher(q *Query) string {
	if q == nil {
		q = NewQuery()
	}
	obs := e.config.Observability
	ctx, span := e.instruments.startRender(q.renderContext(), obs)
	defer span.End()
	leave := q.enterRender(ctx)
	defer leave()

	var body string
	if e.subQueryRoot != nil {
		body = e.subQueryRoot.BuildCypher(q)
	}
	block := Indent(body)

	pattern, err := e.config.Rewriter.Rewrite(block)
	if err != nil {
		e.config.Logger.Debug("exists subquery rendered as block", "reason", err)
		e.instruments.finishRender(ctx, obs, span, OutcomeFallback, err)
		closing := ")"
		if e.config.BalancedFallback {
			closing = "}"
		}
		return "EXISTS {\n" + block + "\n" + closing
	}

	e.instruments.finishRender(ctx, obs, span, OutcomeRewritten, nil)
	return "EXISTS (\n" + pattern + "\n)"
}
