package cypher

// MatchNode represents a MATCH or OPTIONAL MATCH clause.
type MatchNode struct {
	Pattern  interface{}
	Optional bool
}

func (n *MatchNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitMatchNode(*MatchNode) error }); ok {
		return vv.VisitMatchNode(n)
	}
	return nil
}

// Type returns the ClauseType for MatchNode.
func (n *MatchNode) Type() ClauseType { return MatchClause }

// WhereNode represents a WHERE clause with one or more conditions joined by AND.
type WhereNode struct {
	Conditions []Expression
}

func (n *WhereNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitWhereNode(*WhereNode) error }); ok {
		return vv.VisitWhereNode(n)
	}
	return nil
}

// Type returns the ClauseType for WhereNode.
func (n *WhereNode) Type() ClauseType { return WhereClause }

// WithNode represents a WITH clause with an optional trailing WHERE.
type WithNode struct {
	Items           []interface{}
	Distinct        bool
	WhereConditions []interface{}
}

func (n *WithNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitWithNode(*WithNode) error }); ok {
		return vv.VisitWithNode(n)
	}
	return nil
}

// Type returns the ClauseType for WithNode.
func (n *WithNode) Type() ClauseType { return WithClause }

// UnwindNode represents an UNWIND clause.
type UnwindNode struct {
	Expression interface{}
	AliasName  string
}

func (n *UnwindNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitUnwindNode(*UnwindNode) error }); ok {
		return vv.VisitUnwindNode(n)
	}
	return nil
}

// Type returns the ClauseType for UnwindNode.
func (n *UnwindNode) Type() ClauseType { return UnwindClause }

// ReturnNode represents a RETURN clause.
type ReturnNode struct {
	Items    []interface{}
	Distinct bool
}

func (n *ReturnNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitReturnNode(*ReturnNode) error }); ok {
		return vv.VisitReturnNode(n)
	}
	return nil
}

// Type returns the ClauseType for ReturnNode.
func (n *ReturnNode) Type() ClauseType { return ReturnClause }

// OrderByItem represents a single ORDER BY specification.
type OrderByItem struct {
	Expression interface{}
	Direction  string
}

// OrderByNode represents an ORDER BY clause.
type OrderByNode struct {
	Items []OrderByItem
}

func (n *OrderByNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitOrderByNode(*OrderByNode) error }); ok {
		return vv.VisitOrderByNode(n)
	}
	return nil
}

// Type returns the ClauseType for OrderByNode.
func (n *OrderByNode) Type() ClauseType { return OrderByClause }

// SkipNode represents a SKIP clause.
type SkipNode struct {
	Amount interface{}
}

func (n *SkipNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitSkipNode(*SkipNode) error }); ok {
		return vv.VisitSkipNode(n)
	}
	return nil
}

// Type returns the ClauseType for SkipNode.
func (n *SkipNode) Type() ClauseType { return SkipClause }

// LimitNode represents a LIMIT clause.
type LimitNode struct {
	Expression interface{}
}

func (n *LimitNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitLimitNode(*LimitNode) error }); ok {
		return vv.VisitLimitNode(n)
	}
	return nil
}

// Type returns the ClauseType for LimitNode.
func (n *LimitNode) Type() ClauseType { return LimitClause }

// LiteralNode represents a literal value in the AST.
type LiteralNode struct {
	Value interface{}
}

// Accept satisfies the Node interface.
func (n *LiteralNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitLiteralNode(*LiteralNode) error }); ok {
		return vv.VisitLiteralNode(n)
	}
	return nil
}
