package cypher

// ClauseType defines the type of a Cypher clause.
type ClauseType int

// Enum for ClauseType. Only reading clauses are modelled: updating clauses
// are not allowed inside existential subqueries.
const (
	UnknownClauseType ClauseType = iota
	MatchClause
	UnwindClause
	WhereClause
	WithClause
	ReturnClause
	OrderByClause
	SkipClause
	LimitClause
)

// String returns the Cypher keyword of the clause type.
func (t ClauseType) String() string {
	switch t {
	case MatchClause:
		return "MATCH"
	case UnwindClause:
		return "UNWIND"
	case WhereClause:
		return "WHERE"
	case WithClause:
		return "WITH"
	case ReturnClause:
		return "RETURN"
	case OrderByClause:
		return "ORDER BY"
	case SkipClause:
		return "SKIP"
	case LimitClause:
		return "LIMIT"
	default:
		return "UNKNOWN"
	}
}

// Clause represents a single part of a Cypher query.
// Implementations generate the query snippet and update the provided Query.
type Clause interface {
	// BuildCypher returns the Cypher representation of this clause
	// while appending parameters to the Query.
	BuildCypher(q *Query) string
	// Type returns the specific type of the clause.
	Type() ClauseType
}

// ClauseOrder determines the sorting order of clauses.
// The order is based on common Cypher query structure.
func ClauseOrder(c Clause) int {
	switch c.Type() {
	case MatchClause:
		return 5
	case UnwindClause:
		return 7
	case WhereClause: // Often follows MATCH/UNWIND
		return 11
	case WithClause:
		return 30
	case ReturnClause:
		return 37
	case OrderByClause:
		return 40
	case SkipClause:
		return 43
	case LimitClause:
		return 47
	default:
		return 99 // Unknown/other clauses go last
	}
}

// rootClause climbs the parent links of c for as long as the parent is
// itself a clause. The result is the head of the clause chain c belongs to.
func rootClause(c Clause) Clause {
	for {
		m, ok := c.(TreeMember)
		if !ok {
			return c
		}
		p, ok := m.treeNode().parent.(Clause)
		if !ok {
			return c
		}
		c = p
	}
}
