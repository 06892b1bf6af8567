package cypher

import (
	"fmt"
	"strings"
)

// Expression defines any value that can appear in a Cypher statement.
type Expression interface {
	// BuildCypher returns the Cypher representation of the expression
	// while appending parameters to the Query.
	BuildCypher(q *Query) string
}

// ComparisonExpr represents a comparison expression (e.g., a = b).
type ComparisonExpr struct {
	LHS Expression
	RHS Expression
	Op  string
}

// BuildCypher implements the Expression interface for ComparisonExpr.
func (e *ComparisonExpr) BuildCypher(q *Query) string {
	return e.LHS.BuildCypher(q) + " " + e.Op + " " + e.RHS.BuildCypher(q)
}

// PropertyAccessExpr represents accessing a property on a variable (e.g., n.name).
type PropertyAccessExpr struct {
	Variable     Expression
	PropertyName string
}

// BuildCypher implements the Expression interface for PropertyAccessExpr.
func (e *PropertyAccessExpr) BuildCypher(q *Query) string {
	return e.Variable.BuildCypher(q) + "." + e.PropertyName
}

// VariableExpr is a bare identifier bound by a pattern or projection.
type VariableExpr struct {
	Name string
}

// BuildCypher implements the Expression interface for VariableExpr.
func (e *VariableExpr) BuildCypher(q *Query) string { return e.Name }

// Prop is shorthand for a property access on a variable.
func Prop(variable, property string) *PropertyAccessExpr {
	return &PropertyAccessExpr{Variable: &VariableExpr{Name: variable}, PropertyName: property}
}

// RawExpr embeds a Cypher snippet verbatim, e.g. a parameter reference such
// as "$title" supplied by the caller.
type RawExpr string

// BuildCypher returns the snippet unchanged.
func (r RawExpr) BuildCypher(q *Query) string { return string(r) }

// LiteralExpr represents a literal value (e.g., "string", 123, true).
// Literals are always sent as parameters.
type LiteralExpr struct {
	Value interface{}
}

// BuildCypher implements the Expression interface for LiteralExpr.
func (e *LiteralExpr) BuildCypher(q *Query) string {
	paramKey := q.RegisterParameter(e.Value)
	return fmt.Sprintf("$%s", paramKey)
}

// FunctionCallExpr represents a function call (e.g., collect(n), coalesce(a, b)).
// Arguments that are Expressions are rendered in place, anything else is
// passed as a parameter.
type FunctionCallExpr struct {
	Name      string
	Arguments []interface{}
}

// BuildCypher implements the Expression interface for FunctionCallExpr.
func (e *FunctionCallExpr) BuildCypher(q *Query) string {
	args := make([]string, len(e.Arguments))
	for i, arg := range e.Arguments {
		args[i] = operand(q, arg)
	}
	return e.Name + "(" + strings.Join(args, ", ") + ")"
}

// AliasExpr represents an expression with an alias (e.g., expr AS alias).
type AliasExpr struct {
	Expression interface{}
	Alias      string
}

// BuildCypher implements the Expression interface for AliasExpr.
func (e *AliasExpr) BuildCypher(q *Query) string {
	return operand(q, e.Expression) + " AS " + e.Alias
}

// MathExpr represents a mathematical expression (e.g., a + b, x - y).
type MathExpr struct {
	Left     interface{}
	Operator string
	Right    interface{}
}

// BuildCypher implements the Expression interface for MathExpr.
func (e *MathExpr) BuildCypher(q *Query) string {
	return operand(q, e.Left) + " " + e.Operator + " " + operand(q, e.Right)
}

// NotExpr negates a boolean expression, e.g. NOT EXISTS { ... }.
type NotExpr struct {
	Expression Expression
}

// BuildCypher implements the Expression interface for NotExpr.
func (e *NotExpr) BuildCypher(q *Query) string {
	return "NOT " + e.Expression.BuildCypher(q)
}

func operand(q *Query, v interface{}) string {
	if expr, ok := v.(Expression); ok {
		return expr.BuildCypher(q)
	}
	return "$" + q.RegisterParameter(v)
}
