package parser

type Query struct {
	Clauses []*Clause `@@+`
}

type Clause struct {
	Match   *MatchClause   `  @@`
	Unwind  *UnwindClause  `| @@`
	Where   *WhereClause   `| @@`
	With    *WithClause    `| @@`
	Return  *ReturnClause  `| @@`
	OrderBy *OrderByClause `| @@`
	Skip    *SkipClause    `| @@`
	Limit   *LimitClause   `| @@`
}

type MatchClause struct {
	Optional bool       `@"OPTIONAL"?`
	Patterns []*Pattern `"MATCH" @@ ("," @@)*`
}

// Pattern is a path: a node followed by any number of relationship hops.
type Pattern struct {
	Start *NodePattern   `@@`
	Steps []*PatternStep `@@*`
}

type NodePattern struct {
	Variable string   `"(" @Ident?`
	Labels   []string `(":" @(Ident | Backtick))* ")"`
}

type PatternStep struct {
	Relationship *RelationshipPattern `@@`
	Node         *NodePattern         `@@`
}

type RelationshipPattern struct {
	Incoming bool                `@"<"? "-"`
	Detail   *RelationshipDetail `@@?`
	Outgoing bool                `"-" @">"?`
}

type RelationshipDetail struct {
	Variable string   `"[" @Ident?`
	Types    []string `(":" @(Ident | Backtick) ("|" @(Ident | Backtick))*)? "]"`
}

type WhereClause struct {
	Conditions []*Condition `"WHERE" @@ ("AND" @@)*`
}

type Condition struct {
	Not       bool       `@"NOT"?`
	Predicate *Predicate `@@`
}

type Predicate struct {
	Exists     *Subquery   `  @@`
	Comparison *Comparison `| @@`
}

// Subquery is the body of EXISTS { ... }.
type Subquery struct {
	Clauses []*Clause `"EXISTS" "{" @@+ "}"`
}

type Comparison struct {
	Left     *Operand `@@`
	Operator string   `@("=" | "<>" | "!=" | ">=" | "<=" | ">" | "<")`
	Right    *Operand `@@`
}

type Operand struct {
	Property *PropertyAccess `  @@`
	Value    *Value          `| @@`
	Variable *string         `| @Ident`
}

type PropertyAccess struct {
	Variable string `@Ident`
	Property string `"." @Ident`
}

type Value struct {
	String *string `  @String`
	Number *int    `| @Int`
	Param  *string `| @Param`
	List   *List   `| @@`
}

type List struct {
	Elements []*Value `"[" (@@ ("," @@)*)? "]"`
}

type WithClause struct {
	Distinct bool          `"WITH" @"DISTINCT"?`
	Items    []*ReturnItem `@@ ("," @@)*`
}

type ReturnClause struct {
	Distinct bool          `"RETURN" @"DISTINCT"?`
	Items    []*ReturnItem `@@ ("," @@)*`
}

type ReturnItem struct {
	Expression *ReturnExpression `@@`
	Alias      *string           `("AS" @Ident)?`
}

type ReturnExpression struct {
	Exists         *Subquery       `  @@`
	FunctionCall   *FunctionCall   `| @@`
	MathExpression *MathExpression `| @@`
}

type MathExpression struct {
	Left *Term     `@@`
	Tail *MathTail `@@?`
}

type MathTail struct {
	Operator string `@("+" | "-" | "*" | "/")`
	Right    *Term  `@@`
}

type Term struct {
	PropertyAccess *PropertyAccess `  @@`
	Parameter      *string         `| @Param`
	Variable       *string         `| @Ident`
	Number         *int            `| @Int`
	String         *string         `| @String`
}

type FunctionCall struct {
	Name      string  `@Ident`
	Arguments []*Term `"(" (@@ ("," @@)*)? ")"`
}

type OrderByClause struct {
	Items []*OrderItem `"ORDER" "BY" @@ ("," @@)*`
}

type OrderItem struct {
	Term      *Term  `@@`
	Direction string `@("ASC" | "DESC")?`
}

type LimitClause struct {
	LimitInt   *int    `  "LIMIT" @Int`
	LimitParam *string `| "LIMIT" @Param`
}

type SkipClause struct {
	SkipInt   *int    `  "SKIP" @Int`
	SkipParam *string `| "SKIP" @Param`
}

type UnwindClause struct {
	Expression *Value `"UNWIND" @@`
	Alias      string `"AS" @Ident`
}
