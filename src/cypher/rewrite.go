package cypher

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/seuros/gopher-cypher/src/logging"
)

// ErrNoWhereClause is returned by the pattern rewrite when the fragment has
// no WHERE clause to fold into the pattern.
var ErrNoWhereClause = errors.New("no WHERE clause found")

var (
	leadingMatchPattern = regexp.MustCompile(`(?i)^(\s*)MATCH\s+`)
	whereClausePattern  = regexp.MustCompile(`(?is)\s*\bWHERE\s+(.*)$`)
	conjunctionPattern  = regexp.MustCompile(`(?i)\s+AND\s+`)
	equalsPattern       = regexp.MustCompile(`\s*=\s*`)
	disjunctionPattern  = regexp.MustCompile(`(?i)\s+OR\s+`)
	labelMarkerPattern  = regexp.MustCompile(":(?:\\w+|`[^`]+`)\\)")
	nodeVariablePattern = regexp.MustCompile(`\(\w+:`)
)

// Rewriter turns an indented subquery fragment into an inline pattern.
type Rewriter interface {
	Rewrite(fragment string) (string, error)
}

// RewriterFunc adapts a plain function to the Rewriter interface.
type RewriterFunc func(fragment string) (string, error)

// Rewrite calls f.
func (f RewriterFunc) Rewrite(fragment string) (string, error) { return f(fragment) }

// PatternRewriter folds the equality conditions of a rendered
// "MATCH <pattern> WHERE <conditions>" fragment into the property map of the
// pattern's first labelled node:
//
//	MATCH (this0:Movie) WHERE this0.title = $p1  =>  (:Movie { title: $p1 })
//
// Only conjunctions of simple equalities are understood. Conditions it cannot
// split are kept as best-effort text and reported to the logger.
type PatternRewriter struct {
	logger logging.Logger
	cache  *SimpleCache
}

// NewPatternRewriter creates a rewriter reporting degraded output to logger.
// A nil logger discards the reports.
func NewPatternRewriter(logger logging.Logger) *PatternRewriter {
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	return &PatternRewriter{logger: logger, cache: NewSimpleCache()}
}

var defaultRewriter = NewPatternRewriter(nil)

// RewritePattern rewrites fragment with a shared, silent PatternRewriter.
func RewritePattern(fragment string) (string, error) {
	return defaultRewriter.Rewrite(fragment)
}

// Rewrite returns the inline pattern for fragment, or an error wrapping
// ErrNoWhereClause. Results are memoized per fragment.
func (r *PatternRewriter) Rewrite(fragment string) (string, error) {
	return r.cache.Fetch(fragment, func() (string, error) {
		return r.rewrite(fragment)
	})
}

func (r *PatternRewriter) rewrite(fragment string) (string, error) {
	body := leadingMatchPattern.ReplaceAllString(fragment, "${1}")

	loc := whereClausePattern.FindStringSubmatchIndex(body)
	if loc == nil {
		return "", fmt.Errorf("rewrite exists pattern: %w", ErrNoWhereClause)
	}
	conditions := unwrapParens(strings.TrimSpace(body[loc[2]:loc[3]]))
	body = body[:loc[0]] + body[loc[1]:]

	props := r.properties(conditions)

	marker := labelMarkerPattern.FindStringIndex(body)
	if marker == nil {
		r.logger.Warn("exists pattern has no labelled node, properties dropped",
			"pattern", strings.TrimSpace(body), "properties", props)
	} else {
		at := marker[1] - 1 // position of the closing parenthesis
		body = body[:at] + " { " + props + " }" + body[at:]
	}

	return nodeVariablePattern.ReplaceAllString(body, "(:"), nil
}

// properties renders conditions as the body of a property map literal.
func (r *PatternRewriter) properties(conditions string) string {
	parts := conjunctionPattern.Split(conditions, -1)
	pairs := make([]string, len(parts))
	for i, cond := range parts {
		key, value := splitCondition(cond)
		if reason := conditionDefect(cond); reason != "" {
			r.logger.Warn("malformed exists condition", "condition", cond, "index", i, "reason", reason)
		}
		if key == "" {
			continue
		}
		pairs[i] = key + ": " + value
	}
	return strings.Join(pairs, ", ")
}

// splitCondition splits "alias.prop = value" into the bare property name and
// the value text. Missing halves come back empty.
func splitCondition(cond string) (key, value string) {
	sides := equalsPattern.Split(strings.TrimSpace(cond), -1)
	key = sides[0]
	if len(sides) > 1 {
		value = sides[1]
	}
	if dot := strings.LastIndex(key, "."); dot >= 0 {
		key = key[dot+1:]
	}
	return key, value
}

// conditionDefect names why cond does not survive as a "key: value" pair, or
// returns "" when it does. The rewritten text is left as is either way.
func conditionDefect(cond string) string {
	cond = strings.TrimSpace(cond)
	sides := equalsPattern.Split(cond, -1)
	key, value := splitCondition(cond)
	switch {
	case disjunctionPattern.MatchString(cond):
		return "disjunction"
	case strings.ContainsAny(key, "<>!"):
		return "not an equality"
	case len(sides) > 2:
		return "more than one equality"
	case !balancedParens(sides[0]) || !balancedParens(value):
		return "unbalanced parentheses"
	case key == "":
		return "missing property"
	case value == "":
		return "missing value"
	}
	return ""
}

func balancedParens(s string) bool {
	return strings.Count(s, "(") == strings.Count(s, ")")
}

// unwrapParens drops one pair of parentheses enclosing the whole of s.
func unwrapParens(s string) string {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return s
			}
		}
	}
	return strings.TrimSpace(s[1 : len(s)-1])
}
