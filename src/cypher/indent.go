package cypher

import "strings"

// IndentUnit is the prefix added per block level.
const IndentUnit = "\t"

// Indent prefixes every line of text, empty lines included, with one
// IndentUnit.
func Indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = IndentUnit + line
	}
	return strings.Join(lines, "\n")
}
