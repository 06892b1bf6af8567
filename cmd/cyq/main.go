package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/seuros/gopher-cypher/src/cypher"
	"github.com/seuros/gopher-cypher/src/parser"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "lint":
		err = lintCommand(args)
	case "fmt":
		err = fmtCommand(args)
	case "inspect":
		err = inspectCommand(args)
	case "exists":
		err = existsCommand(args)
	case "version", "--version", "-v":
		err = versionCommand()
	case "help", "--help", "-h":
		printUsage()
		return
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.Error() != "" {
				fmt.Fprintln(os.Stderr, exitErr.Error())
			}
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("cyq - Cypher query tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  cyq lint <file>                - Validate Cypher syntax")
	fmt.Println("  cyq fmt <file>                 - Format Cypher query")
	fmt.Println("  cyq inspect <file>             - Inspect AST structure")
	fmt.Println("  cyq exists [flags] [file|-]    - Render a subquery as an EXISTS expression")
	fmt.Println("  cyq version                    - Show version information")
	fmt.Println()
	fmt.Println("Exists flags:")
	fmt.Println("  --query <cypher>               - Subquery string instead of a file")
	fmt.Println("  --format text|json             - Output format (default: text)")
	fmt.Println("  --balanced                     - Close the block fallback with }")
	fmt.Println("  --log-level <level>            - debug|info|warn|error|off (or set CYQ_LOG_LEVEL)")
	fmt.Println("  --telemetry                    - Print render spans and metrics to stderr")
}

func versionCommand() error {
	fmt.Printf("cyq version %s\n", cypher.Version)
	return nil
}

func lintCommand(args []string) error {
	if len(args) != 1 {
		return usageErrorf(2, "Usage: cyq lint <file>")
	}

	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	p, err := parser.New()
	if err != nil {
		return err
	}

	_, err = p.Parse(string(content))
	if err != nil {
		return usageErrorf(1, "Syntax error in %s: %v", filename, err)
	}

	fmt.Printf("%s: OK\n", filename)
	return nil
}

func fmtCommand(args []string) error {
	if len(args) != 1 {
		return usageErrorf(2, "Usage: cyq fmt <file>")
	}

	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	p, err := parser.New()
	if err != nil {
		return err
	}

	query, err := p.Parse(string(content))
	if err != nil {
		return err
	}

	formatted, _ := query.BuildCypher()
	fmt.Print(formatted)
	return nil
}

func inspectCommand(args []string) error {
	if len(args) != 1 {
		return usageErrorf(2, "Usage: cyq inspect <file>")
	}

	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	p, err := parser.New()
	if err != nil {
		return err
	}

	query, err := p.Parse(string(content))
	if err != nil {
		return err
	}

	fmt.Printf("Query structure for %s:\n", filename)
	for _, clause := range query.Clauses() {
		fmt.Printf("  %s\n", clause.Type())
		printSubqueries(clause)
	}
	cypherText, params := query.BuildCypher()
	fmt.Printf("Generated Cypher: %s\n", cypherText)
	fmt.Printf("Parameters: %v\n", params)
	fmt.Printf("Variables: %v\n", query.CollectVariables())
	return nil
}

// printSubqueries lists the EXISTS expressions reachable from a clause.
func printSubqueries(clause cypher.Clause) {
	adapter, ok := clause.(*cypher.ClauseAdapter)
	if !ok {
		return
	}
	var conditions []cypher.Expression
	switch n := adapter.Node.(type) {
	case *cypher.WhereNode:
		conditions = n.Conditions
	case *cypher.ReturnNode:
		for _, item := range n.Items {
			if alias, ok := item.(*cypher.AliasExpr); ok {
				item = alias.Expression
			}
			if expr, ok := item.(cypher.Expression); ok {
				conditions = append(conditions, expr)
			}
		}
	}
	for _, cond := range conditions {
		if not, ok := cond.(*cypher.NotExpr); ok {
			cond = not.Expression
		}
		exists, ok := cond.(*cypher.ExistsExpr)
		if !ok {
			continue
		}
		clauses := 0
		cypher.Walk(exists, func(m cypher.TreeMember) bool {
			if _, ok := m.(cypher.Clause); ok {
				clauses++
			}
			return true
		})
		fmt.Printf("    EXISTS over %v (%d clauses)\n", exists.CollectVariables(), clauses)
	}
}
