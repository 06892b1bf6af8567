package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/seuros/gopher-cypher/src/cypher"
	"github.com/seuros/gopher-cypher/src/logging"
	"github.com/seuros/gopher-cypher/src/parser"
)

func existsCommand(args []string) error {
	return runExists(args, os.Stdin, os.Stdout, os.Stderr)
}

func runExists(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("exists", flag.ContinueOnError)
	fs.SetOutput(stderr)

	logLevelFlag := fs.String("log-level", os.Getenv("CYQ_LOG_LEVEL"), "Log level: debug|info|warn|error|off (or set CYQ_LOG_LEVEL)")
	queryFlag := fs.String("query", "", "Subquery string (if no file is provided)")
	formatFlag := fs.String("format", "text", "Output format: text|json")
	balancedFlag := fs.Bool("balanced", false, "Close the block fallback with } instead of )")
	telemetryFlag := fs.Bool("telemetry", false, "Print render spans and metrics to stderr")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return &exitError{code: 0}
		}
		return usageErrorf(2, "%v", err)
	}

	body, err := resolveQuery(*queryFlag, fs.Args(), stdin)
	if err != nil {
		return err
	}

	cfg := cypher.DefaultExistsConfig()
	cfg.Logger = logging.NewConsoleLoggerWithOutput(logging.ParseLogLevel(*logLevelFlag), stderr, stderr)
	cfg.BalancedFallback = *balancedFlag

	if *telemetryFlag {
		obs, shutdown, err := setupTelemetry(stderr)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				cfg.Logger.Error("telemetry shutdown failed", "error", err)
			}
		}()
		cfg.Observability = obs
	}

	p, err := parser.New(parser.WithExistsConfig(cfg))
	if err != nil {
		return err
	}
	exists, err := p.ParseExists(body)
	if err != nil {
		return usageErrorf(1, "Syntax error in subquery: %v", err)
	}

	q := cypher.NewQuery()
	res := rendered{
		Cypher:     exists.BuildCypher(q),
		Parameters: q.Parameters(),
		Variables:  exists.CollectVariables(),
	}

	switch strings.ToLower(*formatFlag) {
	case "text":
		return writeText(stdout, res)
	case "json":
		return writeJSON(stdout, res)
	default:
		return usageErrorf(2, "Unknown --format %q (expected text|json)", *formatFlag)
	}
}

func resolveQuery(queryFlag string, remainingArgs []string, stdin io.Reader) (string, error) {
	if queryFlag != "" {
		if len(remainingArgs) != 0 {
			return "", usageErrorf(2, "Provide either --query or a file path, not both")
		}
		return normalizeQuery(queryFlag), nil
	}

	if len(remainingArgs) > 1 {
		return "", usageErrorf(2, "Usage: cyq exists [flags] [file|-]")
	}

	filename := "-"
	if len(remainingArgs) == 1 {
		filename = remainingArgs[0]
	}

	var content []byte
	var err error
	if filename == "-" {
		content, err = io.ReadAll(stdin)
	} else {
		content, err = os.ReadFile(filename)
	}
	if err != nil {
		return "", fmt.Errorf("read subquery: %w", err)
	}

	query := normalizeQuery(string(content))
	if query == "" {
		return "", usageErrorf(2, "Subquery is empty")
	}
	return query, nil
}

func normalizeQuery(query string) string {
	q := strings.TrimSpace(query)
	q = strings.TrimSuffix(q, ";")
	return strings.TrimSpace(q)
}
