// Sales pipeline: lead stage gates over HTTP, MCP and the command line.
//
// Usage:
//
//	pipeline serve          # HTTP API (config from PIPELINE_CONFIG)
//	pipeline mcp            # MCP server on stdio
//	pipeline eval FILE      # evaluate snapshot JSON from FILE
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"salespipeline/internal/app"
	"salespipeline/internal/cli"
	"salespipeline/internal/config"
	"salespipeline/internal/mcptools"
)

// @title           Sales Pipeline API
// @version         1.0
// @description     Stage-gate evaluation, lead storage and specialist work orders.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe()
	case "mcp":
		err = runMCP()
	case "eval":
		err = runEval(os.Args[2:])
	case "--help", "-h", "help":
		printUsage()
		return
	case "--version", "-v", "version":
		fmt.Printf("pipeline v%s\n", mcptools.Version)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return app.Run(cfg)
}

// runMCP keeps stdout for the protocol; logs go to stderr.
func runMCP() error {
	cfg, err := engineConfig("")
	if err != nil {
		return err
	}
	engine, err := app.NewEngine(cfg)
	if err != nil {
		return err
	}
	log.SetOutput(os.Stderr)
	return server.ServeStdio(mcptools.NewServer(engine))
}

func runEval(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print raw JSON instead of the styled report")
	configPath := fs.String("config", "", "config file (default: PIPELINE_CONFIG)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: pipeline eval [-json] [-config FILE] SNAPSHOT.json")
	}

	cfg, err := engineConfig(*configPath)
	if err != nil {
		return err
	}
	engine, err := app.NewEngine(cfg)
	if err != nil {
		return err
	}
	return cli.Eval(context.Background(), engine, fs.Arg(0), *asJSON, os.Stdout)
}

// engineConfig loads the config for commands that only need the engine.
// A missing default file means stock thresholds.
func engineConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		if os.Getenv("PIPELINE_CONFIG") == "" && errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `pipeline v%s

Usage:
  pipeline <command> [arguments]

Commands:
  serve               Start the HTTP API
  mcp                 Start the MCP server (stdio transport)
  eval [-json] FILE   Evaluate one snapshot or an array of snapshots
  version             Print the version
  help                Show this help

Configuration is read from the YAML or TOML file named by PIPELINE_CONFIG
(default config/config.yaml). mcp and eval fall back to the stock
thresholds when the default file is missing.
`, mcptools.Version)
}
