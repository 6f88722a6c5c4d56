// Package main provides the CLI for debtscope.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/debtscope/debtscope/internal/version"
	"github.com/debtscope/debtscope/pkg/config"
	"github.com/debtscope/debtscope/pkg/gitinfo"
)

const defaultStoreDir = ".debtscope"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	if err := runCommand(cmd, args); err != nil {
		fatal("%v", err)
	}
}

func runCommand(cmd string, args []string) error {
	switch cmd {
	case "scan":
		return cmdScan(args)
	case "findings":
		return cmdFindings(args)
	case "scans":
		return cmdScans(args)
	case "watch":
		return cmdWatch(args)
	case "mcp":
		return cmdMCP(args)
	case "help", "-h", "--help":
		printUsage()
		return nil
	case "version", "-v", "--version":
		return cmdVersion(args)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// resolveRoot picks the scan root: the positional argument if given, else
// the enclosing git root, else the working directory.
func resolveRoot(args []string) (string, error) {
	for _, arg := range args {
		if len(arg) > 0 && arg[0] != '-' {
			return filepath.Abs(arg)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if gi, err := gitinfo.Resolve(cwd); err == nil && gi != nil && gi.Root != "" {
		return gi.Root, nil
	}
	return cwd, nil
}

// storeDir returns the store location for a project root, honouring the
// config override.
func storeDir(root string, cfg *config.Config) string {
	if cfg != nil && cfg.StorePath != "" {
		return cfg.StorePath
	}
	return filepath.Join(root, defaultStoreDir)
}

func cmdVersion(args []string) error {
	if hasFlag(args, "--json") {
		fmt.Println(version.JSON())
		return nil
	}
	fmt.Println(version.String())
	return nil
}

func printUsage() {
	fmt.Printf(`debtscope %s - technical debt scanner

Usage:
  debtscope <command> [arguments]

Commands:
  scan       Scan a directory and report technical debt (default: git root)
  findings   List or search stored findings from the last scan
  scans      List stored scan summaries
  watch      Rescan automatically when files change
  mcp        Start MCP server (stdio) exposing scan and findings tools
  version    Show version information

Environment:
  DEBTSCOPE_*  Override any config key, e.g. DEBTSCOPE_HOURLY_RATE=120

Examples:
  debtscope scan                         # scan the current repository
  debtscope scan --json ./src            # machine-readable result
  debtscope scan --no-store ./src        # skip persisting the result
  debtscope findings --severity=blocker  # list stored blockers
  debtscope findings --search="sql"      # full-text search
  debtscope watch                        # rescan on change
`, version.Short())
}
