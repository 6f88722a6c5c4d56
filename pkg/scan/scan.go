// Package scan orchestrates a full scan: collect source files, run the
// per-file analyzers, and aggregate the results. The CLI, watch mode, and
// the MCP server all go through Run.
package scan

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/debtscope/debtscope/pkg/analysis"
	"github.com/debtscope/debtscope/pkg/config"
	"github.com/debtscope/debtscope/pkg/gitinfo"
	"github.com/debtscope/debtscope/pkg/report"
	"github.com/debtscope/debtscope/pkg/scanignore"
	"github.com/debtscope/debtscope/pkg/source"
)

var logger = log.New(os.Stderr, "[debtscope:scan] ", log.Ltime)

// Run scans the tree rooted at root with the given configuration and
// returns the aggregated result. The scan itself is stateless; persisting
// the result is the caller's concern.
func Run(ctx context.Context, root string, cfg *config.Config) (*report.ScanResult, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	ignore, err := scanignore.New(root, cfg.Ignore)
	if err != nil {
		return nil, fmt.Errorf("loading ignore rules: %w", err)
	}

	units, collected, err := source.Collect(source.CollectOptions{
		Root:        root,
		Ignore:      ignore,
		MaxFileSize: cfg.MaxFileSize,
	})
	if err != nil {
		return nil, fmt.Errorf("collecting sources: %w", err)
	}
	logger.Printf("collected %d files under %s (%d skipped)", len(units), root, collected.FilesSkipped)

	reports, err := analysis.AnalyzeAll(ctx, units, analysis.Config{
		Concurrency: cfg.Concurrency,
		Smells:      cfg.Smells,
		Security:    cfg.Security,
		Authorship:  cfg.Authorship,
	})
	if err != nil {
		return nil, fmt.Errorf("analyzing sources: %w", err)
	}

	opts := report.Options{
		Root:                root,
		MinutesPerLine:      cfg.MinutesPerLine,
		HourlyRate:          cfg.HourlyRate,
		SeverityWeights:     cfg.SeverityWeights,
		TestCoveragePercent: source.CoveragePercent(units),
		AIThreshold:         cfg.AIThreshold,
		Benchmarks:          cfg.Benchmarks,
	}
	if gi, err := gitinfo.Resolve(root); err == nil && gi != nil {
		opts.GitCommit = gi.Commit
		opts.GitBranch = gi.Branch
	}

	return report.Aggregate(reports, opts), nil
}
