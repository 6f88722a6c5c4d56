package analysis

import (
	"context"
	"log"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/debtscope/debtscope/pkg/source"
)

var logger = log.New(os.Stderr, "[debtscope:analysis] ", log.Ltime)

// Config controls a run of the analyzer over a set of files.
type Config struct {
	// Concurrency bounds the number of files analyzed in parallel.
	// Zero means DefaultConcurrency.
	Concurrency int

	// Smells, Security, and Authorship toggle the corresponding analyzer.
	// All default to enabled through EnabledDefaults.
	Smells     bool
	Security   bool
	Authorship bool
}

// EnabledDefaults returns a Config with every analyzer switched on.
func EnabledDefaults() Config {
	return Config{
		Concurrency: DefaultConcurrency,
		Smells:      true,
		Security:    true,
		Authorship:  true,
	}
}

// AnalyzeFile runs the configured analyzers over one source unit. It never
// fails: every analyzer degrades to empty output on pathological input.
func AnalyzeFile(unit source.SourceUnit, cfg Config) *FileReport {
	lang := source.DetectLanguage(unit.Path)
	lm := source.CountLines(unit.Content)

	report := &FileReport{
		Path:       unit.Path,
		Language:   lang,
		Lines:      lm,
		Complexity: AnalyzeComplexity(unit.Content, lang),
	}

	if cfg.Smells {
		report.Findings = append(report.Findings, AnalyzeSmells(unit.Path, unit.Content, lang)...)
	}
	if cfg.Security {
		report.Findings = append(report.Findings, AnalyzeSecurity(unit.Path, unit.Content)...)
	}
	if cfg.Authorship {
		report.Authorship = AnalyzeAuthorship(unit.Path, unit.Content, lang, lm, report.Complexity)
	}
	return report
}

// AnalyzeAll analyzes every unit with bounded concurrency and returns the
// reports in input order. Per-file work cannot fail, so the only error is
// context cancellation.
func AnalyzeAll(ctx context.Context, units []source.SourceUnit, cfg Config) ([]*FileReport, error) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	reports := make([]*FileReport, len(units))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for i, unit := range units {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = AnalyzeFile(unit, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Printf("analyzed %d files (concurrency %d)", len(units), cfg.Concurrency)
	return reports, nil
}
