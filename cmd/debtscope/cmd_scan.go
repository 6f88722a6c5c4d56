package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/debtscope/debtscope/pkg/analysis"
	"github.com/debtscope/debtscope/pkg/config"
	"github.com/debtscope/debtscope/pkg/report"
	"github.com/debtscope/debtscope/pkg/scan"
	"github.com/debtscope/debtscope/pkg/store"
)

// cmdScan runs a full scan and prints the result. Unless --no-store is
// given, the result also replaces the stored latest scan so findings and
// mcp commands can answer without rescanning.
func cmdScan(args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	res, err := scan.Run(context.Background(), root, cfg)
	if err != nil {
		return err
	}

	if !hasFlag(args, "--no-store") {
		st, err := store.Open(storeDir(root, cfg))
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer st.Close()

		if prev, err := st.LatestScan(); err == nil {
			res.Trends = report.ComputeTrends(prev, res)
		}
		if err := st.SaveScan(res); err != nil {
			return err
		}
	}

	if hasFlag(args, "--json") {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(formatScanResult(res))
	return nil
}

// formatScanResult renders the human-readable scan report.
func formatScanResult(res *report.ScanResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Scan %s\n", res.ID)
	fmt.Fprintf(&sb, "Root: %s\n", res.Root)
	if res.GitCommit != "" {
		fmt.Fprintf(&sb, "Revision: %s", truncate(res.GitCommit, 12))
		if res.GitBranch != "" {
			fmt.Fprintf(&sb, " (%s)", res.GitBranch)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Files: %d  Lines: %d (code %d, comments %d, blank %d)\n",
		res.Summary.TotalFiles, res.Summary.TotalLines,
		res.Summary.CodeLines, res.Summary.CommentLines, res.Summary.BlankLines)
	fmt.Fprintf(&sb, "Findings: %d  %s\n", res.Summary.TotalFindings, formatSeverityCounts(res.Summary.FindingsBySeverity))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Debt: %s (%.1f%% debt ratio, rating %s)\n",
		formatMinutes(res.Debt.TotalMinutes), res.Debt.DebtRatio, res.Debt.Rating)
	fmt.Fprintf(&sb, "Maintainability: %.1f/100\n", res.Debt.MaintainabilityIndex)
	fmt.Fprintf(&sb, "Estimated cost: %.0f  Time to fix: %s  Risk score: %.0f/100\n",
		res.Business.EstimatedCost, res.Business.TimeToFix, res.Business.RiskScore)
	fmt.Fprintf(&sb, "Productivity impact: %s  Customer impact: %s\n",
		res.Business.Productivity, res.Business.CustomerImpact)
	fmt.Fprintf(&sb, "Complexity: %d cyclomatic / %d cognitive across %d functions (avg %.1f per file)\n",
		res.Complexity.TotalCyclomatic, res.Complexity.TotalCognitive,
		res.Complexity.TotalFunctions, res.Complexity.AverageCyclomatic)

	if len(res.Complexity.HighComplexityFiles) > 0 {
		fmt.Fprintf(&sb, "High-complexity files: %s\n", strings.Join(res.Complexity.HighComplexityFiles, ", "))
	}
	sb.WriteString("\n")

	if len(res.Business.WorstFiles) > 0 {
		sb.WriteString("Worst files:\n")
		for _, wf := range res.Business.WorstFiles {
			fmt.Fprintf(&sb, "  %5.1f  %-50s %s\n", wf.Score, truncate(wf.Path, 50), wf.Reason)
		}
		sb.WriteString("\n")
	}

	if len(res.Business.QuickWins) > 0 {
		sb.WriteString("Quick wins:\n")
		for _, f := range res.Business.QuickWins {
			sb.WriteString("  " + formatFindingLine(f))
		}
		sb.WriteString("\n")
	}

	if len(res.Business.CriticalPath) > 0 {
		sb.WriteString("Critical path:\n")
		for _, cf := range res.Business.CriticalPath {
			fmt.Fprintf(&sb, "  %-50s %s across %d findings\n",
				truncate(cf.Path, 50), formatMinutes(cf.DebtMinutes), cf.Findings)
		}
		sb.WriteString("\n")
	}

	if len(res.Business.Recommendations) > 0 {
		sb.WriteString("Recommendations:\n")
		for _, rec := range res.Business.Recommendations {
			fmt.Fprintf(&sb, "  - %s\n", rec)
		}
		sb.WriteString("\n")
	}

	em := report.ComputeEnterpriseMetrics(res)
	fmt.Fprintf(&sb, "Delivery: %s (%.1f%% change-failure proxy, %.0fm mean remediation)\n",
		em.ReleaseReadiness, em.ChangeFailurePercent, em.MeanRemediationMinutes)
	sb.WriteString("\n")

	if res.AISummary != nil && res.AISummary.FilesAnalyzed > 0 {
		ai := res.AISummary
		fmt.Fprintf(&sb, "Authorship: %d likely AI, %d likely human, %d mixed (avg likelihood %.0f%%)\n",
			ai.LikelyAIFiles, ai.LikelyHumanFiles, ai.MixedFiles, ai.AverageLikelihood)
		for _, rec := range ai.Recommendations {
			fmt.Fprintf(&sb, "  - %s\n", rec)
		}
		sb.WriteString("\n")
	}

	if len(res.Benchmarks) > 0 {
		sb.WriteString("Benchmarks:\n")
		for _, b := range res.Benchmarks {
			fmt.Fprintf(&sb, "  %-22s %8.1f  target %6.1f  industry %6.1f  [%s]\n",
				b.Metric, b.Current, b.Target, b.Industry, b.Status)
		}
		sb.WriteString("\n")
	}

	if res.Trends != nil {
		t := res.Trends
		fmt.Fprintf(&sb, "Since %s: %+d findings (%d new, %d resolved), debt %s, rating %s -> %s\n",
			truncate(t.PreviousScanID, 10), t.NewFindings-t.ResolvedFindings,
			t.NewFindings, t.ResolvedFindings, formatMinutesDelta(t.DebtDeltaMinutes),
			t.RatingBefore, t.RatingAfter)
	}

	return sb.String()
}

// formatSeverityCounts renders severity counts worst-first.
func formatSeverityCounts(counts map[string]int) string {
	order := []string{analysis.SevBlocker, analysis.SevCritical, analysis.SevMajor, analysis.SevMinor, analysis.SevInfo}
	var parts []string
	for _, sev := range order {
		if n := counts[sev]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, sev))
		}
	}
	return strings.Join(parts, ", ")
}

func formatFindingLine(f *analysis.Finding) string {
	loc := f.FilePath
	if f.Line > 0 {
		loc = fmt.Sprintf("%s:%d", f.FilePath, f.Line)
	}
	return fmt.Sprintf("[%s] %s - %s (%dm)\n", f.Severity, loc, f.Message, f.EffortMinutes)
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes < 8*60 {
		return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%.1fd", float64(minutes)/(8*60))
}

func formatMinutesDelta(minutes int) string {
	if minutes < 0 {
		return "-" + formatMinutes(-minutes)
	}
	return "+" + formatMinutes(minutes)
}
