package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/debtscope/debtscope/pkg/config"
	"github.com/debtscope/debtscope/pkg/store"
)

// cmdFindings lists or searches findings from the stored latest scan.
func cmdFindings(args []string) error {
	root, err := resolveRoot(nil)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	st, err := store.Open(storeDir(root, cfg))
	if err != nil {
		return fmt.Errorf("opening store (run a scan first): %w", err)
	}
	defer st.Close()

	opts := store.FilterOptions{
		Severity: parseFlag(args, "--severity="),
		Kind:     parseFlag(args, "--kind="),
		File:     parseFlag(args, "--file="),
	}
	if limitStr := parseFlag(args, "--limit="); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return fmt.Errorf("invalid --limit: %q", limitStr)
		}
		opts.Limit = limit
	}

	if hasFlag(args, "--stats") {
		bySeverity, byKind, err := st.Stats()
		if err != nil {
			return err
		}
		fmt.Print(formatStats(bySeverity, byKind))
		return nil
	}

	if query := parseFlag(args, "--search="); query != "" {
		hits, err := st.SearchFindings(query, opts)
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			fmt.Println("No findings matched.")
			return nil
		}
		for _, h := range hits {
			fmt.Printf("%.2f  %s", h.Score, formatFindingLine(h.Finding))
		}
		return nil
	}

	findings, err := st.ListFindings(opts)
	if err != nil {
		return err
	}
	if len(findings) == 0 {
		fmt.Println("No findings stored. Run 'debtscope scan' first.")
		return nil
	}
	for _, f := range findings {
		fmt.Print(formatFindingLine(f))
	}
	return nil
}

// cmdScans lists stored scan summaries, newest first.
func cmdScans(args []string) error {
	root, err := resolveRoot(nil)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	st, err := store.Open(storeDir(root, cfg))
	if err != nil {
		return fmt.Errorf("opening store (run a scan first): %w", err)
	}
	defer st.Close()

	limit := 10
	if limitStr := parseFlag(args, "--limit="); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			return fmt.Errorf("invalid --limit: %q", limitStr)
		}
	}

	scans, err := st.ListScans(limit)
	if err != nil {
		return err
	}
	if len(scans) == 0 {
		fmt.Println("No scans stored yet.")
		return nil
	}
	for _, s := range scans {
		fmt.Printf("%s  %s  rating %s  %4d files  %4d findings  %s debt\n",
			s.ID, s.Timestamp.Format("2006-01-02 15:04"), s.Rating,
			s.TotalFiles, s.TotalFindings, formatMinutes(s.DebtMinutes))
	}
	return nil
}

func formatStats(bySeverity, byKind map[string]int) string {
	var sb strings.Builder
	sb.WriteString("By severity:\n")
	sb.WriteString(formatCountMap(bySeverity))
	sb.WriteString("By kind:\n")
	sb.WriteString(formatCountMap(byKind))
	return sb.String()
}

func formatCountMap(counts map[string]int) string {
	var sb strings.Builder
	for _, key := range sortedKeys(counts) {
		fmt.Fprintf(&sb, "  %-24s %d\n", key, counts[key])
	}
	if len(counts) == 0 {
		sb.WriteString("  (none)\n")
	}
	return sb.String()
}
