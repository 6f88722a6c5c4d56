package report

// ComputeTrends diffs the current scan against a previous one of the same
// tree. Finding identity is the deterministic finding ID, so unchanged code
// produces zero new and zero resolved findings across scans.
func ComputeTrends(prev, cur *ScanResult) *Trends {
	if prev == nil || cur == nil {
		return nil
	}

	prevIDs := make(map[string]bool, len(prev.Findings))
	for _, f := range prev.Findings {
		prevIDs[f.ID] = true
	}
	curIDs := make(map[string]bool, len(cur.Findings))
	for _, f := range cur.Findings {
		curIDs[f.ID] = true
	}

	t := &Trends{
		PreviousScanID:   prev.ID,
		DebtDeltaMinutes: cur.Debt.TotalMinutes - prev.Debt.TotalMinutes,
		RatingBefore:     prev.Debt.Rating,
		RatingAfter:      cur.Debt.Rating,
		FilesDelta:       cur.Summary.TotalFiles - prev.Summary.TotalFiles,
		RiskDelta:        cur.Business.RiskScore - prev.Business.RiskScore,
	}
	for id := range curIDs {
		if !prevIDs[id] {
			t.NewFindings++
		}
	}
	for id := range prevIDs {
		if !curIDs[id] {
			t.ResolvedFindings++
		}
	}
	return t
}
