package report

import "github.com/debtscope/debtscope/pkg/analysis"

// Release readiness grades.
const (
	ReadinessReady   = "ready"
	ReadinessAtRisk  = "at-risk"
	ReadinessBlocked = "blocked"
)

// ComputeEnterpriseMetrics derives the delivery-health view from a scan
// result. It is a pure read: the result is never mutated, and an empty scan
// yields zeroed metrics graded ready.
func ComputeEnterpriseMetrics(res *ScanResult) *EnterpriseMetrics {
	m := &EnterpriseMetrics{
		SecurityFindings: res.Summary.FindingsByCategory[analysis.CategorySecurity],
		ReleaseReadiness: releaseReadiness(res),
	}

	if res.Summary.TotalFiles > 0 {
		m.DebtPerFileMinutes = float64(res.Debt.TotalMinutes) / float64(res.Summary.TotalFiles)
		m.FindingsPerFile = float64(res.Summary.TotalFindings) / float64(res.Summary.TotalFiles)
	}
	if res.Summary.TotalFindings > 0 {
		m.MeanRemediationMinutes = float64(res.Debt.TotalMinutes) / float64(res.Summary.TotalFindings)
	}

	if res.Summary.TotalFiles > 0 {
		failing := map[string]bool{}
		for _, f := range res.Findings {
			if f.Severity == analysis.SevBlocker || f.Severity == analysis.SevCritical {
				failing[f.FilePath] = true
			}
		}
		m.ChangeFailurePercent = 100 * float64(len(failing)) / float64(res.Summary.TotalFiles)
	}
	return m
}

// releaseReadiness grades the scan: blockers or a D/E rating block a
// release, criticals or a C rating put it at risk, anything else is ready.
func releaseReadiness(res *ScanResult) string {
	switch {
	case res.Summary.FindingsBySeverity[analysis.SevBlocker] > 0,
		res.Debt.Rating == RatingD, res.Debt.Rating == RatingE:
		return ReadinessBlocked
	case res.Summary.FindingsBySeverity[analysis.SevCritical] > 0,
		res.Debt.Rating == RatingC:
		return ReadinessAtRisk
	default:
		return ReadinessReady
	}
}
