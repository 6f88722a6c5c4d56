package report

// Benchmark status values.
const (
	StatusGood       = "good"
	StatusAcceptable = "acceptable"
	StatusPoor       = "poor"
)

// benchmarkTargets pairs each reported metric with target and industry
// reference values. Targets are aspirational; industry values approximate
// typical mature codebases. "Lower" marks metrics where smaller is better.
var benchmarkTargets = []struct {
	metric   string
	target   float64
	industry float64
	lower    bool
}{
	{"debtRatio", 5, 15, true},
	{"maintainabilityIndex", 80, 65, false},
	{"averageCyclomatic", 10, 20, true},
	{"riskScore", 20, 50, true},
	{"testCoveragePercent", 80, 60, false},
}

// benchmarks compares the scan's headline metrics against the reference
// table.
func benchmarks(res *ScanResult) []BenchmarkComparison {
	current := map[string]float64{
		"debtRatio":            res.Debt.DebtRatio,
		"maintainabilityIndex": res.Debt.MaintainabilityIndex,
		"averageCyclomatic":    res.Complexity.AverageCyclomatic,
		"riskScore":            res.Business.RiskScore,
		"testCoveragePercent":  res.Summary.TestCoveragePercent,
	}

	out := make([]BenchmarkComparison, 0, len(benchmarkTargets))
	for _, t := range benchmarkTargets {
		c := current[t.metric]
		out = append(out, BenchmarkComparison{
			Metric:   t.metric,
			Current:  c,
			Target:   t.target,
			Industry: t.industry,
			Status:   benchmarkStatus(c, t.target, t.industry, t.lower),
		})
	}
	return out
}

// benchmarkStatus grades a value: meeting the target is good, beating the
// industry reference is acceptable, anything else is poor.
func benchmarkStatus(current, target, industry float64, lower bool) string {
	if lower {
		switch {
		case current <= target:
			return StatusGood
		case current <= industry:
			return StatusAcceptable
		default:
			return StatusPoor
		}
	}
	switch {
	case current >= target:
		return StatusGood
	case current >= industry:
		return StatusAcceptable
	default:
		return StatusPoor
	}
}
