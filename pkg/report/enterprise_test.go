package report

import (
	"testing"

	"github.com/debtscope/debtscope/pkg/analysis"
)

func TestComputeEnterpriseMetrics(t *testing.T) {
	res := Aggregate([]*analysis.FileReport{
		fileReport("a.js", 1000,
			analysis.NewFinding(analysis.KindSQLInjection, analysis.SevBlocker, "a.js", 1, "m", 30),
			analysis.NewFinding(analysis.KindLongMethod, analysis.SevMajor, "a.js", 2, "m", 90),
		),
		fileReport("b.js", 1000),
	}, Options{})

	m := ComputeEnterpriseMetrics(res)
	if m.DebtPerFileMinutes != 60 {
		t.Errorf("debt per file = %f, want 60", m.DebtPerFileMinutes)
	}
	if m.FindingsPerFile != 1 {
		t.Errorf("findings per file = %f, want 1", m.FindingsPerFile)
	}
	if m.MeanRemediationMinutes != 60 {
		t.Errorf("mean remediation = %f, want 60", m.MeanRemediationMinutes)
	}
	// One of two files carries a blocker.
	if m.ChangeFailurePercent != 50 {
		t.Errorf("change failure = %f, want 50", m.ChangeFailurePercent)
	}
	if m.SecurityFindings != 1 {
		t.Errorf("security findings = %d, want 1", m.SecurityFindings)
	}
	if m.ReleaseReadiness != ReadinessBlocked {
		t.Errorf("readiness = %s, want blocked", m.ReleaseReadiness)
	}
}

func TestReleaseReadinessGrades(t *testing.T) {
	ready := Aggregate([]*analysis.FileReport{fileReport("a.js", 100)}, Options{})
	if m := ComputeEnterpriseMetrics(ready); m.ReleaseReadiness != ReadinessReady {
		t.Errorf("clean scan readiness = %s, want ready", m.ReleaseReadiness)
	}

	atRisk := Aggregate([]*analysis.FileReport{fileReport("a.js", 1000,
		analysis.NewFinding(analysis.KindDynamicEval, analysis.SevCritical, "a.js", 1, "m", 20),
	)}, Options{})
	if m := ComputeEnterpriseMetrics(atRisk); m.ReleaseReadiness != ReadinessAtRisk {
		t.Errorf("critical finding readiness = %s, want at-risk", m.ReleaseReadiness)
	}
}

func TestComputeEnterpriseMetricsEmpty(t *testing.T) {
	m := ComputeEnterpriseMetrics(Aggregate(nil, Options{}))
	if m.DebtPerFileMinutes != 0 || m.FindingsPerFile != 0 || m.ChangeFailurePercent != 0 {
		t.Errorf("empty metrics = %+v, want zeroes", m)
	}
	if m.ReleaseReadiness != ReadinessReady {
		t.Errorf("empty readiness = %s, want ready", m.ReleaseReadiness)
	}
}
