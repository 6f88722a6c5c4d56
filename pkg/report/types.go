// Package report aggregates per-file analysis reports into a scan result:
// debt accounting, ratings, business impact, benchmarks, and machine-authored
// code summaries. Aggregation is a pure fold over the file reports; nothing
// here re-reads source files.
package report

import (
	"time"

	"github.com/debtscope/debtscope/pkg/analysis"
	"github.com/debtscope/debtscope/pkg/source"
)

// Rating letters for the debt ratio, best to worst.
const (
	RatingA = "A"
	RatingB = "B"
	RatingC = "C"
	RatingD = "D"
	RatingE = "E"
)

// Summary holds the whole-scan counts.
type Summary struct {
	TotalFiles          int            `json:"totalFiles"`
	TotalLines          int            `json:"totalLines"`
	CodeLines           int            `json:"codeLines"`
	CommentLines        int            `json:"commentLines"`
	BlankLines          int            `json:"blankLines"`
	TotalFindings       int            `json:"totalFindings"`
	FindingsBySeverity  map[string]int `json:"findingsBySeverity"`
	FindingsByCategory  map[string]int `json:"findingsByCategory"`
	FindingsByKind      map[string]int `json:"findingsByKind"`
	LanguageFiles       map[string]int `json:"languageFiles"`
	TestCoveragePercent float64        `json:"testCoveragePercent"`
}

// TechnicalDebt is the debt accounting block.
type TechnicalDebt struct {
	// TotalMinutes is the summed remediation effort across all findings.
	TotalMinutes int `json:"totalMinutes"`

	// DebtRatio is remediation effort relative to estimated development
	// effort, as a percentage.
	DebtRatio float64 `json:"debtRatio"`

	// Rating is the letter grade derived from DebtRatio.
	Rating string `json:"rating"`

	// MaintainabilityIndex is a 0-100 composite of complexity, size, and
	// comment density. Higher is better.
	MaintainabilityIndex float64 `json:"maintainabilityIndex"`
}

// ComplexitySummary rolls up the per-file complexity metrics.
type ComplexitySummary struct {
	TotalCyclomatic     int      `json:"totalCyclomatic"`
	TotalCognitive      int      `json:"totalCognitive"`
	TotalFunctions      int      `json:"totalFunctions"`
	AverageCyclomatic   float64  `json:"averageCyclomatic"`
	HighComplexityFiles []string `json:"highComplexityFiles"`
}

// WorstFile is one entry in the maintainability ranking.
type WorstFile struct {
	Path   string  `json:"path"`
	Score  float64 `json:"score"` // 0-100, lower is worse
	Reason string  `json:"reason"`
}

// CriticalFile is one entry in the debt-concentration ranking.
type CriticalFile struct {
	Path        string `json:"path"`
	DebtMinutes int    `json:"debtMinutes"`
	Findings    int    `json:"findings"`
}

// BusinessImpact translates findings into planning terms.
type BusinessImpact struct {
	// EstimatedCost is the remediation cost at the configured hourly rate.
	EstimatedCost float64 `json:"estimatedCost"`

	// TimeToFix is the total debt rendered as a working-time span.
	TimeToFix string `json:"timeToFix"`

	// RiskScore is the severity-weighted exposure, capped at 100.
	RiskScore float64 `json:"riskScore"`

	// Productivity and CustomerImpact are qualitative labels: Productivity
	// classifies drag on development speed from complexity, smell density,
	// and the debt ratio; CustomerImpact classifies user-facing exposure
	// from security and reliability findings.
	Productivity   string `json:"productivity"`
	CustomerImpact string `json:"customerImpact"`

	// Recommendations is an ordered list of remediation advice, each entry
	// gated by its own threshold; a clean scan yields none.
	Recommendations []string `json:"recommendations"`

	// WorstFiles lists up to ten files by ascending maintainability score.
	WorstFiles []WorstFile `json:"worstFiles"`

	// QuickWins lists up to ten high-severity findings fixable in under
	// half an hour.
	QuickWins []*analysis.Finding `json:"quickWins"`

	// CriticalPath lists up to five files carrying the most debt.
	CriticalPath []CriticalFile `json:"criticalPath"`
}

// FileMetrics is the per-file row kept in the scan result.
type FileMetrics struct {
	Path         string                     `json:"path"`
	Language     string                     `json:"language"`
	Lines        source.LineMetrics         `json:"lines"`
	Complexity   analysis.ComplexityMetrics `json:"complexity"`
	Findings     int                        `json:"findings"`
	DebtMinutes  int                        `json:"debtMinutes"`
	AILikelihood float64                    `json:"aiLikelihood,omitempty"`
}

// PatternFrequency is one authorship pattern with its file count.
type PatternFrequency struct {
	Type  string `json:"type"`
	Files int    `json:"files"`
}

// AICodeSummary rolls the per-file authorship analyses into codebase-level
// counts and advice.
type AICodeSummary struct {
	FilesAnalyzed     int                `json:"filesAnalyzed"`
	LikelyAIFiles     int                `json:"likelyAiFiles"`
	LikelyHumanFiles  int                `json:"likelyHumanFiles"`
	MixedFiles        int                `json:"mixedFiles"`
	AverageLikelihood float64            `json:"averageLikelihood"`
	TopPatterns       []PatternFrequency `json:"topPatterns"`
	AIFindingsBySev   map[string]int     `json:"aiFindingsBySeverity"`

	// SecurityRisks, MaintenanceRisks, and QualityRisks count files whose
	// matched pattern types fall in each risk class: tool signatures are a
	// security risk (unreviewed machine output), structural repetition a
	// maintenance risk, generic comments and naming a quality risk.
	SecurityRisks    int `json:"securityRisks"`
	MaintenanceRisks int `json:"maintenanceRisks"`
	QualityRisks     int `json:"qualityRisks"`

	Recommendations []string `json:"recommendations"`
}

// BenchmarkComparison compares one scan metric against target and industry
// reference values.
type BenchmarkComparison struct {
	Metric   string  `json:"metric"`
	Current  float64 `json:"current"`
	Target   float64 `json:"target"`
	Industry float64 `json:"industry"`
	Status   string  `json:"status"` // "good", "acceptable", or "poor"
}

// Trends describes the delta between two scans of the same tree.
type Trends struct {
	PreviousScanID   string  `json:"previousScanId"`
	NewFindings      int     `json:"newFindings"`
	ResolvedFindings int     `json:"resolvedFindings"`
	DebtDeltaMinutes int     `json:"debtDeltaMinutes"`
	RatingBefore     string  `json:"ratingBefore"`
	RatingAfter      string  `json:"ratingAfter"`
	FilesDelta       int     `json:"filesDelta"`
	RiskDelta        float64 `json:"riskDelta"`
}

// EnterpriseMetrics is a derived delivery-health view over one scan,
// computed by ComputeEnterpriseMetrics; it is never stored on the result.
type EnterpriseMetrics struct {
	// DebtPerFileMinutes and FindingsPerFile normalize totals by file count.
	DebtPerFileMinutes float64 `json:"debtPerFileMinutes"`
	FindingsPerFile    float64 `json:"findingsPerFile"`

	// MeanRemediationMinutes is the average effort per finding, a proxy for
	// time-to-restore.
	MeanRemediationMinutes float64 `json:"meanRemediationMinutes"`

	// ChangeFailurePercent is the share of files carrying a blocker or
	// critical finding, a proxy for change failure rate.
	ChangeFailurePercent float64 `json:"changeFailurePercent"`

	// SecurityFindings counts security-category findings.
	SecurityFindings int `json:"securityFindings"`

	// ReleaseReadiness grades the scan "ready", "at-risk", or "blocked".
	ReleaseReadiness string `json:"releaseReadiness"`
}

// ScanResult is the complete output of one scan.
type ScanResult struct {
	// ID identifies this scan run. Like Timestamp it is per-run metadata:
	// two scans of identical input produce identical results apart from
	// these two fields.
	ID        string    `json:"id"`
	Root      string    `json:"root"`
	Timestamp time.Time `json:"timestamp"`

	// GitCommit and GitBranch identify the scanned revision when the root
	// is inside a repository.
	GitCommit string `json:"gitCommit,omitempty"`
	GitBranch string `json:"gitBranch,omitempty"`

	Summary    Summary               `json:"summary"`
	Debt       TechnicalDebt         `json:"debt"`
	Complexity ComplexitySummary     `json:"complexity"`
	Business   BusinessImpact        `json:"business"`
	Files      []FileMetrics         `json:"files"`
	Findings   []*analysis.Finding   `json:"findings"`
	AISummary  *AICodeSummary        `json:"aiSummary,omitempty"`
	Benchmarks []BenchmarkComparison `json:"benchmarks,omitempty"`
	Trends     *Trends               `json:"trends,omitempty"`
}
