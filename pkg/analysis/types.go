// Package analysis defines the finding model and the per-file heuristic
// analyzers: complexity, code smells, security patterns, and authorship
// classification. All signals are lexical (regex and token heuristics over
// raw text, never an AST), which keeps every analyzer language-agnostic and
// a pure function of its input.
package analysis

import (
	"fmt"
	"hash/fnv"

	"github.com/debtscope/debtscope/pkg/source"
)

// Severity levels for findings, ordered from worst to least.
const (
	SevBlocker  = "blocker"
	SevCritical = "critical"
	SevMajor    = "major"
	SevMinor    = "minor"
	SevInfo     = "info"
)

// SeverityRank returns a numeric rank for the given severity level:
// info=0, minor=1, major=2, critical=3, blocker=4. Unknown values return -1.
func SeverityRank(sev string) int {
	switch sev {
	case SevInfo:
		return 0
	case SevMinor:
		return 1
	case SevMajor:
		return 2
	case SevCritical:
		return 3
	case SevBlocker:
		return 4
	default:
		return -1
	}
}

// Finding categories.
const (
	CategorySmell    = "smell"
	CategorySecurity = "security"
)

// Smell finding kinds.
const (
	KindLongMethod           = "long_method"
	KindLargeFile            = "large_file"
	KindMagicNumber          = "magic_number"
	KindDeepNesting          = "deep_nesting"
	KindDeadCode             = "dead_code"
	KindCodeDuplication      = "code_duplication"
	KindMissingErrorHandling = "missing_error_handling"
)

// Security finding kinds.
const (
	KindHardcodedSecret = "hardcoded_secret"
	KindSQLInjection    = "sql_injection"
	KindMarkupInjection = "markup_injection"
	KindInsecureRandom  = "insecure_random"
	KindDynamicEval     = "dynamic_eval"
	KindRiskyExec       = "risky_exec"
)

// KindCategory maps a finding kind to its category. Unknown kinds are
// treated as smells.
func KindCategory(kind string) string {
	switch kind {
	case KindHardcodedSecret, KindSQLInjection, KindMarkupInjection,
		KindInsecureRandom, KindDynamicEval, KindRiskyExec:
		return CategorySecurity
	default:
		return CategorySmell
	}
}

// Finding is a single detected issue. Findings are pure values: created once
// by a detector, never mutated afterward. The ID is derived from
// (kind, file, line) so repeated scans of unchanged input reproduce
// identical IDs.
type Finding struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	Category      string `json:"category"`
	Severity      string `json:"severity"`
	FilePath      string `json:"file"`
	Line          int    `json:"line,omitempty"`
	Message       string `json:"message"`
	EffortMinutes int    `json:"effortMinutes"`
	// WeaknessID references an external vulnerability taxonomy (CWE).
	WeaknessID string `json:"weaknessId,omitempty"`
}

// NewFinding constructs a Finding with its deterministic ID and derived
// category filled in.
func NewFinding(kind, severity, file string, line int, message string, effortMinutes int) *Finding {
	return &Finding{
		ID:            findingID(kind, file, line),
		Kind:          kind,
		Category:      KindCategory(kind),
		Severity:      severity,
		FilePath:      file,
		Line:          line,
		Message:       message,
		EffortMinutes: effortMinutes,
	}
}

// findingID hashes (kind, file, line) into a stable hex identifier.
func findingID(kind, file string, line int) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%d", kind, file, line)
	return fmt.Sprintf("%016x", h.Sum64())
}

// ComplexityMetrics holds the per-file complexity signals.
// Invariant: Cyclomatic >= 1 for any input.
type ComplexityMetrics struct {
	Cyclomatic         int     `json:"cyclomatic"`
	Cognitive          int     `json:"cognitive"`
	FunctionCount      int     `json:"functionCount"`
	AveragePerFunction float64 `json:"averagePerFunction"`
}

// Pattern is one matched authorship signal.
type Pattern struct {
	Type       string `json:"type"`
	Confidence int    `json:"confidence"` // 0-100
	Severity   string `json:"severity"`
	Detail     string `json:"detail,omitempty"`
}

// Indicators are informational 0-100 sub-scores computed independently of
// the likelihood formula.
type Indicators struct {
	StyleConsistency     int `json:"styleConsistency"`
	CommentQuality       int `json:"commentQuality"`
	NamingQuality        int `json:"namingQuality"`
	StructuralQuality    int `json:"structuralQuality"`
	ErrorHandlingQuality int `json:"errorHandlingQuality"`
}

// AuthorshipAnalysis estimates whether a file was machine-generated.
// AILikelihood and HumanLikelihood are complementary and always sum to 100.
type AuthorshipAnalysis struct {
	AILikelihood    float64    `json:"aiLikelihood"`
	HumanLikelihood float64    `json:"humanLikelihood"`
	Patterns        []Pattern  `json:"patterns"`
	Indicators      Indicators `json:"indicators"`
}

// FileReport joins every per-file analysis output. It is created once per
// input file and owned exclusively by the aggregator afterwards.
type FileReport struct {
	Path       string              `json:"path"`
	Language   string              `json:"language"`
	Lines      source.LineMetrics  `json:"lines"`
	Complexity ComplexityMetrics   `json:"complexity"`
	Findings   []*Finding          `json:"findings"`
	Authorship *AuthorshipAnalysis `json:"authorship,omitempty"`
}

// DebtMinutes sums the remediation effort across the file's findings.
func (r *FileReport) DebtMinutes() int {
	total := 0
	for _, f := range r.Findings {
		total += f.EffortMinutes
	}
	return total
}
