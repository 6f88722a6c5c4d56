package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/debtscope/debtscope/pkg/analysis"
)

// Scoring constants. These feed the debt ratio, ratings, and business-impact
// calculations and are the single source of truth for the scoring engine.
const (
	// DefaultMinutesPerLine estimates development effort per line of code,
	// the denominator of the debt ratio.
	DefaultMinutesPerLine = 30

	// DefaultHourlyRate prices remediation effort in currency units.
	DefaultHourlyRate = 75.0

	// Rating thresholds on the debt ratio, in percent.
	RatingAMaxRatio = 5.0
	RatingBMaxRatio = 10.0
	RatingCMaxRatio = 20.0
	RatingDMaxRatio = 50.0

	// RiskScoreCap bounds the severity-weighted risk score.
	RiskScoreCap = 100.0

	// HighComplexityThreshold marks a file as high-complexity when either
	// cyclomatic or cognitive complexity exceeds it.
	HighComplexityThreshold = 50

	// QuickWinMaxEffort is the effort ceiling, in minutes, for a finding
	// to count as a quick win.
	QuickWinMaxEffort = 30

	// List caps for the business-impact rankings.
	WorstFilesCap   = 10
	QuickWinsCap    = 10
	CriticalPathCap = 5

	// AI likelihood bucket boundaries.
	AILikelyThreshold    = 70.0
	HumanLikelyThreshold = 30.0
)

// Qualitative impact labels, least to worst.
const (
	ImpactMinimal     = "minimal"
	ImpactModerate    = "moderate"
	ImpactSignificant = "significant"
	ImpactSevere      = "severe"
)

// Productivity classifier thresholds: average cyclomatic complexity and
// smell findings per file, tiered alongside the rating boundaries.
const (
	ProductivityModerateCyclomatic    = 10.0
	ProductivitySignificantCyclomatic = 20.0
	ProductivitySevereCyclomatic      = 30.0

	ProductivityModerateSmellDensity    = 1.0
	ProductivitySignificantSmellDensity = 4.0
	ProductivitySevereSmellDensity      = 8.0
)

// Customer-impact classifier thresholds over security and reliability
// finding counts.
const (
	CustomerSevereSecurityFindings = 5
)

// DefaultSeverityWeights is the risk-score weight per severity level.
var DefaultSeverityWeights = map[string]float64{
	analysis.SevBlocker:  20,
	analysis.SevCritical: 10,
	analysis.SevMajor:    5,
	analysis.SevMinor:    2,
	analysis.SevInfo:     1,
}

// Options parameterizes an aggregation.
type Options struct {
	// Root is the scanned directory, recorded verbatim in the result.
	Root string

	// MinutesPerLine and HourlyRate override the scoring defaults when
	// positive.
	MinutesPerLine int
	HourlyRate     float64

	// SeverityWeights overrides DefaultSeverityWeights when non-nil.
	SeverityWeights map[string]float64

	// TestCoveragePercent is the file-count based coverage estimate from
	// collection.
	TestCoveragePercent float64

	// GitCommit and GitBranch stamp the scanned revision.
	GitCommit string
	GitBranch string

	// AIThreshold overrides the likely-AI bucket boundary when positive.
	AIThreshold float64

	// Benchmarks appends industry comparisons to the result.
	Benchmarks bool
}

func (o *Options) minutesPerLine() int {
	if o.MinutesPerLine > 0 {
		return o.MinutesPerLine
	}
	return DefaultMinutesPerLine
}

func (o *Options) hourlyRate() float64 {
	if o.HourlyRate > 0 {
		return o.HourlyRate
	}
	return DefaultHourlyRate
}

func (o *Options) severityWeights() map[string]float64 {
	if o.SeverityWeights != nil {
		return o.SeverityWeights
	}
	return DefaultSeverityWeights
}

func (o *Options) aiThreshold() float64 {
	if o.AIThreshold > 0 {
		return o.AIThreshold
	}
	return AILikelyThreshold
}

// Aggregate folds per-file reports into a complete scan result. The input
// order is preserved in Files; Findings are ordered by file, then line. An
// empty input produces a valid result with rating A and maintainability 100.
func Aggregate(reports []*analysis.FileReport, opts Options) *ScanResult {
	now := time.Now().UTC()
	res := &ScanResult{
		ID:        ulid.Make().String(),
		Root:      opts.Root,
		Timestamp: now,
		GitCommit: opts.GitCommit,
		GitBranch: opts.GitBranch,
		Summary: Summary{
			FindingsBySeverity:  map[string]int{},
			FindingsByCategory:  map[string]int{},
			FindingsByKind:      map[string]int{},
			LanguageFiles:       map[string]int{},
			TestCoveragePercent: opts.TestCoveragePercent,
		},
	}

	totalDebt := 0
	for _, r := range reports {
		res.Summary.TotalFiles++
		res.Summary.TotalLines += r.Lines.Total
		res.Summary.CodeLines += r.Lines.Code
		res.Summary.CommentLines += r.Lines.Comment
		res.Summary.BlankLines += r.Lines.Blank
		res.Summary.LanguageFiles[r.Language]++

		res.Complexity.TotalCyclomatic += r.Complexity.Cyclomatic
		res.Complexity.TotalCognitive += r.Complexity.Cognitive
		res.Complexity.TotalFunctions += r.Complexity.FunctionCount
		if r.Complexity.Cyclomatic > HighComplexityThreshold || r.Complexity.Cognitive > HighComplexityThreshold {
			res.Complexity.HighComplexityFiles = append(res.Complexity.HighComplexityFiles, r.Path)
		}

		debt := r.DebtMinutes()
		totalDebt += debt

		fm := FileMetrics{
			Path:        r.Path,
			Language:    r.Language,
			Lines:       r.Lines,
			Complexity:  r.Complexity,
			Findings:    len(r.Findings),
			DebtMinutes: debt,
		}
		if r.Authorship != nil {
			fm.AILikelihood = r.Authorship.AILikelihood
		}
		res.Files = append(res.Files, fm)

		for _, f := range r.Findings {
			res.Summary.TotalFindings++
			res.Summary.FindingsBySeverity[f.Severity]++
			res.Summary.FindingsByCategory[f.Category]++
			res.Summary.FindingsByKind[f.Kind]++
			res.Findings = append(res.Findings, f)
		}
	}
	if res.Summary.TotalFiles > 0 {
		res.Complexity.AverageCyclomatic = float64(res.Complexity.TotalCyclomatic) / float64(res.Summary.TotalFiles)
	}

	sort.SliceStable(res.Findings, func(i, j int) bool {
		a, b := res.Findings[i], res.Findings[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		return a.Line < b.Line
	})

	res.Debt = technicalDebt(totalDebt, res.Summary, res.Complexity, opts.minutesPerLine())
	res.Business = businessImpact(reports, res, totalDebt, opts)
	res.AISummary = aiCodeSummary(reports, opts.aiThreshold())
	if opts.Benchmarks {
		res.Benchmarks = benchmarks(res)
	}
	return res
}

// technicalDebt computes the debt block: total minutes, debt ratio against
// estimated development effort, letter rating, and maintainability index.
func technicalDebt(totalDebt int, sum Summary, cx ComplexitySummary, minutesPerLine int) TechnicalDebt {
	d := TechnicalDebt{TotalMinutes: totalDebt}

	devMinutes := sum.TotalLines * minutesPerLine
	if devMinutes > 0 {
		d.DebtRatio = 100 * float64(totalDebt) / float64(devMinutes)
	}
	d.Rating = RatingForRatio(d.DebtRatio)
	d.MaintainabilityIndex = maintainabilityIndex(sum, cx)
	return d
}

// RatingForRatio maps a debt ratio percentage to its letter grade.
func RatingForRatio(ratio float64) string {
	switch {
	case ratio <= RatingAMaxRatio:
		return RatingA
	case ratio <= RatingBMaxRatio:
		return RatingB
	case ratio <= RatingCMaxRatio:
		return RatingC
	case ratio <= RatingDMaxRatio:
		return RatingD
	default:
		return RatingE
	}
}

// maintainabilityIndex scores the codebase 0-100 from total complexity, size,
// and comment density. An empty codebase scores a perfect 100.
func maintainabilityIndex(sum Summary, cx ComplexitySummary) float64 {
	if sum.TotalFiles == 0 {
		return 100
	}
	mi := 100.0
	mi -= math.Min(float64(cx.TotalCyclomatic)/10, 30)
	if sum.TotalLines > 0 {
		mi -= math.Min(math.Log(float64(sum.TotalLines))*2, 30)
	}
	commentRatio := 0.0
	if sum.TotalLines > 0 {
		commentRatio = float64(sum.CommentLines) / float64(sum.TotalLines)
	}
	mi += commentRatio * 10
	return math.Max(0, math.Min(100, mi))
}

// businessImpact computes cost, risk, the qualitative labels, and the three
// planning rankings. The summary, complexity, and debt blocks of res must
// already be filled in.
func businessImpact(reports []*analysis.FileReport, res *ScanResult, totalDebt int, opts Options) BusinessImpact {
	b := BusinessImpact{
		EstimatedCost:  float64(totalDebt) / 60 * opts.hourlyRate(),
		TimeToFix:      timeToFix(totalDebt),
		RiskScore:      riskScore(res.Findings, opts.severityWeights()),
		Productivity:   productivityImpact(res.Summary, res.Complexity, res.Debt.DebtRatio),
		CustomerImpact: customerImpact(res.Summary),
		WorstFiles:     worstFiles(reports),
		QuickWins:      quickWins(res.Findings),
		CriticalPath:   criticalPath(reports),
	}
	b.Recommendations = businessRecommendations(res, &b)
	return b
}

// timeToFix renders total debt as a working-time span, assuming 8-hour days
// and 5-day weeks.
func timeToFix(minutes int) string {
	switch {
	case minutes == 0:
		return "none"
	case minutes < 60:
		return fmt.Sprintf("%d minutes", minutes)
	case minutes < 8*60:
		return fmt.Sprintf("%.1f hours", float64(minutes)/60)
	case minutes < 5*8*60:
		return fmt.Sprintf("%.1f days", float64(minutes)/(8*60))
	default:
		return fmt.Sprintf("%.1f weeks", float64(minutes)/(5*8*60))
	}
}

// productivityImpact classifies drag on development speed from average
// cyclomatic complexity, smell density (smell findings per file), and the
// debt ratio. The worst matching tier wins.
func productivityImpact(sum Summary, cx ComplexitySummary, debtRatio float64) string {
	if sum.TotalFiles == 0 {
		return ImpactMinimal
	}
	smellDensity := float64(sum.FindingsByCategory[analysis.CategorySmell]) / float64(sum.TotalFiles)
	switch {
	case debtRatio > RatingDMaxRatio || cx.AverageCyclomatic > ProductivitySevereCyclomatic ||
		smellDensity > ProductivitySevereSmellDensity:
		return ImpactSevere
	case debtRatio > RatingCMaxRatio || cx.AverageCyclomatic > ProductivitySignificantCyclomatic ||
		smellDensity > ProductivitySignificantSmellDensity:
		return ImpactSignificant
	case debtRatio > RatingAMaxRatio || cx.AverageCyclomatic > ProductivityModerateCyclomatic ||
		smellDensity > ProductivityModerateSmellDensity:
		return ImpactModerate
	default:
		return ImpactMinimal
	}
}

// customerImpact classifies user-facing exposure: security findings dominate,
// reliability gaps (missing error handling) count below them.
func customerImpact(sum Summary) string {
	security := sum.FindingsByCategory[analysis.CategorySecurity]
	reliability := sum.FindingsByKind[analysis.KindMissingErrorHandling]
	switch {
	case security > CustomerSevereSecurityFindings:
		return ImpactSevere
	case security > 0:
		return ImpactSignificant
	case reliability > 0:
		return ImpactModerate
	default:
		return ImpactMinimal
	}
}

// businessRecommendations emits ordered remediation advice; each entry is
// gated by its own threshold, so a clean scan produces an empty list.
func businessRecommendations(res *ScanResult, b *BusinessImpact) []string {
	var recs []string
	if n := res.Summary.FindingsByCategory[analysis.CategorySecurity]; n > 0 {
		recs = append(recs, fmt.Sprintf("fix %d security findings before the next release", n))
	}
	if n := len(b.QuickWins); n > 0 {
		recs = append(recs, fmt.Sprintf("start with %d quick wins under %d minutes each", n, QuickWinMaxEffort))
	}
	if res.Debt.Rating == RatingD || res.Debt.Rating == RatingE {
		recs = append(recs, fmt.Sprintf("debt ratio %.1f%% rates %s; schedule dedicated remediation time",
			res.Debt.DebtRatio, res.Debt.Rating))
	}
	if n := len(res.Complexity.HighComplexityFiles); n > 0 {
		recs = append(recs, fmt.Sprintf("refactor %d high-complexity files to reduce review cost", n))
	}
	return recs
}

// riskScore sums per-finding severity weights and caps the total.
func riskScore(findings []*analysis.Finding, weights map[string]float64) float64 {
	score := 0.0
	for _, f := range findings {
		score += weights[f.Severity]
	}
	return math.Min(score, RiskScoreCap)
}

// worstFiles scores each file 0-100 (lower is worse) from complexity, issue
// count, and size penalties, and returns the bottom ten in ascending order.
func worstFiles(reports []*analysis.FileReport) []WorstFile {
	scored := make([]WorstFile, 0, len(reports))
	for _, r := range reports {
		score := 100.0
		score -= math.Min(float64(r.Complexity.Cyclomatic)/10, 30)
		score -= math.Min(float64(r.Complexity.Cognitive)/10, 20)
		score -= math.Min(float64(len(r.Findings))*2, 30)
		if r.Lines.Total > 500 {
			score -= 10
		}
		if r.Lines.Total > 1000 {
			score -= 10
		}
		if score < 0 {
			score = 0
		}
		scored = append(scored, WorstFile{
			Path:   r.Path,
			Score:  score,
			Reason: worstFileReason(r),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score < scored[j].Score })
	if len(scored) > WorstFilesCap {
		scored = scored[:WorstFilesCap]
	}
	return scored
}

// worstFileReason names the dominant problem, checked in priority order.
func worstFileReason(r *analysis.FileReport) string {
	switch {
	case len(r.Findings) > 10:
		return "many issues"
	case r.Complexity.Cyclomatic > HighComplexityThreshold || r.Complexity.Cognitive > HighComplexityThreshold:
		return "high complexity"
	case r.Lines.Total > 500:
		return "large file"
	default:
		return "multiple factors"
	}
}

// quickWins returns up to ten high-severity findings fixable in under
// QuickWinMaxEffort minutes, in the aggregate finding order.
func quickWins(findings []*analysis.Finding) []*analysis.Finding {
	var wins []*analysis.Finding
	for _, f := range findings {
		if f.EffortMinutes >= QuickWinMaxEffort {
			continue
		}
		if f.Severity != analysis.SevCritical && f.Severity != analysis.SevMajor {
			continue
		}
		wins = append(wins, f)
		if len(wins) == QuickWinsCap {
			break
		}
	}
	return wins
}

// criticalPath returns the five files with findings carrying the most debt,
// descending.
func criticalPath(reports []*analysis.FileReport) []CriticalFile {
	var files []CriticalFile
	for _, r := range reports {
		if len(r.Findings) == 0 {
			continue
		}
		files = append(files, CriticalFile{
			Path:        r.Path,
			DebtMinutes: r.DebtMinutes(),
			Findings:    len(r.Findings),
		})
	}
	sort.SliceStable(files, func(i, j int) bool { return files[i].DebtMinutes > files[j].DebtMinutes })
	if len(files) > CriticalPathCap {
		files = files[:CriticalPathCap]
	}
	return files
}
