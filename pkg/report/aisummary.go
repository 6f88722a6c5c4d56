package report

import (
	"fmt"
	"sort"

	"github.com/debtscope/debtscope/pkg/analysis"
)

// patternRiskClass maps authorship pattern types to a qualitative risk
// class: tool signatures mean unreviewed machine output (security),
// structural sameness hinders change (maintenance), and low-information
// comments or names erode readability (quality).
var patternRiskClass = map[string]string{
	analysis.PatternToolSignature:    "security",
	analysis.PatternRepetitive:       "maintenance",
	analysis.PatternUniformStructure: "maintenance",
	analysis.PatternUniformFunctions: "maintenance",
	analysis.PatternGenericComments:  "quality",
	analysis.PatternGenericNaming:    "quality",
	analysis.PatternSparseComments:   "quality",
	analysis.PatternOverDocumented:   "quality",
}

// aiCodeSummary buckets files by authorship likelihood against the given
// likely-AI boundary and aggregates the matched patterns. Returns nil when
// no report carries authorship data, so scans run with the classifier
// disabled omit the block entirely.
func aiCodeSummary(reports []*analysis.FileReport, aiThreshold float64) *AICodeSummary {
	sum := &AICodeSummary{AIFindingsBySev: map[string]int{}}
	patternFiles := map[string]int{}
	totalLikelihood := 0.0

	for _, r := range reports {
		if r.Authorship == nil {
			continue
		}
		sum.FilesAnalyzed++
		totalLikelihood += r.Authorship.AILikelihood

		switch {
		case r.Authorship.AILikelihood > aiThreshold:
			sum.LikelyAIFiles++
			// Findings in likely-AI files are tracked separately so the
			// recommendations can weigh machine-authored risk.
			for _, f := range r.Findings {
				sum.AIFindingsBySev[f.Severity]++
			}
		case r.Authorship.AILikelihood < HumanLikelyThreshold:
			sum.LikelyHumanFiles++
		default:
			sum.MixedFiles++
		}

		seen := map[string]bool{}
		riskSeen := map[string]bool{}
		for _, p := range r.Authorship.Patterns {
			if !seen[p.Type] {
				seen[p.Type] = true
				patternFiles[p.Type]++
			}
			if class, ok := patternRiskClass[p.Type]; ok && !riskSeen[class] {
				riskSeen[class] = true
				switch class {
				case "security":
					sum.SecurityRisks++
				case "maintenance":
					sum.MaintenanceRisks++
				case "quality":
					sum.QualityRisks++
				}
			}
		}
	}
	if sum.FilesAnalyzed == 0 {
		return nil
	}
	sum.AverageLikelihood = totalLikelihood / float64(sum.FilesAnalyzed)
	sum.TopPatterns = topPatterns(patternFiles)
	sum.Recommendations = aiRecommendations(sum, aiThreshold)
	return sum
}

// topPatterns sorts the pattern frequencies descending, ties by name.
func topPatterns(patternFiles map[string]int) []PatternFrequency {
	freqs := make([]PatternFrequency, 0, len(patternFiles))
	for typ, files := range patternFiles {
		freqs = append(freqs, PatternFrequency{Type: typ, Files: files})
	}
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Files != freqs[j].Files {
			return freqs[i].Files > freqs[j].Files
		}
		return freqs[i].Type < freqs[j].Type
	})
	return freqs
}

// aiRecommendations emits advice only when its threshold is crossed; a clean
// summary yields no recommendations.
func aiRecommendations(sum *AICodeSummary, aiThreshold float64) []string {
	var recs []string
	if sum.LikelyAIFiles > 0 {
		share := 100 * float64(sum.LikelyAIFiles) / float64(sum.FilesAnalyzed)
		if share > 30 {
			recs = append(recs, fmt.Sprintf(
				"%.0f%% of files appear machine-generated; establish a review policy for generated code", share))
		}
	}
	if n := sum.AIFindingsBySev[analysis.SevBlocker] + sum.AIFindingsBySev[analysis.SevCritical]; n > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d high-severity findings sit in likely machine-generated files; prioritize reviewing those", n))
	}
	if sum.AverageLikelihood > aiThreshold {
		recs = append(recs, "overall authorship skews machine-generated; audit test coverage for generated modules")
	}
	return recs
}
