package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/debtscope/debtscope/pkg/source"
)

// AnalyzeSmells runs every smell rule over one file and returns the combined
// findings. Each rule is an independent pure function: absence of a pattern
// yields no finding, and no rule can fail.
func AnalyzeSmells(path, content, lang string) []*Finding {
	p := profileFor(lang)
	lines := source.SplitLines(content)

	var findings []*Finding
	findings = append(findings, longMethodFindings(path, lines, p)...)
	findings = append(findings, largeFileFinding(path, lines)...)
	findings = append(findings, magicNumberFindings(path, lines)...)
	findings = append(findings, deepNestingFinding(path, lines)...)
	findings = append(findings, deadCodeFinding(path, lines)...)
	findings = append(findings, duplicationFinding(path, lines)...)
	findings = append(findings, missingErrorHandlingFinding(path, content)...)
	return findings
}

// longMethodFindings flags functions whose body exceeds the line thresholds.
// The body is tracked by brace balance from the declaration to the matching
// close; brace-less languages simply never close and are skipped.
func longMethodFindings(path string, lines []string, p *languageProfile) []*Finding {
	var findings []*Finding
	for _, decl := range findFunctions(lines, p) {
		length, ok := functionSpan(lines, decl.line)
		if !ok || length <= LongMethodMajorLines {
			continue
		}
		severity := SevMajor
		if length > LongMethodCriticalLines {
			severity = SevCritical
		}
		effort := ((length + 9) / 10) * LongMethodEffortStep
		findings = append(findings, NewFinding(
			KindLongMethod, severity, path, decl.line+1,
			fmt.Sprintf("Function %q is %d lines long; consider splitting it", decl.name, length),
			effort,
		))
	}
	return findings
}

// functionSpan returns the line count from a declaration to its matching
// closing brace. ok is false when no brace scope opens or the scope never
// closes before end of file.
func functionSpan(lines []string, declLine int) (length int, ok bool) {
	balance := 0
	started := false
	for i := declLine; i < len(lines); i++ {
		balance += strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
		if balance > 0 {
			started = true
		}
		if started && balance <= 0 {
			return i - declLine + 1, true
		}
		// Give up if no scope opened within a few lines of the declaration.
		if !started && i-declLine > 2 {
			return 0, false
		}
	}
	return 0, false
}

// largeFileFinding flags files whose non-blank line count crosses the size
// thresholds.
func largeFileFinding(path string, lines []string) []*Finding {
	count := source.NonBlankCount(lines)
	if count <= LargeFileCriticalLines {
		return nil
	}
	severity := SevCritical
	if count > LargeFileBlockerLines {
		severity = SevBlocker
	}
	effort := ((count + 99) / 100) * LargeFileEffortStep
	return []*Finding{NewFinding(
		KindLargeFile, severity, path, 0,
		fmt.Sprintf("File has %d non-blank lines; split it into focused modules", count),
		effort,
	)}
}

var (
	numberRe = regexp.MustCompile(`-?\b\d+(?:\.\d+)?\b`)
	// declLineRe marks lines that legitimately define numeric constants.
	declLineRe = regexp.MustCompile(`(?i)\b(const|final|static|enum|#define)\b`)
)

// magicNumberFindings flags numeric literals outside declarations and
// comments, excluding the unremarkable 0, 1, and -1. Reporting is capped at
// MagicNumberMaxPerFile occurrences.
func magicNumberFindings(path string, lines []string) []*Finding {
	var findings []*Finding
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || source.IsCommentLine(trimmed) || declLineRe.MatchString(line) {
			continue
		}
		for _, lit := range numberRe.FindAllString(line, -1) {
			if lit == "0" || lit == "1" || lit == "-1" || lit == "-0" {
				continue
			}
			findings = append(findings, NewFinding(
				KindMagicNumber, SevMinor, path, i+1,
				fmt.Sprintf("Magic number %s; extract a named constant", lit),
				MagicNumberEffort,
			))
			if len(findings) >= MagicNumberMaxPerFile {
				return findings
			}
		}
	}
	return findings
}

// deepNestingFinding flags files whose peak brace-nesting depth crosses the
// thresholds. One finding per file.
func deepNestingFinding(path string, lines []string) []*Finding {
	peak := maxNestingDepth(lines)
	if peak <= DeepNestingMinorDepth {
		return nil
	}
	severity := SevMinor
	if peak > DeepNestingMajorDepth {
		severity = SevMajor
	}
	return []*Finding{NewFinding(
		KindDeepNesting, severity, path, 0,
		fmt.Sprintf("Nesting reaches depth %d; flatten with early returns or extracted helpers", peak),
		peak * DeepNestingEffortPerLevel,
	)}
}

// deadCodeFinding counts comment lines containing code-shaped tokens and
// emits one aggregate finding when the count exceeds the threshold.
func deadCodeFinding(path string, lines []string) []*Finding {
	count := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !source.IsCommentLine(trimmed) {
			continue
		}
		if strings.ContainsAny(trimmed, "=({") {
			count++
		}
	}
	if count <= DeadCodeMinOccurrences {
		return nil
	}
	return []*Finding{NewFinding(
		KindDeadCode, SevMinor, path, 0,
		fmt.Sprintf("%d commented-out code lines; delete them, version control remembers", count),
		count*DeadCodeEffortPerLine,
	)}
}

// duplicationFinding emits one finding when the sliding-window duplicate
// detector sees repeated blocks. Effort scales with the number of distinct
// duplicate windows, not raw occurrences.
func duplicationFinding(path string, lines []string) []*Finding {
	blocks := duplicateBlocks(lines)
	if blocks == 0 {
		return nil
	}
	severity := SevMinor
	if blocks > DupMajorBlocks {
		severity = SevMajor
	}
	return []*Finding{NewFinding(
		KindCodeDuplication, severity, path, 0,
		fmt.Sprintf("%d duplicated code blocks; extract the shared logic", blocks),
		blocks*DupEffortPerBlock,
	)}
}

var (
	asyncCallTokens = []string{
		"await ", "fetch(", "axios", ".ajax(", "XMLHttpRequest",
		"http.get(", "https.get(", "requests.", "urllib.",
	}
	errorHandlerRe = regexp.MustCompile(`\b(try|catch)\b|\.then\(|\.catch\(`)
)

// missingErrorHandlingFinding flags files that make async/network calls but
// contain no error-handling token anywhere. Single finding per file.
func missingErrorHandlingFinding(path, content string) []*Finding {
	hasAsync := false
	for _, tok := range asyncCallTokens {
		if strings.Contains(content, tok) {
			hasAsync = true
			break
		}
	}
	if !hasAsync || errorHandlerRe.MatchString(content) {
		return nil
	}
	return []*Finding{NewFinding(
		KindMissingErrorHandling, SevMajor, path, 0,
		"Async or network calls without any error handling",
		MissingErrorHandlingEffort,
	)}
}
