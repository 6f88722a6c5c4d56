package analysis

import (
	"fmt"
	"strings"
	"testing"
)

func findingsOfKind(findings []*Finding, kind string) []*Finding {
	var out []*Finding
	for _, f := range findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func TestLongMethodFinding(t *testing.T) {
	var lines []string
	lines = append(lines, "function big() {")
	for i := 0; i < 60; i++ {
		lines = append(lines, "  work();")
	}
	lines = append(lines, "}")
	content := strings.Join(lines, "\n")

	got := findingsOfKind(AnalyzeSmells("big.js", content, "javascript"), KindLongMethod)
	if len(got) != 1 {
		t.Fatalf("long method findings = %d, want 1", len(got))
	}
	f := got[0]
	if f.Severity != SevMajor {
		t.Errorf("severity = %s, want %s", f.Severity, SevMajor)
	}
	if f.Line != 1 {
		t.Errorf("line = %d, want 1", f.Line)
	}
	// 62-line span rounds up to 7 effort steps.
	if f.EffortMinutes != 7*LongMethodEffortStep {
		t.Errorf("effort = %d, want %d", f.EffortMinutes, 7*LongMethodEffortStep)
	}
}

func TestLongMethodCriticalThreshold(t *testing.T) {
	var lines []string
	lines = append(lines, "function huge() {")
	for i := 0; i < 110; i++ {
		lines = append(lines, "  work();")
	}
	lines = append(lines, "}")

	got := findingsOfKind(AnalyzeSmells("huge.js", strings.Join(lines, "\n"), "javascript"), KindLongMethod)
	if len(got) != 1 || got[0].Severity != SevCritical {
		t.Fatalf("want one critical long method finding, got %+v", got)
	}
}

func TestShortFunctionNoFinding(t *testing.T) {
	content := "function ok() {\n  work();\n}"
	if got := findingsOfKind(AnalyzeSmells("ok.js", content, "javascript"), KindLongMethod); len(got) != 0 {
		t.Errorf("short function produced %d findings", len(got))
	}
}

func TestLargeFileFinding(t *testing.T) {
	var lines []string
	for i := 0; i < 501; i++ {
		lines = append(lines, "work();")
	}
	got := findingsOfKind(AnalyzeSmells("big.js", strings.Join(lines, "\n"), "javascript"), KindLargeFile)
	if len(got) != 1 {
		t.Fatalf("large file findings = %d, want 1", len(got))
	}
	if got[0].Severity != SevCritical {
		t.Errorf("severity = %s, want %s", got[0].Severity, SevCritical)
	}
	if got[0].EffortMinutes != 6*LargeFileEffortStep {
		t.Errorf("effort = %d, want %d", got[0].EffortMinutes, 6*LargeFileEffortStep)
	}

	// Blank lines don't count toward the threshold.
	padded := strings.Join(lines[:400], "\n") + strings.Repeat("\n", 300)
	if got := findingsOfKind(AnalyzeSmells("ok.js", padded, "javascript"), KindLargeFile); len(got) != 0 {
		t.Errorf("blank-padded file flagged as large")
	}
}

func TestMagicNumberFindings(t *testing.T) {
	content := strings.Join([]string{
		"x = 42 + 7;",
		"y = 0 + 1 - 1;",
		"const LIMIT = 99;",
		"// threshold is 500",
	}, "\n")

	got := findingsOfKind(AnalyzeSmells("m.js", content, "javascript"), KindMagicNumber)
	if len(got) != 2 {
		t.Fatalf("magic number findings = %d, want 2 (42 and 7 only)", len(got))
	}
	for _, f := range got {
		if f.Severity != SevMinor || f.EffortMinutes != MagicNumberEffort {
			t.Errorf("finding %+v: want minor severity, effort %d", f, MagicNumberEffort)
		}
	}
}

func TestMagicNumberCap(t *testing.T) {
	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, fmt.Sprintf("x%d = %d;", i, i+40))
	}
	got := findingsOfKind(AnalyzeSmells("m.js", strings.Join(lines, "\n"), "javascript"), KindMagicNumber)
	if len(got) != MagicNumberMaxPerFile {
		t.Errorf("magic number findings = %d, want cap %d", len(got), MagicNumberMaxPerFile)
	}
}

func TestDeepNestingFinding(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 5; i++ {
		sb.WriteString("if (x) {\n")
	}
	sb.WriteString("work();\n")
	sb.WriteString(strings.Repeat("}\n", 5))

	got := findingsOfKind(AnalyzeSmells("n.js", sb.String(), "javascript"), KindDeepNesting)
	if len(got) != 1 {
		t.Fatalf("deep nesting findings = %d, want 1", len(got))
	}
	if got[0].Severity != SevMinor {
		t.Errorf("severity = %s, want %s", got[0].Severity, SevMinor)
	}
	if got[0].EffortMinutes != 5*DeepNestingEffortPerLevel {
		t.Errorf("effort = %d, want %d", got[0].EffortMinutes, 5*DeepNestingEffortPerLevel)
	}
}

func TestDeadCodeFinding(t *testing.T) {
	var lines []string
	for i := 0; i < 11; i++ {
		lines = append(lines, fmt.Sprintf("// old%d = legacy(%d);", i, i))
	}
	lines = append(lines, "current();")

	got := findingsOfKind(AnalyzeSmells("d.js", strings.Join(lines, "\n"), "javascript"), KindDeadCode)
	if len(got) != 1 {
		t.Fatalf("dead code findings = %d, want 1", len(got))
	}
	if got[0].EffortMinutes != 11*DeadCodeEffortPerLine {
		t.Errorf("effort = %d, want %d", got[0].EffortMinutes, 11*DeadCodeEffortPerLine)
	}

	// Prose comments don't trigger the rule.
	prose := strings.Repeat("// handles the retry backoff for us\n", 15)
	if got := findingsOfKind(AnalyzeSmells("p.js", prose, "javascript"), KindDeadCode); len(got) != 0 {
		t.Errorf("prose comments flagged as dead code")
	}
}

func TestDuplicationFinding(t *testing.T) {
	block := []string{
		"openConnection(primaryHost);",
		"authenticate(credentials);",
		"sendPayload(envelope.body);",
		"awaitAcknowledgement();",
		"recordMetrics(clock.now());",
		"closeConnection(primaryHost);",
	}
	var lines []string
	lines = append(lines, block...)
	lines = append(lines, "somethingEntirelyDifferent();")
	lines = append(lines, block...)

	got := findingsOfKind(AnalyzeSmells("dup.js", strings.Join(lines, "\n"), "javascript"), KindCodeDuplication)
	if len(got) != 1 {
		t.Fatalf("duplication findings = %d, want 1", len(got))
	}
	if got[0].Severity != SevMinor {
		t.Errorf("severity = %s, want %s", got[0].Severity, SevMinor)
	}
}

func TestDuplicateBlocksCountsDistinctWindows(t *testing.T) {
	block := []string{
		"openConnection(primaryHost);",
		"authenticate(credentials);",
		"sendPayload(envelope.body);",
		"awaitAcknowledgement();",
		"recordMetrics(clock.now());",
		"closeConnection(primaryHost);",
	}
	// Seven copies separated by unique lines: one distinct window text
	// repeated seven times still counts once.
	var lines []string
	for i := 0; i < 7; i++ {
		lines = append(lines, block...)
		lines = append(lines, fmt.Sprintf("separator%d();", i))
	}
	if got := duplicateBlocks(lines); got != 1 {
		t.Errorf("duplicateBlocks = %d, want 1 distinct window", got)
	}
}

func TestMissingErrorHandlingFinding(t *testing.T) {
	content := "const res = await fetch(url);\nreturn res.json();"
	got := findingsOfKind(AnalyzeSmells("f.js", content, "javascript"), KindMissingErrorHandling)
	if len(got) != 1 {
		t.Fatalf("missing error handling findings = %d, want 1", len(got))
	}
	if got[0].Severity != SevMajor || got[0].EffortMinutes != MissingErrorHandlingEffort {
		t.Errorf("finding %+v: want major, effort %d", got[0], MissingErrorHandlingEffort)
	}

	handled := "try {\n  const res = await fetch(url);\n} catch (e) {}"
	if got := findingsOfKind(AnalyzeSmells("f.js", handled, "javascript"), KindMissingErrorHandling); len(got) != 0 {
		t.Errorf("handled async call still flagged")
	}
}

func TestFindingIDDeterminism(t *testing.T) {
	a := NewFinding(KindLongMethod, SevMajor, "a.js", 10, "msg", 15)
	b := NewFinding(KindLongMethod, SevMajor, "a.js", 10, "other msg", 30)
	if a.ID != b.ID {
		t.Errorf("same (kind,file,line) produced different IDs: %s vs %s", a.ID, b.ID)
	}
	c := NewFinding(KindLongMethod, SevMajor, "a.js", 11, "msg", 15)
	if a.ID == c.ID {
		t.Errorf("different lines produced identical IDs")
	}
}
