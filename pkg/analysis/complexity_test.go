package analysis

import (
	"strings"
	"testing"
)

func TestAnalyzeComplexityEmptyInput(t *testing.T) {
	m := AnalyzeComplexity("", "javascript")
	if m.Cyclomatic != 1 {
		t.Errorf("empty input cyclomatic = %d, want 1", m.Cyclomatic)
	}
	if m.Cognitive != 0 {
		t.Errorf("empty input cognitive = %d, want 0", m.Cognitive)
	}
	if m.FunctionCount != 0 {
		t.Errorf("empty input functions = %d, want 0", m.FunctionCount)
	}
}

func TestAnalyzeComplexityBranches(t *testing.T) {
	content := strings.Join([]string{
		"function handler(req) {",
		"  if (req.a && req.b) {",
		"    return 1;",
		"  }",
		"  return 0;",
		"}",
	}, "\n")

	m := AnalyzeComplexity(content, "javascript")
	// One "if" plus one "&&" on top of the base of 1.
	if m.Cyclomatic != 3 {
		t.Errorf("cyclomatic = %d, want 3", m.Cyclomatic)
	}
	if m.FunctionCount != 1 {
		t.Errorf("functions = %d, want 1", m.FunctionCount)
	}
	if m.AveragePerFunction != 3 {
		t.Errorf("average = %f, want 3", m.AveragePerFunction)
	}
}

func TestAnalyzeComplexityNestingWeighting(t *testing.T) {
	flat := strings.Join([]string{
		"function f() {",
		"  if (a) { x(); }",
		"}",
		"function g() {",
		"  if (b) { y(); }",
		"}",
	}, "\n")
	nested := strings.Join([]string{
		"function f() {",
		"  if (a) {",
		"    if (b) {",
		"      if (c) { x(); }",
		"    }",
		"  }",
		"}",
	}, "\n")

	mFlat := AnalyzeComplexity(flat, "javascript")
	mNested := AnalyzeComplexity(nested, "javascript")
	if mNested.Cognitive <= mFlat.Cognitive {
		t.Errorf("nested cognitive %d should exceed flat %d", mNested.Cognitive, mFlat.Cognitive)
	}
}

func TestAnalyzeComplexityRecursionPenalty(t *testing.T) {
	content := strings.Join([]string{
		"function walk(node) {",
		"  if (node.left) { walk(node.left); }",
		"}",
	}, "\n")

	m := AnalyzeComplexity(content, "javascript")
	base := AnalyzeComplexity(strings.ReplaceAll(content, "walk(node.left)", "visit(node.left)"), "javascript")
	if m.Cognitive != base.Cognitive+RecursionPenalty {
		t.Errorf("recursive cognitive = %d, want %d", m.Cognitive, base.Cognitive+RecursionPenalty)
	}
}

func TestAnalyzeComplexityCommentLinesIgnored(t *testing.T) {
	content := strings.Join([]string{
		"// if this were code it would count",
		"# if again",
		"x = 1",
	}, "\n")
	m := AnalyzeComplexity(content, "python")
	if m.Cyclomatic != 1 {
		t.Errorf("cyclomatic = %d, want 1 (comments must not count)", m.Cyclomatic)
	}
}

func TestMaxNestingDepth(t *testing.T) {
	lines := []string{
		"function f() {",
		"  if (a) {",
		"    if (b) {",
		"    }",
		"  }",
		"}",
	}
	if got := maxNestingDepth(lines); got != 3 {
		t.Errorf("maxNestingDepth = %d, want 3", got)
	}
	if got := maxNestingDepth(nil); got != 0 {
		t.Errorf("maxNestingDepth(nil) = %d, want 0", got)
	}
}

func TestUnknownLanguageFallsBackToGeneric(t *testing.T) {
	m := AnalyzeComplexity("if x then y end", "cobol")
	if m.Cyclomatic != 2 {
		t.Errorf("generic profile cyclomatic = %d, want 2", m.Cyclomatic)
	}
}
