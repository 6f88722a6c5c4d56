package analysis

import (
	"strings"
	"testing"

	"github.com/debtscope/debtscope/pkg/source"
)

func analyzeAuthorship(t *testing.T, path, content, lang string) *AuthorshipAnalysis {
	t.Helper()
	lm := source.CountLines(content)
	cm := AnalyzeComplexity(content, lang)
	a := AnalyzeAuthorship(path, content, lang, lm, cm)
	if a == nil {
		t.Fatal("AnalyzeAuthorship returned nil")
	}
	return a
}

func hasPattern(a *AuthorshipAnalysis, typ string) bool {
	for _, p := range a.Patterns {
		if p.Type == typ {
			return true
		}
	}
	return false
}

func TestAuthorshipLikelihoodsSumTo100(t *testing.T) {
	contents := []string{
		"",
		"x = compute_balance(ledger)\ny = reconcile(x)",
		strings.Repeat("// This function does X.\nwork();\n", 10),
	}
	for _, content := range contents {
		a := analyzeAuthorship(t, "f.js", content, "javascript")
		if sum := a.AILikelihood + a.HumanLikelihood; sum < 99.999 || sum > 100.001 {
			t.Errorf("likelihoods sum to %f, want 100", sum)
		}
	}
}

func TestAuthorshipNeutralInputDefaults(t *testing.T) {
	a := analyzeAuthorship(t, "f.py", "x = compute_balance(ledger)\ny = reconcile(x)", "python")
	if a.AILikelihood != 50 {
		t.Errorf("neutral input likelihood = %f, want 50", a.AILikelihood)
	}
	if len(a.Patterns) != 0 {
		t.Errorf("neutral input matched patterns: %+v", a.Patterns)
	}
}

func TestGenericCommentsPattern(t *testing.T) {
	content := strings.Join([]string{
		"// This function does X.",
		"function alpha() { work(); }",
		"// This function does Y.",
		"function beta() { work(); }",
		"// This function does Z.",
		"function gamma() { work(); }",
		"// This function does W.",
		"function delta() { work(); }",
	}, "\n")

	a := analyzeAuthorship(t, "gen.js", content, "javascript")
	if !hasPattern(a, PatternGenericComments) {
		t.Fatalf("generic_comments not matched; patterns: %+v", a.Patterns)
	}
	if a.AILikelihood <= 50 {
		t.Errorf("likelihood = %f, want AI-skewed (> 50)", a.AILikelihood)
	}
}

func TestToolSignaturePattern(t *testing.T) {
	content := "// Generated with GitHub Copilot\nfunction pay() { settle(); }"
	a := analyzeAuthorship(t, "sig.js", content, "javascript")
	if !hasPattern(a, PatternToolSignature) {
		t.Fatalf("ai_tool_signature not matched; patterns: %+v", a.Patterns)
	}
	if a.AILikelihood < AILikelyThresholdTest {
		t.Errorf("likelihood = %f, want >= %v", a.AILikelihood, AILikelyThresholdTest)
	}
}

// AILikelyThresholdTest mirrors the reporting bucket boundary.
const AILikelyThresholdTest = 70.0

func TestHumanSignals(t *testing.T) {
	content := strings.Join([]string{
		"// The ledger import rejects rows before 2019 because the upstream feed was unreliable.",
		"// We reconcile against the nightly snapshot instead of the live balance on purpose.",
		"// Keeping the retry here avoids thundering herd on the settlement endpoint today.",
		"// TODO: drop the legacy column after the migration finishes",
		"settlementWindow = reconcileAgainstSnapshot(nightlyLedgerSnapshot)",
	}, "\n")

	a := analyzeAuthorship(t, "ledger.py", content, "python")
	if !hasPattern(a, PatternNarrativeComments) {
		t.Errorf("narrative_comments not matched; patterns: %+v", a.Patterns)
	}
	if !hasPattern(a, PatternDebugArtifacts) {
		t.Errorf("debug_artifacts not matched; patterns: %+v", a.Patterns)
	}
	if a.HumanLikelihood <= 50 {
		t.Errorf("human likelihood = %f, want > 50", a.HumanLikelihood)
	}
}

func TestGenericNamingPattern(t *testing.T) {
	var lines []string
	for i := 0; i < 12; i++ {
		lines = append(lines, "data = temp + result;")
	}
	a := analyzeAuthorship(t, "n.js", strings.Join(lines, "\n"), "javascript")
	if !hasPattern(a, PatternGenericNaming) {
		t.Errorf("generic_naming not matched; patterns: %+v", a.Patterns)
	}
}

func TestIndicatorsInRange(t *testing.T) {
	a := analyzeAuthorship(t, "f.js", "function f() {\n\tif (a) { return 1; }\n\treturn 0;\n}", "javascript")
	ind := a.Indicators
	for name, v := range map[string]int{
		"style":    ind.StyleConsistency,
		"comment":  ind.CommentQuality,
		"naming":   ind.NamingQuality,
		"struct":   ind.StructuralQuality,
		"errorhdl": ind.ErrorHandlingQuality,
	} {
		if v < 0 || v > 100 {
			t.Errorf("indicator %s = %d, out of [0,100]", name, v)
		}
	}
}
