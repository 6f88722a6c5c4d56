package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/debtscope/debtscope/pkg/source"
)

// CWE identifiers attached to security findings.
const (
	WeaknessHardcodedSecret = "CWE-798"
	WeaknessSQLInjection    = "CWE-89"
	WeaknessMarkupInjection = "CWE-79"
	WeaknessInsecureRandom  = "CWE-330"
	WeaknessDynamicEval     = "CWE-95"
	WeaknessRiskyExec       = "CWE-78"
)

var (
	// secretAssignRe matches assignment-like lines binding a credential
	// name to a short string literal.
	secretAssignRe = regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret|api[_-]?key|apikey|access[_-]?token|auth[_-]?token|token|private[_-]?key)\b\s*[:=]\s*["'][^"']{4,}["']`)

	// envAccessTokens suppress the secret rule: the value comes from the
	// environment or a config accessor, not a literal.
	envAccessTokens = []string{
		"process.env", "os.environ", "os.Getenv", "getenv(", "ENV[",
		"config.", "settings.", "secrets.", "vault.", "System.getenv",
	}

	sqlVerbRe = regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|DROP)\b`)

	// concatMarkers indicate string concatenation or interpolation on the
	// same line as a sink.
	concatMarkers = []string{`" +`, `+ "`, `' +`, `+ '`, "${", "%s", `".format(`, "f\""}

	domSinkTokens = []string{
		"innerHTML", "outerHTML", "document.write", "insertAdjacentHTML",
		"dangerouslySetInnerHTML",
	}

	weakRandomTokens = []string{"Math.random(", "rand.Int", "rand.Float", "random.random(", "random.randint(", "rand("}

	sensitiveNameRe = regexp.MustCompile(`(?i)\b(token|secret|password|key|nonce|salt|session|otp|csrf)\w*\b`)

	evalTokens = []string{"eval(", "new Function(", "execScript(", "vm.runInContext("}

	processTokens = []string{
		"child_process", "subprocess", "os.system(", "shell_exec(",
		"popen(", "spawn(", "execSync(", "os/exec", "Runtime.getRuntime().exec(",
	}
)

// AnalyzeSecurity applies every security rule per line and returns the
// combined findings. All rules are stateless and line-scoped; a file with
// zero matches yields zero findings, never an error.
func AnalyzeSecurity(path, content string) []*Finding {
	var findings []*Finding
	for i, line := range source.SplitLines(content) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || source.IsCommentLine(trimmed) {
			continue
		}
		lineNo := i + 1

		if f := hardcodedSecretFinding(path, line, lineNo); f != nil {
			findings = append(findings, f)
		}
		if f := sqlInjectionFinding(path, line, lineNo); f != nil {
			findings = append(findings, f)
		}
		if f := markupInjectionFinding(path, line, lineNo); f != nil {
			findings = append(findings, f)
		}
		if f := insecureRandomFinding(path, line, lineNo); f != nil {
			findings = append(findings, f)
		}
		if f := dynamicEvalFinding(path, line, lineNo); f != nil {
			findings = append(findings, f)
		}
		if f := riskyExecFinding(path, line, lineNo); f != nil {
			findings = append(findings, f)
		}
	}
	return findings
}

func hardcodedSecretFinding(path, line string, lineNo int) *Finding {
	if !secretAssignRe.MatchString(line) {
		return nil
	}
	for _, tok := range envAccessTokens {
		if strings.Contains(line, tok) {
			return nil
		}
	}
	f := NewFinding(KindHardcodedSecret, SevBlocker, path, lineNo,
		"Hardcoded credential; move it to the environment or a secret store",
		HardcodedSecretEffort)
	f.WeaknessID = WeaknessHardcodedSecret
	return f
}

func sqlInjectionFinding(path, line string, lineNo int) *Finding {
	if !sqlVerbRe.MatchString(line) || !hasConcatMarker(line) {
		return nil
	}
	f := NewFinding(KindSQLInjection, SevBlocker, path, lineNo,
		"SQL built by string concatenation; use parameterized queries",
		SQLInjectionEffort)
	f.WeaknessID = WeaknessSQLInjection
	return f
}

func markupInjectionFinding(path, line string, lineNo int) *Finding {
	if !hasConcatMarker(line) {
		return nil
	}
	for _, sink := range domSinkTokens {
		if strings.Contains(line, sink) {
			f := NewFinding(KindMarkupInjection, SevCritical, path, lineNo,
				fmt.Sprintf("Unescaped content written to %s; sanitize or use safe templating", sink),
				MarkupInjectionEffort)
			f.WeaknessID = WeaknessMarkupInjection
			return f
		}
	}
	return nil
}

func insecureRandomFinding(path, line string, lineNo int) *Finding {
	if !sensitiveNameRe.MatchString(line) {
		return nil
	}
	for _, tok := range weakRandomTokens {
		if strings.Contains(line, tok) {
			f := NewFinding(KindInsecureRandom, SevCritical, path, lineNo,
				"Non-cryptographic randomness used for a security-sensitive value",
				InsecureRandomEffort)
			f.WeaknessID = WeaknessInsecureRandom
			return f
		}
	}
	return nil
}

func dynamicEvalFinding(path, line string, lineNo int) *Finding {
	for _, tok := range evalTokens {
		if strings.Contains(line, tok) {
			f := NewFinding(KindDynamicEval, SevCritical, path, lineNo,
				"Dynamic code evaluation; restructure to avoid executing strings",
				DynamicEvalEffort)
			f.WeaknessID = WeaknessDynamicEval
			return f
		}
	}
	return nil
}

func riskyExecFinding(path, line string, lineNo int) *Finding {
	for _, tok := range processTokens {
		if strings.Contains(line, tok) {
			f := NewFinding(KindRiskyExec, SevMajor, path, lineNo,
				"Process or shell execution; validate inputs and prefer library calls",
				RiskyExecEffort)
			f.WeaknessID = WeaknessRiskyExec
			return f
		}
	}
	return nil
}

func hasConcatMarker(line string) bool {
	for _, m := range concatMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}
