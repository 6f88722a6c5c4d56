package analysis

import (
	"strings"
	"testing"
)

func TestHardcodedSecretFinding(t *testing.T) {
	got := findingsOfKind(AnalyzeSecurity("cfg.js", `const password = "hunter22";`), KindHardcodedSecret)
	if len(got) != 1 {
		t.Fatalf("secret findings = %d, want 1", len(got))
	}
	f := got[0]
	if f.Severity != SevBlocker {
		t.Errorf("severity = %s, want %s", f.Severity, SevBlocker)
	}
	if f.WeaknessID != WeaknessHardcodedSecret {
		t.Errorf("weakness = %s, want %s", f.WeaknessID, WeaknessHardcodedSecret)
	}
	if f.Category != CategorySecurity {
		t.Errorf("category = %s, want %s", f.Category, CategorySecurity)
	}
}

func TestSecretRuleSuppressions(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"env accessor", `password = process.env.DB_PASSWORD`},
		{"config accessor in literal", `token = "secrets.placeholder"`},
		{"short value", `password = "x"`},
		{"comment line", `// password = "hunter22"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := findingsOfKind(AnalyzeSecurity("cfg.js", tc.line), KindHardcodedSecret); len(got) != 0 {
				t.Errorf("line %q flagged as hardcoded secret", tc.line)
			}
		})
	}
}

func TestSQLInjectionFinding(t *testing.T) {
	line := `query = "SELECT * FROM users WHERE id=" + userId;`
	got := findingsOfKind(AnalyzeSecurity("db.js", line), KindSQLInjection)
	if len(got) != 1 {
		t.Fatalf("sql findings = %d, want 1", len(got))
	}
	if got[0].Severity != SevBlocker || got[0].WeaknessID != WeaknessSQLInjection {
		t.Errorf("got %+v, want blocker %s", got[0], WeaknessSQLInjection)
	}

	// A SQL verb without concatenation is fine.
	safe := `rows = db.query("SELECT name FROM users WHERE id = $1", id)`
	if got := findingsOfKind(AnalyzeSecurity("db.js", safe), KindSQLInjection); len(got) != 0 {
		t.Errorf("parameterized query flagged")
	}
}

func TestMarkupInjectionFinding(t *testing.T) {
	line := `el.innerHTML = "<b>" + userName;`
	got := findingsOfKind(AnalyzeSecurity("ui.js", line), KindMarkupInjection)
	if len(got) != 1 {
		t.Fatalf("markup findings = %d, want 1", len(got))
	}
	if got[0].Severity != SevCritical || got[0].WeaknessID != WeaknessMarkupInjection {
		t.Errorf("got %+v, want critical %s", got[0], WeaknessMarkupInjection)
	}

	static := `el.innerHTML = "<hr>";`
	if got := findingsOfKind(AnalyzeSecurity("ui.js", static), KindMarkupInjection); len(got) != 0 {
		t.Errorf("static assignment flagged")
	}
}

func TestInsecureRandomFinding(t *testing.T) {
	line := `sessionToken = Math.random().toString(36);`
	got := findingsOfKind(AnalyzeSecurity("auth.js", line), KindInsecureRandom)
	if len(got) != 1 {
		t.Fatalf("random findings = %d, want 1", len(got))
	}
	if got[0].WeaknessID != WeaknessInsecureRandom {
		t.Errorf("weakness = %s, want %s", got[0].WeaknessID, WeaknessInsecureRandom)
	}

	// Weak randomness for a non-sensitive value is not flagged.
	dice := `roll = Math.random() * 6;`
	if got := findingsOfKind(AnalyzeSecurity("game.js", dice), KindInsecureRandom); len(got) != 0 {
		t.Errorf("dice roll flagged as insecure random")
	}
}

func TestDynamicEvalFinding(t *testing.T) {
	got := findingsOfKind(AnalyzeSecurity("run.js", `eval(payload);`), KindDynamicEval)
	if len(got) != 1 || got[0].Severity != SevCritical {
		t.Fatalf("want one critical eval finding, got %+v", got)
	}
}

func TestRiskyExecFinding(t *testing.T) {
	got := findingsOfKind(AnalyzeSecurity("job.js", `const cp = require("child_process");`), KindRiskyExec)
	if len(got) != 1 || got[0].Severity != SevMajor {
		t.Fatalf("want one major exec finding, got %+v", got)
	}
}

func TestSecurityLineNumbers(t *testing.T) {
	content := strings.Join([]string{
		"const safe = 'ok';",
		"",
		`eval(payload);`,
	}, "\n")
	got := findingsOfKind(AnalyzeSecurity("run.js", content), KindDynamicEval)
	if len(got) != 1 || got[0].Line != 3 {
		t.Fatalf("want eval finding on line 3, got %+v", got)
	}
}

func TestSecurityCleanFileNoFindings(t *testing.T) {
	content := strings.Join([]string{
		"import crypto from 'crypto';",
		"const token = crypto.randomBytes(32).toString('hex');",
		"db.query('SELECT 1');",
	}, "\n")
	if got := AnalyzeSecurity("ok.js", content); len(got) != 0 {
		t.Errorf("clean file produced %d findings: %+v", len(got), got)
	}
}

func TestOversizedFileWithEvalAndSecret(t *testing.T) {
	var lines []string
	for i := 0; i < 598; i++ {
		lines = append(lines, `const filler = "padding";`)
	}
	lines = append(lines,
		`const password = "huntersecret";`,
		`eval(userInput);`,
	)
	content := strings.Join(lines, "\n")

	findings := append(AnalyzeSmells("app.js", content, "javascript"),
		AnalyzeSecurity("app.js", content)...)
	if len(findings) < 2 {
		t.Fatalf("findings = %d, want at least 2", len(findings))
	}

	large := findingsOfKind(findings, KindLargeFile)
	if len(large) != 1 || large[0].Severity != SevCritical {
		t.Errorf("oversized-file finding = %+v, want one critical", large)
	}
	if len(large) == 1 && large[0].EffortMinutes != 360 {
		t.Errorf("oversized-file effort = %d, want 360", large[0].EffortMinutes)
	}

	secrets := findingsOfKind(findings, KindHardcodedSecret)
	if len(secrets) != 1 || secrets[0].Severity != SevBlocker {
		t.Errorf("secret finding = %+v, want one blocker", secrets)
	}

	evals := findingsOfKind(findings, KindDynamicEval)
	if len(evals) != 1 || evals[0].Severity != SevCritical {
		t.Errorf("eval finding = %+v, want one critical", evals)
	}

	blockers := 0
	for _, f := range findings {
		if f.Severity == SevBlocker {
			blockers++
		}
	}
	if blockers != 1 {
		t.Errorf("blocker findings = %d, want exactly the hardcoded secret", blockers)
	}
}
