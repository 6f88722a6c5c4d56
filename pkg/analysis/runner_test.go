package analysis

import (
	"context"
	"testing"

	"github.com/debtscope/debtscope/pkg/source"
)

var runnerUnits = []source.SourceUnit{
	{Path: "a/auth.js", Content: `const password = "hunter22";`},
	{Path: "b/util.py", Content: "def helper():\n    return 1\n"},
	{Path: "c/query.js", Content: `q = "SELECT id FROM t WHERE n=" + n;`},
}

func TestAnalyzeAllPreservesInputOrder(t *testing.T) {
	reports, err := AnalyzeAll(context.Background(), runnerUnits, EnabledDefaults())
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != len(runnerUnits) {
		t.Fatalf("reports = %d, want %d", len(reports), len(runnerUnits))
	}
	for i, r := range reports {
		if r.Path != runnerUnits[i].Path {
			t.Errorf("reports[%d].Path = %s, want %s", i, r.Path, runnerUnits[i].Path)
		}
	}
}

func TestAnalyzeAllIsDeterministic(t *testing.T) {
	first, err := AnalyzeAll(context.Background(), runnerUnits, EnabledDefaults())
	if err != nil {
		t.Fatal(err)
	}
	second, err := AnalyzeAll(context.Background(), runnerUnits, EnabledDefaults())
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		a, b := first[i], second[i]
		if len(a.Findings) != len(b.Findings) {
			t.Fatalf("file %s: finding counts differ across runs", a.Path)
		}
		for j := range a.Findings {
			if a.Findings[j].ID != b.Findings[j].ID {
				t.Errorf("file %s: finding %d ID differs across runs", a.Path, j)
			}
		}
	}
}

func TestAnalyzeFileTogglesAnalyzers(t *testing.T) {
	unit := runnerUnits[0] // hardcoded secret

	full := AnalyzeFile(unit, EnabledDefaults())
	if len(findingsOfKind(full.Findings, KindHardcodedSecret)) != 1 {
		t.Fatalf("expected secret finding with security enabled")
	}
	if full.Authorship == nil {
		t.Errorf("authorship missing with classifier enabled")
	}

	noSec := AnalyzeFile(unit, Config{Smells: true})
	if len(findingsOfKind(noSec.Findings, KindHardcodedSecret)) != 0 {
		t.Errorf("security finding produced with security disabled")
	}
	if noSec.Authorship != nil {
		t.Errorf("authorship produced with classifier disabled")
	}
}

func TestAnalyzeFileLanguageDetection(t *testing.T) {
	r := AnalyzeFile(runnerUnits[1], EnabledDefaults())
	if r.Language != "python" {
		t.Errorf("language = %s, want python", r.Language)
	}
	if r.Lines.Total != 2 {
		t.Errorf("total lines = %d, want 2", r.Lines.Total)
	}
}

func TestAnalyzeAllCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := AnalyzeAll(ctx, runnerUnits, EnabledDefaults()); err == nil {
		t.Error("cancelled context did not surface an error")
	}
}
