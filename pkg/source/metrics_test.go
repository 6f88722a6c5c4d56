package source

import "testing"

func TestCountLines(t *testing.T) {
	content := "package main\n\n// entry point\nfunc main() {}\n"
	m := CountLines(content)
	if m.Total != 4 {
		t.Errorf("total = %d, want 4", m.Total)
	}
	if m.Code != 2 {
		t.Errorf("code = %d, want 2", m.Code)
	}
	if m.Comment != 1 {
		t.Errorf("comment = %d, want 1", m.Comment)
	}
	if m.Blank != 1 {
		t.Errorf("blank = %d, want 1", m.Blank)
	}
}

func TestCountLinesEmpty(t *testing.T) {
	if m := CountLines(""); m != (LineMetrics{}) {
		t.Errorf("empty content metrics = %+v, want zero", m)
	}
}

func TestCountLinesCRLF(t *testing.T) {
	m := CountLines("a\r\nb\r\n")
	if m.Total != 2 || m.Code != 2 {
		t.Errorf("CRLF metrics = %+v, want 2 code lines", m)
	}
}

func TestCommentRatio(t *testing.T) {
	m := LineMetrics{Total: 10, Comment: 3}
	if got := m.CommentRatio(); got != 0.3 {
		t.Errorf("ratio = %f, want 0.3", got)
	}
	if got := (LineMetrics{}).CommentRatio(); got != 0 {
		t.Errorf("zero-total ratio = %f, want 0", got)
	}
}

func TestIsCommentLine(t *testing.T) {
	cases := map[string]bool{
		"// slash":       true,
		"# hash":         true,
		"* block middle": true,
		"/* block open":  true,
		"-- sql":         true,
		"x = 1":          false,
		"return a / b":   false,
	}
	for line, want := range cases {
		if got := IsCommentLine(line); got != want {
			t.Errorf("IsCommentLine(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := map[string]string{
		"main.go":       "go",
		"app.ts":        "typescript",
		"app.tsx":       "typescript",
		"script.py":     "python",
		"Service.java":  "java",
		"lib.rs":        "rust",
		"unknown.xyz":   "",
		"Makefile":      "",
		"deep/path.php": "php",
	}
	for path, want := range cases {
		if got := DetectLanguage(path); got != want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestIsTestFile(t *testing.T) {
	cases := map[string]bool{
		"foo_test.go":          true,
		"foo.test.ts":          true,
		"foo.spec.js":          true,
		"test_foo.py":          true,
		"src/__tests__/foo.js": true,
		"foo.go":               false,
		"contest.py":           false,
	}
	for path, want := range cases {
		if got := IsTestFile(path); got != want {
			t.Errorf("IsTestFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestCoveragePercentGoFiles(t *testing.T) {
	units := []SourceUnit{
		{Path: "a.go"}, {Path: "b.go"}, {Path: "a_test.go"},
	}
	if got := CoveragePercent(units); got != 50 {
		t.Errorf("coverage = %f, want 50", got)
	}
	if got := CoveragePercent(nil); got != 0 {
		t.Errorf("empty coverage = %f, want 0", got)
	}
}
