package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCollect(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"src/app.js":                 "const x = 1;\n",
		"src/util.py":                "x = 1\n",
		"node_modules/lodash/idx.js": "module.exports = {};\n",
		"vendor/lib.go":              "package lib\n",
		"README.md":                  "# readme\n",
		"assets/logo.svg":            "<svg/>\n",
		"src/service_test.js":        "test();\n",
	})

	units, res, err := Collect(CollectOptions{Root: dir})
	if err != nil {
		t.Fatal(err)
	}

	var paths []string
	for _, u := range units {
		paths = append(paths, u.Path)
	}
	want := []string{"src/app.js", "src/service_test.js", "src/util.py"}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Errorf("collected paths = %v, want %v", paths, want)
	}
	if res.FilesCollected != 3 {
		t.Errorf("FilesCollected = %d, want 3", res.FilesCollected)
	}
	if units[0].Content != "const x = 1;\n" {
		t.Errorf("content = %q", units[0].Content)
	}
}

func TestCollectSizeCap(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"big.js":   strings.Repeat("x = 1;\n", 200),
		"small.js": "x = 1;\n",
	})

	units, res, err := Collect(CollectOptions{Root: dir, MaxFileSize: 100})
	if err != nil {
		t.Fatal(err)
	}
	if len(units) != 1 || units[0].Path != "small.js" {
		t.Errorf("units = %+v, want only small.js", units)
	}
	if res.FilesSkipped != 1 {
		t.Errorf("FilesSkipped = %d, want 1", res.FilesSkipped)
	}
}

func TestCoveragePercent(t *testing.T) {
	units := []SourceUnit{
		{Path: "src/a.js"},
		{Path: "src/b.js"},
		{Path: "src/a.test.js"},
	}
	if got := CoveragePercent(units); got != 50 {
		t.Errorf("coverage = %v, want 50", got)
	}

	allTests := []SourceUnit{{Path: "a_test.go"}}
	if got := CoveragePercent(allTests); got != 0 {
		t.Errorf("coverage with no sources = %v, want 0", got)
	}
}
