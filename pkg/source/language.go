// Package source provides scan inputs for debtscope: source units, language
// detection, and raw text metrics.
package source

import (
	"path/filepath"
	"strings"
)

// Language tags used by the analyzers. Unrecognised extensions yield "" and
// fall back to the generic heuristic table downstream.
const (
	LangGo         = "go"
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangPython     = "python"
	LangJava       = "java"
	LangRuby       = "ruby"
	LangPHP        = "php"
	LangC          = "c"
	LangCPP        = "cpp"
	LangCSharp     = "csharp"
	LangRust       = "rust"
	LangKotlin     = "kotlin"
	LangSwift      = "swift"
	LangScala      = "scala"
	LangBash       = "bash"
)

// langExtensions maps file extensions to language tags.
var langExtensions = map[string]string{
	".go":    LangGo,
	".js":    LangJavaScript,
	".jsx":   LangJavaScript,
	".mjs":   LangJavaScript,
	".cjs":   LangJavaScript,
	".ts":    LangTypeScript,
	".tsx":   LangTypeScript,
	".py":    LangPython,
	".pyw":   LangPython,
	".java":  LangJava,
	".rb":    LangRuby,
	".php":   LangPHP,
	".c":     LangC,
	".h":     LangC,
	".cpp":   LangCPP,
	".cc":    LangCPP,
	".cxx":   LangCPP,
	".hpp":   LangCPP,
	".cs":    LangCSharp,
	".rs":    LangRust,
	".kt":    LangKotlin,
	".kts":   LangKotlin,
	".swift": LangSwift,
	".scala": LangScala,
	".sh":    LangBash,
	".bash":  LangBash,
}

// DetectLanguage returns the language tag for a file path, or "" when the
// extension is not recognised.
func DetectLanguage(path string) string {
	return langExtensions[strings.ToLower(filepath.Ext(path))]
}

// Supported reports whether the file has a recognised source extension.
func Supported(path string) bool {
	return DetectLanguage(path) != ""
}

// IsTestFile reports whether a path looks like a test file by common naming
// conventions. Used to derive the test-coverage proxy, not to exclude files
// from analysis.
func IsTestFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(base, "_test.go"),
		strings.HasSuffix(base, ".test.js"), strings.HasSuffix(base, ".test.ts"),
		strings.HasSuffix(base, ".test.jsx"), strings.HasSuffix(base, ".test.tsx"),
		strings.HasSuffix(base, ".spec.js"), strings.HasSuffix(base, ".spec.ts"),
		strings.HasSuffix(base, "_test.py"), strings.HasPrefix(base, "test_"),
		strings.HasSuffix(base, "_spec.rb"), strings.HasSuffix(base, "test.java"):
		return true
	}
	dir := filepath.ToSlash(filepath.Dir(path))
	for _, seg := range strings.Split(dir, "/") {
		if seg == "test" || seg == "tests" || seg == "__tests__" || seg == "spec" {
			return true
		}
	}
	return false
}
