// Package scanignore provides gitignore-compatible file matching for debtscope.
//
// It loads patterns from a project's .debtscopeignore file (if present), merges
// them with built-in defaults for generated code, build artifacts, and common
// non-source directories, plus any ignore globs from the scan configuration,
// and exposes a single ShouldIgnore method used by the file collector and the
// watcher.
//
// Pattern syntax mirrors .gitignore:
//
//	# comment
//	*.pb.go          match files by extension
//	vendor/          match directories by name (trailing slash)
//	**/generated/    match at any depth
//	!important.go    negate a previous pattern
//	/rootonly        anchored to project root (leading slash)
package scanignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoreFileName is the per-project override file, read from the project root.
const IgnoreFileName = ".debtscopeignore"

// Matcher tests whether a path should be ignored.
type Matcher struct {
	rules []rule
}

type rule struct {
	pattern  string
	negation bool
	dirOnly  bool
	anchored bool // pattern contains '/' (other than trailing), anchored to root
}

// BuiltinDefaults are patterns applied even when no ignore file exists.
// They cover dependency trees, build output, VCS metadata, and generated
// files that would otherwise dominate every debt report.
var BuiltinDefaults = []string{
	// Version control
	".git/",
	".svn/",
	".hg/",

	// Debtscope internal
	".debtscope/",

	// Node / JavaScript / TypeScript
	"node_modules/",
	"dist/",
	".next/",
	".nuxt/",
	"coverage/",
	".cache/",

	// Python
	"__pycache__/",
	".venv/",
	"venv/",
	".tox/",
	".mypy_cache/",
	".pytest_cache/",

	// Go
	"vendor/",

	// Rust
	"target/",

	// Java / Kotlin / Gradle
	"build/",
	".gradle/",
	"out/",

	// C#
	"bin/",
	"obj/",

	// Elixir
	"_build/",
	"deps/",

	// IDE / Editor
	".idea/",
	".vscode/",

	// Generated code
	"*.pb.go",
	"*_generated.go",
	"*.gen.go",
	"*.min.js",
	"*.min.css",

	// Lock files and archives
	"*.lock",
}

// New creates a Matcher from built-in defaults, an optional
// <projectRoot>/.debtscopeignore file, and any extra globs from the scan
// configuration (highest priority). If the ignore file does not exist the
// Matcher still works using defaults plus extraGlobs.
func New(projectRoot string, extraGlobs []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range BuiltinDefaults {
		m.rules = append(m.rules, parsePattern(p))
	}

	ignoreFile := filepath.Join(projectRoot, IgnoreFileName)
	if err := m.loadFile(ignoreFile); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	for _, g := range extraGlobs {
		if g = strings.TrimSpace(g); g != "" {
			m.rules = append(m.rules, parsePattern(g))
		}
	}
	return m, nil
}

// NewFromDefaults creates a Matcher using only built-in defaults.
func NewFromDefaults() *Matcher {
	m := &Matcher{}
	for _, p := range BuiltinDefaults {
		m.rules = append(m.rules, parsePattern(p))
	}
	return m
}

// NewEmpty creates a Matcher with no rules at all; nothing is ignored.
// Use this in tests that need to scan normally-excluded paths.
func NewEmpty() *Matcher {
	return &Matcher{}
}

// ShouldIgnore reports whether the given path (relative to the project root)
// should be ignored. isDir must be true when path refers to a directory.
// Rules are evaluated in order and the last matching rule wins, so a later
// negation can un-ignore a path matched by an earlier pattern.
func (m *Matcher) ShouldIgnore(path string, isDir bool) bool {
	path = filepath.ToSlash(path)
	path = strings.TrimSuffix(path, "/")

	if path == "" || path == "." {
		return false
	}

	ignored := false
	matched := false
	for _, r := range m.rules {
		if r.dirOnly && !isDir {
			continue
		}
		if r.match(path) {
			ignored = !r.negation
			matched = true
		}
	}

	if ignored {
		return true
	}
	// An explicit negation match overrides the parent-directory check below,
	// so "!testdata/keep.go" can survive an ignored "testdata/".
	if matched {
		return false
	}

	// Files inherit ignored parent directories. This handles callers that
	// pass individual file paths like "vendor/foo/bar.go" without walking.
	if !isDir {
		parts := strings.Split(path, "/")
		for i := 1; i <= len(parts)-1; i++ {
			if m.ShouldIgnore(strings.Join(parts[:i], "/"), true) {
				return true
			}
		}
	}
	return false
}

// ShouldIgnoreFile is a convenience for ShouldIgnore(path, false).
func (m *Matcher) ShouldIgnoreFile(path string) bool {
	return m.ShouldIgnore(path, false)
}

// WalkFunc returns a skip-check for use inside filepath.Walk callbacks. It
// converts absolute paths to relative paths using projectRoot.
func (m *Matcher) WalkFunc(projectRoot string) func(path string, info os.FileInfo) (skip bool, skipDir bool) {
	return func(path string, info os.FileInfo) (bool, bool) {
		rel, err := filepath.Rel(projectRoot, path)
		if err != nil {
			rel = path
		}
		isDir := info != nil && info.IsDir()
		if m.ShouldIgnore(rel, isDir) {
			if isDir {
				return true, true
			}
			return true, false
		}
		return false, false
	}
}

// loadFile reads patterns from an ignore file.
func (m *Matcher) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.rules = append(m.rules, parsePattern(line))
	}
	return scanner.Err()
}

// parsePattern converts a gitignore-style pattern string into a rule.
func parsePattern(pattern string) rule {
	r := rule{}

	if strings.HasPrefix(pattern, "!") {
		r.negation = true
		pattern = pattern[1:]
	}
	if strings.HasSuffix(pattern, "/") {
		r.dirOnly = true
		pattern = strings.TrimSuffix(pattern, "/")
	}
	if strings.HasPrefix(pattern, "/") {
		r.anchored = true
		pattern = strings.TrimPrefix(pattern, "/")
	}
	// A pattern with an interior slash is anchored to the root per gitignore
	// rules; patterns without slashes match basenames at any depth.
	if !r.anchored && strings.Contains(pattern, "/") {
		r.anchored = true
	}

	r.pattern = pattern
	return r
}

// match tests whether a rule matches the given path. path is relative to the
// project root, forward-slash separated, no trailing slash. All glob
// semantics (including **) are delegated to doublestar.
func (r *rule) match(path string) bool {
	if r.anchored {
		ok, _ := doublestar.Match(r.pattern, path)
		return ok
	}

	// Unanchored: match the basename, or the pattern at any depth.
	if ok, _ := doublestar.Match(r.pattern, filepath.Base(path)); ok {
		return true
	}
	ok, _ := doublestar.Match("**/"+r.pattern, path)
	return ok
}
