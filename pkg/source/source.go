package source

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/debtscope/debtscope/pkg/scanignore"
)

// SourceUnit is a single scan input: a repository-relative path and its full
// text content. Units are immutable once collected; the analysis core never
// touches the file system.
type SourceUnit struct {
	Path    string
	Content string
}

// DefaultMaxFileSize is the per-file size cap for collection. Larger files
// are almost always generated or vendored and would dominate the metrics.
const DefaultMaxFileSize int64 = 1 << 20 // 1 MiB

// CollectOptions configures file collection.
type CollectOptions struct {
	// Root is the directory to walk (default ".").
	Root string
	// Ignore filters files and directories. If nil, built-in defaults apply.
	Ignore *scanignore.Matcher
	// MaxFileSize caps per-file content size (default DefaultMaxFileSize).
	MaxFileSize int64
}

// CollectResult summarises a collection run.
type CollectResult struct {
	FilesCollected int
	FilesSkipped   int
}

// Collect walks the root directory and returns one SourceUnit per supported
// source file, ordered by path for reproducible downstream output. Unreadable
// files are skipped, never fatal.
func Collect(opts CollectOptions) ([]SourceUnit, *CollectResult, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	ignore := opts.Ignore
	if ignore == nil {
		ignore = scanignore.NewFromDefaults()
	}
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, err
	}
	shouldSkip := ignore.WalkFunc(absRoot)

	result := &CollectResult{}
	var units []SourceUnit

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if skip, skipDir := shouldSkip(path, info); skip {
			if skipDir {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if !Supported(path) {
			return nil
		}
		if info.Size() > maxSize || info.Mode()&os.ModeSymlink != 0 {
			result.FilesSkipped++
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			result.FilesSkipped++
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		units = append(units, SourceUnit{
			Path:    filepath.ToSlash(rel),
			Content: string(content),
		})
		result.FilesCollected++
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sort.Slice(units, func(i, j int) bool { return units[i].Path < units[j].Path })
	return units, result, nil
}

// CoveragePercent derives the test-coverage proxy from the file inventory:
// the ratio of test files to non-test source files, capped at 100. It is a
// structural stand-in for real coverage data, supplied to the scoring engine
// as an external scalar.
func CoveragePercent(units []SourceUnit) float64 {
	var tests, sources int
	for _, u := range units {
		if IsTestFile(u.Path) {
			tests++
		} else {
			sources++
		}
	}
	if sources == 0 {
		return 0
	}
	pct := 100 * float64(tests) / float64(sources)
	if pct > 100 {
		pct = 100
	}
	return pct
}
