package analysis

import (
	"strings"

	"github.com/debtscope/debtscope/pkg/source"
)

// funcDecl is a lexically-detected function declaration.
type funcDecl struct {
	name string
	line int // 0-based line index of the declaration
}

// AnalyzeComplexity computes cyclomatic and cognitive complexity plus the
// function count for one file, from branch-token occurrence counting.
//
// Cyclomatic complexity starts at 1 and adds one per branching token from
// the language's heuristic row. Cognitive complexity weights each branching
// token by the brace-nesting depth at its line and adds a flat penalty per
// self-recursive function. Nesting is a running count of braces per line,
// an approximation rather than true scope tracking; string literals containing
// braces and brace-less blocks will miscount.
//
// Degrades to zero values (cyclomatic 1) on empty or pathological input.
func AnalyzeComplexity(content, lang string) ComplexityMetrics {
	p := profileFor(lang)
	lines := source.SplitLines(content)

	cyclomatic := 1
	cognitive := 0
	depth := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || source.IsCommentLine(trimmed) {
			continue
		}

		branches := 0
		if p.branchRe != nil {
			branches += len(p.branchRe.FindAllStringIndex(line, -1))
		}
		for _, op := range p.branchOperators {
			branches += strings.Count(line, op)
		}

		cyclomatic += branches
		// Each branch costs 1 plus the nesting depth where it appears.
		cognitive += branches * (1 + depth)

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			depth = 0
		}
	}

	decls := findFunctions(lines, p)
	for _, d := range decls {
		if strings.Count(content, d.name+"(") >= 2 {
			cognitive += RecursionPenalty
		}
	}

	m := ComplexityMetrics{
		Cyclomatic:    cyclomatic,
		Cognitive:     cognitive,
		FunctionCount: len(decls),
	}
	if m.FunctionCount > 0 {
		m.AveragePerFunction = float64(m.Cyclomatic) / float64(m.FunctionCount)
	}
	return m
}

// findFunctions locates function declarations line-by-line using the
// language's declaration matcher.
func findFunctions(lines []string, p *languageProfile) []funcDecl {
	if p.funcPattern == nil {
		return nil
	}
	var decls []funcDecl
	for i, line := range lines {
		m := p.funcPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := ""
		for _, g := range m[1:] {
			if g != "" {
				name = g
				break
			}
		}
		if name == "" {
			continue
		}
		decls = append(decls, funcDecl{name: name, line: i})
	}
	return decls
}

// maxNestingDepth returns the peak running brace balance across the file.
func maxNestingDepth(lines []string) int {
	depth, peak := 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if source.IsCommentLine(trimmed) {
			continue
		}
		for _, ch := range line {
			switch ch {
			case '{':
				depth++
				if depth > peak {
					peak = depth
				}
			case '}':
				if depth > 0 {
					depth--
				}
			}
		}
	}
	return peak
}
