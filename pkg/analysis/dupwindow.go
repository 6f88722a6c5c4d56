package analysis

import "strings"

// duplicateBlocks counts duplicate code blocks in one file using a sliding
// window of DupWindowLines consecutive non-blank trimmed lines. A window
// participates only when its joined text is at least DupMinJoinedLen
// characters, filtering out runs of closing braces and one-word lines.
//
// The return value is the number of distinct windows whose exact text occurs
// more than once, not the raw occurrence count, so a block repeated seven
// times still contributes its window set once.
func duplicateBlocks(lines []string) int {
	var nb []string
	for _, line := range lines {
		if t := strings.TrimSpace(line); t != "" {
			nb = append(nb, t)
		}
	}
	if len(nb) < DupWindowLines {
		return 0
	}

	seen := make(map[string]int)
	for i := 0; i+DupWindowLines <= len(nb); i++ {
		joined := strings.Join(nb[i:i+DupWindowLines], "\n")
		if len(joined) < DupMinJoinedLen {
			continue
		}
		seen[joined]++
	}

	blocks := 0
	for _, count := range seen {
		if count > 1 {
			blocks++
		}
	}
	return blocks
}
