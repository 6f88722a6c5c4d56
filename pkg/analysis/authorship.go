package analysis

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/debtscope/debtscope/pkg/source"
)

// Authorship pattern types. AI-indicative patterns add to the AI score,
// human-indicative ones to the human score; both appear in the matched
// pattern list.
const (
	PatternUniformStructure  = "uniform_structure"
	PatternKeywordDensity    = "high_keyword_density"
	PatternUniformFunctions  = "uniform_function_length"
	PatternOverDocumented    = "over_documented"
	PatternSparseComments    = "sparse_comments"
	PatternGenericComments   = "generic_comments"
	PatternGenericNaming     = "generic_naming"
	PatternRepetitive        = "repetitive_structure"
	PatternToolSignature     = "ai_tool_signature"
	PatternNarrativeComments = "narrative_comments"
	PatternDomainVocabulary  = "domain_vocabulary"
	PatternDebugArtifacts    = "debug_artifacts"
)

// genericCommentRes is the boilerplate-comment library. Matches are counted
// per comment line; more than GenericCommentMinMatches fires the
// generic_comments pattern.
var genericCommentRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?://|#|\*)\s*This (?:function|method|class|file|module) `),
	regexp.MustCompile(`(?i)^(?://|#|\*)\s*(?:Function|Method|Helper(?: function)?) to `),
	regexp.MustCompile(`(?i)^(?://|#|\*)\s*Returns? the \w+\.?$`),
	regexp.MustCompile(`(?i)^(?://|#|\*)\s*(?:Initialize|Create|Define|Set up) (?:the|a) \w+\.?$`),
	regexp.MustCompile(`(?i)^(?://|#|\*)\s*Main (?:function|entry point)`),
	regexp.MustCompile(`(?i)^(?://|#|\*)\s*Import(?:s)? (?:the )?(?:required|necessary) `),
}

// genericNames is the fixed list of low-information identifiers.
var genericNames = []string{
	"data", "result", "temp", "tmp", "value", "item", "items", "obj",
	"res", "arr", "val", "output", "input", "element", "thing",
}

var genericNameRe = regexp.MustCompile(`\b(` + strings.Join(genericNames, "|") + `)\b`)

// toolSignatures are literal strings referencing known AI assistants. Each
// occurrence adds a large fixed weight at high confidence.
var toolSignatures = []string{
	"Copilot", "ChatGPT", "GPT-4", "GPT-3", "Claude", "Gemini",
	"Codeium", "Tabnine", "Cursor AI", "generated by AI", "AI-generated",
	"AI generated",
}

// debugArtifactRe marks refactor/debug leftovers that machines rarely write.
var debugArtifactRe = regexp.MustCompile(`(?i)\b(TODO|FIXME|HACK|XXX|WTF|workaround|kludge|temporary|revisit)\b`)

var wordTokenRe = regexp.MustCompile(`[A-Za-z_]\w*`)

// Score weights for the additive accumulation. Capped behaviour comes from
// each signal firing at most once (except tool signatures, which add per
// occurrence).
const (
	wUniformStructure = 10
	wKeywordDensity   = 10
	wUniformFunctions = 10
	wOverDocumented   = 8
	wSparseComments   = 6
	wGenericComments  = 15
	wGenericNaming    = 8
	wRepetitive       = 10
	wToolSignature    = 25
	wNarrative        = 10
	wDomainVocab      = 6
	wDebugArtifacts   = 8
	wNoGenericNames   = 8
)

// AnalyzeAuthorship scores the likelihood that a file was machine-generated
// using additive, capped point accumulation, an explicit heuristic rather than a
// trained classifier. AILikelihood and HumanLikelihood always sum to 100.
func AnalyzeAuthorship(path, content, lang string, lm source.LineMetrics, cm ComplexityMetrics) *AuthorshipAnalysis {
	p := profileFor(lang)
	lines := source.SplitLines(content)

	var ai, human float64
	var patterns []Pattern

	addAI := func(weight float64, typ string, confidence int, detail string) {
		ai += weight
		patterns = append(patterns, Pattern{Type: typ, Confidence: confidence, Severity: SevInfo, Detail: detail})
	}
	addHuman := func(weight float64, typ string, confidence int, detail string) {
		human += weight
		patterns = append(patterns, Pattern{Type: typ, Confidence: confidence, Severity: SevInfo, Detail: detail})
	}

	// Structural signals from the static metrics: uniformly simple code at
	// non-trivial size reads machine-made.
	peak := maxNestingDepth(lines)
	if cm.Cyclomatic < 10 && peak <= 2 && lm.Code > 50 {
		addAI(wUniformStructure, PatternUniformStructure, 40,
			fmt.Sprintf("low complexity (%d) and nesting (%d) across %d code lines", cm.Cyclomatic, peak, lm.Code))
	}

	if density := keywordDensity(content, p); density > 0.18 {
		addAI(wKeywordDensity, PatternKeywordDensity, 35,
			fmt.Sprintf("keyword density %.2f", density))
	}

	if avg, variance, n := functionLengthStats(lines, p); n >= 3 && avg < 15 && variance < 20 {
		addAI(wUniformFunctions, PatternUniformFunctions, 45,
			fmt.Sprintf("%d functions averaging %.1f lines, variance %.1f", n, avg, variance))
	}

	// Comment signals. Over-documentation and Copilot-style terseness are
	// both suspicious, for opposite reasons.
	ratio := lm.CommentRatio()
	if ratio > 0.4 {
		addAI(wOverDocumented, PatternOverDocumented, 40,
			fmt.Sprintf("comment ratio %.2f", ratio))
	} else if ratio < 0.02 && lm.Total > 100 {
		addAI(wSparseComments, PatternSparseComments, 30,
			fmt.Sprintf("comment ratio %.2f over %d lines", ratio, lm.Total))
	}

	if n := genericCommentCount(lines); n > GenericCommentMinMatches {
		ai += wGenericComments
		patterns = append(patterns, Pattern{
			Type: PatternGenericComments, Confidence: 75, Severity: SevMinor,
			Detail: fmt.Sprintf("%d boilerplate comments", n),
		})
	}

	// Naming signals.
	genericCount := len(genericNameRe.FindAllString(content, -1))
	if genericCount > GenericNameMinOccurrences {
		addAI(wGenericNaming, PatternGenericNaming, 40,
			fmt.Sprintf("%d generic identifiers", genericCount))
	} else if genericCount == 0 && lm.Code > 80 {
		addHuman(wNoGenericNames, PatternDomainVocabulary, 35, "no generic identifiers in a non-trivial file")
	}

	// Structural repetition, reusing the smell detector's window.
	if blocks := duplicateBlocks(lines); blocks > 3 {
		addAI(wRepetitive, PatternRepetitive, 45,
			fmt.Sprintf("%d repeated blocks", blocks))
	}

	// Explicit tool signatures trump everything else.
	for _, sig := range toolSignatures {
		if n := strings.Count(content, sig); n > 0 {
			ai += wToolSignature * float64(n)
			patterns = append(patterns, Pattern{
				Type: PatternToolSignature, Confidence: 95, Severity: SevMajor,
				Detail: fmt.Sprintf("references %q", sig),
			})
		}
	}

	// Human counter-signals.
	if n := narrativeCommentCount(lines); n > 2 {
		addHuman(wNarrative, PatternNarrativeComments, 50,
			fmt.Sprintf("%d narrative comments", n))
	}
	if debugArtifactRe.MatchString(content) {
		addHuman(wDebugArtifacts, PatternDebugArtifacts, 45, "debug or refactor artifacts in comments")
	}
	if n := longIdentifierCount(content, p); n > 15 {
		addHuman(wDomainVocab, PatternDomainVocabulary, 35,
			fmt.Sprintf("%d domain-specific identifiers", n))
	}

	// Normalization. With no signals at all the prior is 50/50.
	aiLikelihood := 50.0
	if ai > 0 || human > 0 {
		aiLikelihood = 100 * ai / (ai + HumanWeightFactor*human)
	}

	return &AuthorshipAnalysis{
		AILikelihood:    aiLikelihood,
		HumanLikelihood: 100 - aiLikelihood,
		Patterns:        patterns,
		Indicators:      computeIndicators(lines, content, lm, p, genericCount, peak),
	}
}

// keywordDensity returns reserved-word tokens over total word tokens.
func keywordDensity(content string, p *languageProfile) float64 {
	tokens := wordTokenRe.FindAllString(content, -1)
	if len(tokens) == 0 {
		return 0
	}
	kw := 0
	for _, t := range tokens {
		if p.keywordSet[t] {
			kw++
		}
	}
	return float64(kw) / float64(len(tokens))
}

// functionLengthStats returns the mean and variance of function body spans.
func functionLengthStats(lines []string, p *languageProfile) (avg, variance float64, n int) {
	var spans []float64
	for _, decl := range findFunctions(lines, p) {
		if length, ok := functionSpan(lines, decl.line); ok {
			spans = append(spans, float64(length))
		}
	}
	n = len(spans)
	if n == 0 {
		return 0, 0, 0
	}
	for _, s := range spans {
		avg += s
	}
	avg /= float64(n)
	for _, s := range spans {
		variance += (s - avg) * (s - avg)
	}
	variance /= float64(n)
	return avg, variance, n
}

func genericCommentCount(lines []string) int {
	count := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !source.IsCommentLine(trimmed) {
			continue
		}
		for _, re := range genericCommentRes {
			if re.MatchString(trimmed) {
				count++
				break
			}
		}
	}
	return count
}

// narrativeCommentCount counts comments that read like prose: sentence-cased,
// punctuated, long enough to carry intent, and not boilerplate.
func narrativeCommentCount(lines []string) int {
	count := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !source.IsCommentLine(trimmed) {
			continue
		}
		body := strings.TrimLeft(trimmed, "/#* ")
		if len(body) < 30 || !strings.HasSuffix(body, ".") {
			continue
		}
		if body[0] < 'A' || body[0] > 'Z' {
			continue
		}
		generic := false
		for _, re := range genericCommentRes {
			if re.MatchString(trimmed) {
				generic = true
				break
			}
		}
		if !generic && strings.Count(body, " ") >= 4 {
			count++
		}
	}
	return count
}

// longIdentifierCount counts distinct non-keyword identifiers of 10+ chars,
// a rough proxy for domain vocabulary.
func longIdentifierCount(content string, p *languageProfile) int {
	seen := make(map[string]bool)
	for _, t := range wordTokenRe.FindAllString(content, -1) {
		if len(t) >= 10 && !p.keywordSet[t] {
			seen[t] = true
		}
	}
	return len(seen)
}

// computeIndicators derives the informational 0-100 sub-scores. They are
// independent of the likelihood accumulation and never feed back into it.
func computeIndicators(lines []string, content string, lm source.LineMetrics, p *languageProfile, genericCount, peak int) Indicators {
	return Indicators{
		StyleConsistency:     indentConsistency(lines),
		CommentQuality:       commentQuality(lm),
		NamingQuality:        clamp100(100 - genericCount*5),
		StructuralQuality:    clamp100(100 - peak*10),
		ErrorHandlingQuality: errorHandlingQuality(content, p),
	}
}

// indentConsistency measures how uniformly the file indents: the dominant
// style (tabs or spaces) as a share of all indented lines.
func indentConsistency(lines []string) int {
	tabs, spaces := 0, 0
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "\t"):
			tabs++
		case strings.HasPrefix(line, " "):
			spaces++
		}
	}
	total := tabs + spaces
	if total == 0 {
		return 100
	}
	dominant := tabs
	if spaces > dominant {
		dominant = spaces
	}
	return int(math.Round(100 * float64(dominant) / float64(total)))
}

// commentQuality scores the comment ratio against a healthy 5-30% band.
func commentQuality(lm source.LineMetrics) int {
	if lm.Total == 0 {
		return 50
	}
	ratio := lm.CommentRatio()
	switch {
	case ratio >= 0.05 && ratio <= 0.3:
		return 100
	case ratio == 0:
		return 20
	case ratio < 0.05:
		return 60
	default:
		// Over-commented: degrade as the ratio climbs past the band.
		return clamp100(100 - int((ratio-0.3)*200))
	}
}

func errorHandlingQuality(content string, p *languageProfile) int {
	count := 0
	for _, tok := range p.errorTokens {
		count += strings.Count(content, tok)
	}
	return clamp100(count * 20)
}

func clamp100(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
