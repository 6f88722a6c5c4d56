package analysis

// Default thresholds and effort constants for the analyzers. These are the
// single source of truth, referenced by each rule, the scoring engine, and
// the CLI help text. Effort values are debt-minutes.
const (
	// -------------------------------------------------------------------------
	// Long method rule
	// -------------------------------------------------------------------------

	// LongMethodMajorLines is the body length at which a function is
	// flagged as major severity.
	LongMethodMajorLines = 50

	// LongMethodCriticalLines promotes the finding to critical.
	LongMethodCriticalLines = 100

	// LongMethodEffortStep is the per-10-lines effort multiplier:
	// effort = ceil(length/10) * 15.
	LongMethodEffortStep = 15

	// -------------------------------------------------------------------------
	// Large file rule
	// -------------------------------------------------------------------------

	// LargeFileCriticalLines is the non-blank line count at which a file
	// is flagged as critical severity.
	LargeFileCriticalLines = 500

	// LargeFileBlockerLines promotes the finding to blocker.
	LargeFileBlockerLines = 1000

	// LargeFileEffortStep is the per-100-lines effort multiplier:
	// effort = ceil(lines/100) * 60.
	LargeFileEffortStep = 60

	// -------------------------------------------------------------------------
	// Magic number rule
	// -------------------------------------------------------------------------

	// MagicNumberMaxPerFile caps reported occurrences per file. Beyond
	// this the signal-to-noise ratio drops.
	MagicNumberMaxPerFile = 10

	// MagicNumberEffort is the per-occurrence effort.
	MagicNumberEffort = 5

	// -------------------------------------------------------------------------
	// Deep nesting rule
	// -------------------------------------------------------------------------

	// DeepNestingMinorDepth is the brace-balance peak above which a file
	// is flagged at minor severity.
	DeepNestingMinorDepth = 4

	// DeepNestingMajorDepth promotes the finding to major.
	DeepNestingMajorDepth = 6

	// DeepNestingEffortPerLevel multiplies the peak: effort = peak * 10.
	DeepNestingEffortPerLevel = 10

	// -------------------------------------------------------------------------
	// Dead code rule
	// -------------------------------------------------------------------------

	// DeadCodeMinOccurrences is the number of code-shaped comment lines
	// above which one aggregate finding is emitted.
	DeadCodeMinOccurrences = 10

	// DeadCodeEffortPerLine multiplies the occurrence count.
	DeadCodeEffortPerLine = 2

	// -------------------------------------------------------------------------
	// Duplication rule
	// -------------------------------------------------------------------------

	// DupWindowLines is the sliding window size in non-blank lines.
	DupWindowLines = 6

	// DupMinJoinedLen is the minimum joined character length for a window
	// to participate in duplicate detection. Shorter windows are mostly
	// closing braces and boilerplate.
	DupMinJoinedLen = 50

	// DupMajorBlocks is the duplicate-block count above which the finding
	// is promoted from minor to major.
	DupMajorBlocks = 5

	// DupEffortPerBlock multiplies the block count.
	DupEffortPerBlock = 30

	// -------------------------------------------------------------------------
	// Missing error handling rule
	// -------------------------------------------------------------------------

	// MissingErrorHandlingEffort is the flat effort for the single
	// per-file finding.
	MissingErrorHandlingEffort = 20

	// -------------------------------------------------------------------------
	// Security rules
	// -------------------------------------------------------------------------

	HardcodedSecretEffort = 15
	SQLInjectionEffort    = 30
	MarkupInjectionEffort = 25
	InsecureRandomEffort  = 10
	DynamicEvalEffort     = 20
	RiskyExecEffort       = 20

	// -------------------------------------------------------------------------
	// Authorship classifier
	// -------------------------------------------------------------------------

	// HumanWeightFactor discounts the human score in the likelihood
	// normalization: aiLikelihood = 100*ai/(ai + 0.7*human). Changing it
	// shifts every likelihood score; treat it as calibrated.
	HumanWeightFactor = 0.7

	// GenericCommentMinMatches is the boilerplate-comment match count
	// above which the generic_comments pattern fires (strictly greater).
	GenericCommentMinMatches = 3

	// GenericNameMinOccurrences is the generic-identifier occurrence
	// count above which generic_naming fires.
	GenericNameMinOccurrences = 10

	// RecursionPenalty is the flat cognitive-complexity addition per
	// self-recursive function.
	RecursionPenalty = 5

	// -------------------------------------------------------------------------
	// Runner defaults
	// -------------------------------------------------------------------------

	// DefaultConcurrency bounds the parallel per-file analyzer goroutines.
	DefaultConcurrency = 8
)
