package analysis

import (
	"regexp"
	"strings"
)

// languageProfile holds the lexical heuristics for one language tag. All
// per-language behaviour lives in this table; unrecognised tags fall back
// to genericProfile.
type languageProfile struct {
	// branchKeywords add one decision point each (word-boundary matched).
	branchKeywords []string
	// branchOperators add one decision point per occurrence (substring
	// counted: short-circuit and ternary operators).
	branchOperators []string
	// funcPattern matches a function/method declaration and captures the
	// name in group 1 when possible.
	funcPattern *regexp.Regexp
	// keywords is the reserved-word set used for keyword-density signals.
	keywords []string
	// errorTokens are the error-handling markers used by the
	// error-handling-quality indicator.
	errorTokens []string

	branchRe   *regexp.Regexp // compiled from branchKeywords, lazily via compile()
	keywordSet map[string]bool
}

func (p *languageProfile) compile() {
	if p.branchRe == nil && len(p.branchKeywords) > 0 {
		p.branchRe = regexp.MustCompile(`\b(` + strings.Join(p.branchKeywords, "|") + `)\b`)
	}
	if p.keywordSet == nil {
		p.keywordSet = make(map[string]bool, len(p.keywords))
		for _, k := range p.keywords {
			p.keywordSet[k] = true
		}
	}
}

var genericProfile = &languageProfile{
	branchKeywords:  []string{"if", "else", "for", "while", "case", "catch", "except", "elif", "when"},
	branchOperators: []string{"&&", "||", " ? "},
	funcPattern:     regexp.MustCompile(`(?m)^\s*(?:async\s+)?(?:function|def|func|fn|sub)\s+(\w+)`),
	keywords: []string{
		"if", "else", "for", "while", "return", "break", "continue",
		"function", "var", "let", "const", "class", "new", "try", "catch",
	},
	errorTokens: []string{"try", "catch", "throw", "raise", "except", "rescue"},
}

// languageProfiles is the full heuristic table, keyed by source.Lang* tags.
// TypeScript shares the JavaScript row (registered below).
var languageProfiles = map[string]*languageProfile{
	"go": {
		branchKeywords:  []string{"if", "for", "case", "select", "go", "defer"},
		branchOperators: []string{"&&", "||"},
		funcPattern:     regexp.MustCompile(`(?m)^\s*func\s+(?:\([^)]*\)\s*)?(\w+)\s*\(`),
		keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
			"interface", "map", "package", "range", "return", "select",
			"struct", "switch", "type", "var",
		},
		errorTokens: []string{"if err != nil", "errors.", "fmt.Errorf", "panic("},
	},
	"javascript": {
		branchKeywords:  []string{"if", "else", "for", "while", "case", "catch", "do"},
		branchOperators: []string{"&&", "||", " ? ", "??"},
		funcPattern:     regexp.MustCompile(`(?m)(?:^|\s)(?:async\s+)?function\s*\*?\s*(\w+)|(?:^|\s)(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s*)?(?:function|\([^)]*\)\s*=>|\w+\s*=>)`),
		keywords: []string{
			"async", "await", "break", "case", "catch", "class", "const",
			"continue", "default", "delete", "do", "else", "export", "extends",
			"finally", "for", "function", "if", "import", "in", "instanceof",
			"let", "new", "return", "super", "switch", "this", "throw", "try",
			"typeof", "var", "void", "while", "yield",
		},
		errorTokens: []string{"try", "catch", ".catch(", "throw"},
	},
	"python": {
		branchKeywords:  []string{"if", "elif", "else", "for", "while", "except", "case", "with"},
		branchOperators: []string{" and ", " or "},
		funcPattern:     regexp.MustCompile(`(?m)^\s*(?:async\s+)?def\s+(\w+)`),
		keywords: []string{
			"and", "as", "assert", "async", "await", "break", "class",
			"continue", "def", "del", "elif", "else", "except", "finally",
			"for", "from", "global", "if", "import", "in", "is", "lambda",
			"not", "or", "pass", "raise", "return", "try", "while", "with",
			"yield",
		},
		errorTokens: []string{"try", "except", "raise", "finally"},
	},
	"java": {
		branchKeywords:  []string{"if", "else", "for", "while", "case", "catch", "do"},
		branchOperators: []string{"&&", "||", " ? "},
		funcPattern:     regexp.MustCompile(`(?m)(?:public|protected|private|static|final|\s)+[\w<>\[\]]+\s+(\w+)\s*\([^)]*\)\s*(?:throws\s+[\w,\s]+)?\{`),
		keywords: []string{
			"abstract", "boolean", "break", "case", "catch", "class", "do",
			"else", "extends", "final", "finally", "for", "if", "implements",
			"import", "instanceof", "int", "interface", "new", "package",
			"private", "protected", "public", "return", "static", "switch",
			"this", "throw", "throws", "try", "void", "while",
		},
		errorTokens: []string{"try", "catch", "throw", "finally"},
	},
	"ruby": {
		branchKeywords:  []string{"if", "elsif", "else", "unless", "case", "when", "while", "until", "rescue"},
		branchOperators: []string{"&&", "||", " ? "},
		funcPattern:     regexp.MustCompile(`(?m)^\s*def\s+(?:self\.)?(\w+)`),
		keywords: []string{
			"begin", "break", "case", "class", "def", "do", "else", "elsif",
			"end", "ensure", "if", "module", "next", "nil", "raise", "rescue",
			"return", "self", "then", "unless", "until", "when", "while",
			"yield",
		},
		errorTokens: []string{"begin", "rescue", "raise", "ensure"},
	},
	"php": {
		branchKeywords:  []string{"if", "elseif", "else", "for", "foreach", "while", "case", "catch", "do"},
		branchOperators: []string{"&&", "||", " ? ", "??"},
		funcPattern:     regexp.MustCompile(`(?m)function\s+(\w+)\s*\(`),
		keywords: []string{
			"abstract", "array", "break", "case", "catch", "class", "const",
			"continue", "do", "echo", "else", "elseif", "final", "finally",
			"for", "foreach", "function", "if", "namespace", "new", "private",
			"protected", "public", "return", "static", "switch", "throw",
			"try", "use", "while",
		},
		errorTokens: []string{"try", "catch", "throw", "finally"},
	},
	"c": {
		branchKeywords:  []string{"if", "else", "for", "while", "case", "do"},
		branchOperators: []string{"&&", "||", " ? "},
		funcPattern:     regexp.MustCompile(`(?m)^[\w\*]+[\w\s\*]*\s+\**(\w+)\s*\([^;]*\)\s*\{`),
		keywords: []string{
			"break", "case", "char", "const", "continue", "default", "do",
			"double", "else", "enum", "float", "for", "goto", "if", "int",
			"long", "return", "short", "sizeof", "static", "struct", "switch",
			"typedef", "union", "unsigned", "void", "while",
		},
		errorTokens: []string{"errno", "perror", "goto err", "return -1"},
	},
	"csharp": {
		branchKeywords:  []string{"if", "else", "for", "foreach", "while", "case", "catch", "do", "when"},
		branchOperators: []string{"&&", "||", " ? ", "??"},
		funcPattern:     regexp.MustCompile(`(?m)(?:public|protected|private|internal|static|\s)+[\w<>\[\]]+\s+(\w+)\s*\([^)]*\)\s*\{`),
		keywords: []string{
			"abstract", "async", "await", "base", "bool", "break", "case",
			"catch", "class", "const", "continue", "do", "else", "enum",
			"finally", "for", "foreach", "if", "interface", "internal",
			"namespace", "new", "override", "private", "protected", "public",
			"return", "static", "string", "switch", "this", "throw", "try",
			"using", "var", "void", "while",
		},
		errorTokens: []string{"try", "catch", "throw", "finally"},
	},
	"rust": {
		branchKeywords:  []string{"if", "else", "for", "while", "match", "loop"},
		branchOperators: []string{"&&", "||"},
		funcPattern:     regexp.MustCompile(`(?m)^\s*(?:pub\s+)?(?:async\s+)?fn\s+(\w+)`),
		keywords: []string{
			"as", "async", "await", "break", "const", "continue", "else",
			"enum", "fn", "for", "if", "impl", "in", "let", "loop", "match",
			"mod", "move", "mut", "pub", "ref", "return", "self", "struct",
			"trait", "type", "unsafe", "use", "where", "while",
		},
		errorTokens: []string{"Result<", "unwrap_or", "?;", "match"},
	},
}

func init() {
	// TypeScript and the C-family variants share rows rather than
	// duplicating them.
	languageProfiles["typescript"] = languageProfiles["javascript"]
	languageProfiles["cpp"] = languageProfiles["c"]
	languageProfiles["kotlin"] = languageProfiles["java"]
	languageProfiles["scala"] = languageProfiles["java"]
	languageProfiles["swift"] = languageProfiles["rust"]
	languageProfiles["bash"] = genericProfile

	for _, p := range languageProfiles {
		p.compile()
	}
	genericProfile.compile()
}

// profileFor returns the heuristic profile for a language tag, falling back
// to the generic row for unrecognised tags (never an error).
func profileFor(lang string) *languageProfile {
	if p, ok := languageProfiles[lang]; ok {
		return p
	}
	return genericProfile
}
