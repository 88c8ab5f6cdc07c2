package llm

import (
	"path/filepath"
	"strings"

	"github.com/sevigo/review-relay/internal/core"
)

const (
	extensionGo    = ".go"
	extensionJS    = ".js"
	extensionTS    = ".ts"
	extensionTSX   = ".tsx"
	extensionJSX   = ".jsx"
	extensionPy    = ".py"
	extensionJava  = ".java"
	extensionC     = ".c"
	extensionCpp   = ".cpp"
	extensionH     = ".h"
	extensionHPP   = ".hpp"
	extensionRS    = ".rs"
	extensionRB    = ".rb"
	extensionPHP   = ".php"
	extensionCS    = ".cs"
	extensionSwift = ".swift"
	extensionKT    = ".kt"
	extensionScala = ".scala"
)

var languageByExtension = map[string]string{
	extensionGo:    "go",
	extensionJS:    "javascript",
	extensionJSX:   "javascript",
	extensionTS:    "typescript",
	extensionTSX:   "typescript",
	extensionPy:    "python",
	extensionJava:  "java",
	extensionC:     "c",
	extensionH:     "c",
	extensionCpp:   "cpp",
	extensionHPP:   "cpp",
	extensionRS:    "rust",
	extensionRB:    "ruby",
	extensionPHP:   "php",
	extensionCS:    "csharp",
	extensionSwift: "swift",
	extensionKT:    "kotlin",
	extensionScala: "scala",
}

// LanguageForPath guesses the fence language from a file name. Unknown
// extensions map to core.DefaultLanguage.
func LanguageForPath(path string) string {
	if lang, ok := languageByExtension[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return core.DefaultLanguage
}
