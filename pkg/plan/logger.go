package plan

import (
	"github.com/walteh/srcpatch/pkg/text"
)

// ConsoleLoggerName is the built-in tree plan that routes console calls
// through the shared logger utility
const ConsoleLoggerName = "console-logger"

var consoleMethods = []string{"log", "error", "warn", "debug", "info"}

func init() {
	register(ConsoleLoggerName, ConsoleLogger)
}

// ConsoleLogger returns the plan rooted at src. The logger itself and the
// error boundary keep their console calls.
func ConsoleLogger() *Plan {
	return &Plan{
		Name:    ConsoleLoggerName,
		Target:  "src",
		Include: []string{"**/*.{js,jsx}"},
		Exclude: []string{"**/node_modules/**", "**/logger.js", "**/ErrorBoundary.jsx"},
		Lenient: true,
		Message: "Console statements replaced",
		Rules:   loggerRules("../shared/utils/logger"),
		Variants: []Variant{
			{Match: []string{"**/shared/**"}, Rules: loggerRules("../utils/logger")},
			{Match: []string{"**/features/**", "**/pages/**"}, Rules: loggerRules("../../shared/utils/logger")},
		},
	}
}

func loggerRules(importPath string) []text.Rule {
	uses := make([]string, 0, len(consoleMethods))
	for _, m := range consoleMethods {
		uses = append(uses, "console."+m+"(")
	}

	return []text.Rule{
		&text.ImportRule{
			RuleName: "logger-import",
			Import:   "import logger from '" + importPath + "';",
			UsesAny:  uses,
			Present:  []string{"import logger", "from '../../shared/utils/logger'", "from '../utils/logger'"},
		},
		text.MustRewriteRule("console-calls", `\bconsole\.(log|error|warn|debug|info)\(`, "logger.${1}("),
	}
}
