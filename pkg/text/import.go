package text

import (
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	importStart = regexp.MustCompile(`^import[\s{*]`)
	importEnd   = regexp.MustCompile(`['"][^'"]*['"];?\s*$`)
)

// ImportRule adds Import on its own line after the last import statement.
// Text already holding Import or any of Present is AlreadyApplied. Otherwise
// a non-empty UsesAny must match somewhere in the text.
type ImportRule struct {
	RuleName string
	Import   string
	UsesAny  []string
	Present  []string
}

func (r *ImportRule) Name() string {
	if r.RuleName == "" {
		return "import"
	}
	return r.RuleName
}

func (r *ImportRule) Validate() error {
	if strings.TrimSpace(r.Import) == "" {
		return errors.Errorf("%s: import line is required: %w", r.Name(), ErrInvalidRule)
	}
	if strings.Contains(r.Import, "\n") {
		return errors.Errorf("%s: import must be a single line: %w", r.Name(), ErrInvalidRule)
	}
	return nil
}

func (r *ImportRule) Apply(text string) (string, Result) {
	if strings.Contains(text, r.Import) || containsAny(text, r.Present) {
		return text, result(r, AlreadyApplied, 0)
	}
	if len(r.UsesAny) > 0 && !containsAny(text, r.UsesAny) {
		return text, result(r, NotFound, 0)
	}

	at := LastImportEnd(text)
	if at < 0 {
		return r.Import + "\n" + text, result(r, Applied, 1)
	}
	return text[:at] + "\n" + r.Import + text[at:], result(r, Applied, 1)
}

// LastImportEnd returns the offset just past the last import statement,
// before its line break, or -1 when there is none. Multi-line
// `import { a, b } from 'x'` statements end at their source string.
func LastImportEnd(text string) int {
	end := -1
	inImport := false
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		body := strings.TrimRight(line, "\r\n")
		if !inImport && importStart.MatchString(body) {
			inImport = true
		}
		if inImport && importEnd.MatchString(body) {
			inImport = false
			end = offset + len(body)
		}
		offset += len(line)
	}
	return end
}

func containsAny(text string, subs []string) bool {
	for _, s := range subs {
		if s != "" && strings.Contains(text, s) {
			return true
		}
	}
	return false
}
