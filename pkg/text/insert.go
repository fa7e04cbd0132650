package text

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ReplaceFirst replaces only the first occurrence of anchor with replacement.
// It does not guard against re-application: if replacement contains anchor,
// a second call expands the anchor again.
func ReplaceFirst(text, anchor, replacement string) (string, int) {
	idx := strings.Index(text, anchor)
	if anchor == "" || idx < 0 {
		return text, 0
	}
	return text[:idx] + replacement + text[idx+len(anchor):], 1
}

// InsertRule widens the first occurrence of an anchor line into a block.
// Replacement is expected to re-include the anchor verbatim.
type InsertRule struct {
	RuleName    string
	Anchor      string
	Replacement string
}

func (r *InsertRule) Name() string {
	if r.RuleName == "" {
		return "insert"
	}
	return r.RuleName
}

func (r *InsertRule) Validate() error {
	if r.Anchor == "" {
		return errors.Errorf("%s: anchor is required: %w", r.Name(), ErrInvalidRule)
	}
	if r.Replacement == "" {
		return errors.Errorf("%s: replacement is required: %w", r.Name(), ErrInvalidRule)
	}
	return nil
}

// Apply reports AlreadyApplied when the replacement block is already in the text,
// so a second run does not insert it twice.
func (r *InsertRule) Apply(text string) (string, Result) {
	if r.Replacement != r.Anchor && strings.Contains(text, r.Replacement) {
		return text, result(r, AlreadyApplied, 0)
	}

	out, n := ReplaceFirst(text, r.Anchor, r.Replacement)
	if n == 0 {
		return text, result(r, NotFound, 0)
	}
	return out, result(r, Applied, n)
}
