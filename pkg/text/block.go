package text

import (
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// MatchMode selects how the end of a block is found
type MatchMode string

const (
	// MatchNearest ends the block at the first closing marker after the opening marker
	MatchNearest MatchMode = "nearest"

	// MatchBalanced ends the block at the first closing marker that returns the
	// delimiter depth, counted from the start of the opening marker, to zero.
	// When the delimiters never balance, e.g. a stray "(" in JSX text, it falls
	// back to MatchNearest.
	MatchBalanced MatchMode = "balanced"
)

// DefaultBalance is the delimiter pair tracked by MatchBalanced when none is set
const DefaultBalance = "()"

// BlockRule replaces the first region running from Open through Close,
// both markers included, with Replacement.
type BlockRule struct {
	RuleName    string
	Open        string
	Close       string
	Replacement string
	Mode        MatchMode

	// Balance is a two byte delimiter pair, e.g. "()" or "{}"
	Balance string
}

func (r *BlockRule) Name() string {
	if r.RuleName == "" {
		return "block"
	}
	return r.RuleName
}

func (r *BlockRule) Validate() error {
	if r.Open == "" {
		return errors.Errorf("%s: open marker is required: %w", r.Name(), ErrInvalidRule)
	}
	if r.Close == "" {
		return errors.Errorf("%s: close marker is required: %w", r.Name(), ErrInvalidRule)
	}
	switch r.Mode {
	case "", MatchNearest:
	case MatchBalanced:
		if r.Balance != "" && len(r.Balance) != 2 {
			return errors.Errorf("%s: balance must be a delimiter pair like %q, got %q: %w", r.Name(), DefaultBalance, r.Balance, ErrInvalidRule)
		}
	default:
		return errors.Errorf("%s: unknown match mode %q: %w", r.Name(), r.Mode, ErrInvalidRule)
	}
	return nil
}

// Apply inserts Replacement literally; "$" sequences are not expanded.
func (r *BlockRule) Apply(text string) (string, Result) {
	start, end, ok := r.Locate(text)
	if !ok {
		return text, result(r, NotFound, 0)
	}
	if text[start:end] == r.Replacement {
		return text, result(r, AlreadyApplied, 0)
	}
	return text[:start] + r.Replacement + text[end:], result(r, Applied, 1)
}

// Locate returns the byte span of the first matching region.
func (r *BlockRule) Locate(text string) (start, end int, ok bool) {
	if r.Mode == MatchBalanced {
		if start, end, ok = r.locateBalanced(text); ok {
			return start, end, ok
		}
	}
	return r.locateNearest(text)
}

func (r *BlockRule) pattern() *regexp.Regexp {
	return regexp.MustCompile(`(?s)` + regexp.QuoteMeta(r.Open) + `.*?` + regexp.QuoteMeta(r.Close))
}

func (r *BlockRule) locateNearest(text string) (int, int, bool) {
	loc := r.pattern().FindStringIndex(text)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1], true
}

func (r *BlockRule) locateBalanced(text string) (int, int, bool) {
	pair := r.Balance
	if pair == "" {
		pair = DefaultBalance
	}
	openDelim, closeDelim := pair[0], pair[1]

	depthOf := func(s string) int {
		d := 0
		for i := 0; i < len(s); i++ {
			switch s[i] {
			case openDelim:
				d++
			case closeDelim:
				d--
			}
		}
		return d
	}

	start := strings.Index(text, r.Open)
	if start < 0 {
		return 0, 0, false
	}

	depth := depthOf(r.Open)
	closeDepth := depthOf(r.Close)
	for i := start + len(r.Open); i < len(text); i++ {
		if strings.HasPrefix(text[i:], r.Close) && depth+closeDepth <= 0 {
			return start, i + len(r.Close), true
		}
		switch text[i] {
		case openDelim:
			depth++
		case closeDelim:
			depth--
		}
	}
	return 0, 0, false
}
