package text

import (
	"context"
	"io"

	"gitlab.com/tozd/go/errors"
)

// ReplacementResult contains the results of applying a rule set
type ReplacementResult struct {
	// WasModified indicates if any rule changed the content
	WasModified bool

	// ReplacementCount is the number of substitutions made across all rules
	ReplacementCount int

	// Steps holds one result per rule, in application order
	Steps []Result

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// Replacer applies an ordered rule set to content
type Replacer struct {
	// Strict turns a NotFound outcome into an ErrNotFound error
	Strict bool
}

// NewReplacer creates a new Replacer
func NewReplacer(strict bool) *Replacer {
	return &Replacer{Strict: strict}
}

// ReplaceText applies rules in order. On a strict miss the partial result,
// holding the steps applied so far, is returned alongside the error.
func (r *Replacer) ReplaceText(ctx context.Context, content io.Reader, rules []Rule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	if err := r.ValidateRules(rules); err != nil {
		return nil, err
	}

	res := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	current := string(originalContent)
	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			return res, errors.Errorf("applying %s: %w", rule.Name(), err)
		}

		next, step := rule.Apply(current)
		res.Steps = append(res.Steps, step)

		if step.Outcome == NotFound && r.Strict {
			return res, errors.Errorf("applying %s: %w", rule.Name(), ErrNotFound)
		}
		if step.Outcome == Applied {
			res.WasModified = true
			res.ReplacementCount += step.Count
		}
		current = next
	}

	res.ModifiedContent = []byte(current)
	return res, nil
}

// ValidateRules checks that all rules are valid
func (r *Replacer) ValidateRules(rules []Rule) error {
	for i, rule := range rules {
		if rule == nil {
			return errors.Errorf("rule %d: nil rule: %w", i, ErrInvalidRule)
		}
		if err := rule.Validate(); err != nil {
			return errors.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}
