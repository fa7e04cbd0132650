package text

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// RewriteRule replaces every match of Pattern. Replacement may reference
// capture groups with $1 or ${1}.
type RewriteRule struct {
	RuleName    string
	Pattern     string
	Replacement string

	re *regexp.Regexp
}

// NewRewriteRule compiles pattern and returns the rule
func NewRewriteRule(name, pattern, replacement string) (*RewriteRule, error) {
	r := &RewriteRule{RuleName: name, Pattern: pattern, Replacement: replacement}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// MustRewriteRule is like NewRewriteRule but panics on an invalid pattern
func MustRewriteRule(name, pattern, replacement string) *RewriteRule {
	r, err := NewRewriteRule(name, pattern, replacement)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *RewriteRule) Name() string {
	if r.RuleName == "" {
		return r.Pattern
	}
	return r.RuleName
}

// Validate compiles the pattern
func (r *RewriteRule) Validate() error {
	if r.Pattern == "" {
		return errors.Errorf("%s: pattern is required: %w", r.Name(), ErrInvalidRule)
	}
	if r.re != nil {
		return nil
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return errors.Errorf("%s: compiling pattern: %v: %w", r.Name(), err, ErrInvalidRule)
	}
	r.re = re
	return nil
}

func (r *RewriteRule) Apply(text string) (string, Result) {
	if r.re == nil {
		if err := r.Validate(); err != nil {
			return text, result(r, NotFound, 0)
		}
	}
	n := len(r.re.FindAllStringIndex(text, -1))
	if n == 0 {
		return text, result(r, NotFound, 0)
	}
	out := r.re.ReplaceAllString(text, r.Replacement)
	if out == text {
		return text, result(r, AlreadyApplied, 0)
	}
	return out, result(r, Applied, n)
}
