package text

import (
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNotFound is returned when a rule's anchor or markers are missing from the text
	ErrNotFound = errors.Base("pattern not found")

	// ErrInvalidRule is returned when a rule is missing required fields
	ErrInvalidRule = errors.Base("invalid rule")
)

// Outcome is the tagged result of applying a single rule
type Outcome int

const (
	// NotFound means the rule did not match and the text is unchanged
	NotFound Outcome = iota
	// Applied means the rule matched and the text was rewritten
	Applied
	// AlreadyApplied means the text already holds the rule's replacement
	AlreadyApplied
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case AlreadyApplied:
		return "already applied"
	default:
		return "not found"
	}
}

// Result describes what a rule did to the text
type Result struct {
	// Rule is the name of the rule that produced this result
	Rule string

	// Outcome is the tagged match result
	Outcome Outcome

	// Count is the number of substitutions made
	Count int
}

// Rule is a single structural edit over a document's text
type Rule interface {
	// Name identifies the rule in logs and errors
	Name() string

	// Apply returns the rewritten text and the result of the edit.
	// When the outcome is not Applied the returned text equals the input.
	Apply(text string) (string, Result)

	// Validate checks that all required fields are set
	Validate() error
}

func result(rule Rule, outcome Outcome, count int) Result {
	return Result{Rule: rule.Name(), Outcome: outcome, Count: count}
}
