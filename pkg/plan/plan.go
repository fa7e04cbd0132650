// Package plan describes a named, ordered set of edits and the built-in plans.
package plan

import (
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/srcpatch/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrUnknownPlan is returned by Builtin for a name that is not registered
var ErrUnknownPlan = errors.Base("unknown plan")

// Plan is an ordered rule set bound to a target.
// For file plans Target is a file. For tree plans it is a root directory
// and Include selects the files to edit.
type Plan struct {
	Name    string
	Target  string
	Include []string
	Exclude []string

	// Lenient makes a NotFound outcome a warning instead of an error
	Lenient bool

	// Message is printed after a successful write
	Message string

	Rules []text.Rule

	// Variants replace Rules for tree files they match; the first match wins
	Variants []Variant
}

// Variant is an alternative rule list for files matching Match, relative to
// the tree root
type Variant struct {
	Match []string
	Rules []text.Rule
}

// RulesFor returns the rules to apply to rel, a slash separated path
// relative to the plan target
func (p *Plan) RulesFor(rel string) ([]text.Rule, error) {
	for _, v := range p.Variants {
		for _, pattern := range v.Match {
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				return nil, errors.Errorf("matching %q: %w", pattern, err)
			}
			if ok {
				return v.Rules, nil
			}
		}
	}
	return p.Rules, nil
}

// ForFile returns a copy of the plan targeting path with the rules for rel
func (p *Plan) ForFile(path, rel string) (*Plan, error) {
	rules, err := p.RulesFor(rel)
	if err != nil {
		return nil, err
	}
	cp := *p
	cp.Target = path
	cp.Rules = rules
	cp.Variants = nil
	return &cp, nil
}

// IsTree reports whether the plan walks a directory
func (p *Plan) IsTree() bool {
	return len(p.Include) > 0
}

// ConfirmationMessage returns Message, or "<file> updated successfully"
func (p *Plan) ConfirmationMessage() string {
	if p.Message != "" {
		return p.Message
	}
	return filepath.Base(p.Target) + " updated successfully"
}

// Validate checks the plan and every rule in it
func (p *Plan) Validate() error {
	if p.Name == "" {
		return errors.Errorf("plan name is required: %w", text.ErrInvalidRule)
	}
	if p.Target == "" {
		return errors.Errorf("plan %s: target is required: %w", p.Name, text.ErrInvalidRule)
	}
	if len(p.Rules) == 0 {
		return errors.Errorf("plan %s: at least one edit is required: %w", p.Name, text.ErrInvalidRule)
	}
	if err := text.NewReplacer(false).ValidateRules(p.Rules); err != nil {
		return errors.Errorf("plan %s: %w", p.Name, err)
	}
	for i, v := range p.Variants {
		if len(v.Match) == 0 || len(v.Rules) == 0 {
			return errors.Errorf("plan %s: variant %d needs match globs and edits: %w", p.Name, i, text.ErrInvalidRule)
		}
		for _, pattern := range v.Match {
			if !doublestar.ValidatePattern(pattern) {
				return errors.Errorf("plan %s: variant %d: bad pattern %q: %w", p.Name, i, pattern, text.ErrInvalidRule)
			}
		}
		if err := text.NewReplacer(false).ValidateRules(v.Rules); err != nil {
			return errors.Errorf("plan %s: variant %d: %w", p.Name, i, err)
		}
	}
	return nil
}

var builtins = map[string]func() *Plan{}

func register(name string, fn func() *Plan) {
	builtins[name] = fn
}

// Builtin returns a fresh copy of the named built-in plan
func Builtin(name string) (*Plan, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, errors.Errorf("%q: %w", name, ErrUnknownPlan)
	}
	return fn(), nil
}

// Names lists the built-in plans in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
