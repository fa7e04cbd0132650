package text

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// MoveRule cuts the region [Start, End) and re-inserts it right after the
// first occurrence of After in the remaining text. With a Prefix set, text
// already holding After+Prefix is reported as AlreadyApplied.
type MoveRule struct {
	RuleName string
	Start    string
	End      string
	After    string

	// Dedent is stripped from the start of each region line and replaced by Indent
	Dedent string
	Indent string

	// Prefix and Suffix wrap the moved region at its new location
	Prefix string
	Suffix string
}

func (r *MoveRule) Name() string {
	if r.RuleName == "" {
		return "move"
	}
	return r.RuleName
}

func (r *MoveRule) Validate() error {
	markers := []struct{ field, value string }{
		{"start", r.Start},
		{"end", r.End},
		{"after", r.After},
	}
	for _, m := range markers {
		if m.value == "" {
			return errors.Errorf("%s: %s marker is required: %w", r.Name(), m.field, ErrInvalidRule)
		}
	}
	return nil
}

func (r *MoveRule) Apply(text string) (string, Result) {
	if r.Prefix != "" && strings.Contains(text, r.After+r.Prefix) {
		return text, result(r, AlreadyApplied, 0)
	}
	start := strings.Index(text, r.Start)
	if start < 0 {
		return text, result(r, NotFound, 0)
	}
	rel := strings.Index(text[start+len(r.Start):], r.End)
	if rel < 0 {
		return text, result(r, NotFound, 0)
	}
	end := start + len(r.Start) + rel

	region := text[start:end]
	rest := text[:start] + text[end:]

	at := strings.Index(rest, r.After)
	if at < 0 {
		return text, result(r, NotFound, 0)
	}
	at += len(r.After)

	block := r.Prefix + reindent(region, r.Dedent, r.Indent) + r.Suffix
	return rest[:at] + block + rest[at:], result(r, Applied, 1)
}

func reindent(region, dedent, indent string) string {
	if dedent == "" && indent == "" {
		return region
	}
	lines := strings.SplitAfter(region, "\n")
	for i, line := range lines {
		if dedent == "" {
			if line != "" {
				lines[i] = indent + line
			}
			continue
		}
		if strings.HasPrefix(line, dedent) {
			lines[i] = indent + strings.TrimPrefix(line, dedent)
		}
	}
	return strings.Join(lines, "")
}
