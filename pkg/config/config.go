// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads patch plans from YAML, JSON or HCL files.
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/srcpatch/pkg/plan"
	"github.com/walteh/srcpatch/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// Edit kinds
const (
	KindInsert  = "insert"
	KindBlock   = "block"
	KindMove    = "move"
	KindRewrite = "rewrite"
	KindImport  = "import"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse decodes the plan file from bytes
	Parse(ctx context.Context, data []byte, filename string) (*File, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var parsers []Parser

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 File is the on-disk form of a plan
type File struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty" hcl:"name,optional"`
	Target  string   `json:"target" yaml:"target" hcl:"target,attr"`
	Include []string `json:"include,omitempty" yaml:"include,omitempty" hcl:"include,optional"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	Lenient bool     `json:"lenient,omitempty" yaml:"lenient,omitempty" hcl:"lenient,optional"`
	Message string   `json:"message,omitempty" yaml:"message,omitempty" hcl:"message,optional"`
	Edits   []Edit   `json:"edits" yaml:"edits" hcl:"edit,block"`

	Variants []Variant `json:"variants,omitempty" yaml:"variants,omitempty" hcl:"variant,block"`
}

// Variant swaps in its own edits for tree files matching one of Match
type Variant struct {
	Match []string `json:"match" yaml:"match" hcl:"match,attr"`
	Edits []Edit   `json:"edits" yaml:"edits" hcl:"edit,block"`
}

// 🔧 Edit is one rule. Which fields apply depends on Kind.
type Edit struct {
	Name string `json:"name" yaml:"name" hcl:"name,label"`
	Kind string `json:"kind" yaml:"kind" hcl:"kind,attr"`

	// insert
	Anchor string `json:"anchor,omitempty" yaml:"anchor,omitempty" hcl:"anchor,optional"`

	// insert, block, rewrite
	Replacement     string `json:"replacement,omitempty" yaml:"replacement,omitempty" hcl:"replacement,optional"`
	ReplacementFile string `json:"replacement_file,omitempty" yaml:"replacement_file,omitempty" hcl:"replacement_file,optional"`

	// block
	Open    string `json:"open,omitempty" yaml:"open,omitempty" hcl:"open,optional"`
	Close   string `json:"close,omitempty" yaml:"close,omitempty" hcl:"close,optional"`
	Mode    string `json:"mode,omitempty" yaml:"mode,omitempty" hcl:"mode,optional"`
	Balance string `json:"balance,omitempty" yaml:"balance,omitempty" hcl:"balance,optional"`

	// move
	Start  string `json:"start,omitempty" yaml:"start,omitempty" hcl:"start,optional"`
	End    string `json:"end,omitempty" yaml:"end,omitempty" hcl:"end,optional"`
	After  string `json:"after,omitempty" yaml:"after,omitempty" hcl:"after,optional"`
	Dedent string `json:"dedent,omitempty" yaml:"dedent,omitempty" hcl:"dedent,optional"`
	Indent string `json:"indent,omitempty" yaml:"indent,omitempty" hcl:"indent,optional"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty" hcl:"prefix,optional"`
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty" hcl:"suffix,optional"`

	// rewrite
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty" hcl:"pattern,optional"`

	// import
	Import  string   `json:"import,omitempty" yaml:"import,omitempty" hcl:"import,optional"`
	UsesAny []string `json:"uses_any,omitempty" yaml:"uses_any,omitempty" hcl:"uses_any,optional"`
	Present []string `json:"present,omitempty" yaml:"present,omitempty" hcl:"present,optional"`
}

// 🎯 Load reads a plan file and builds the plan it describes.
// Relative paths inside the file resolve against the file's directory.
func Load(ctx context.Context, path string) (*plan.Plan, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading plan")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading plan file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	f, err := p.Parse(ctx, data, path)
	if err != nil {
		return nil, errors.Errorf("parsing plan: %w", err)
	}

	if f.Name == "" {
		base := filepath.Base(path)
		f.Name = strings.TrimSuffix(base, filepath.Ext(base))
		if f.Name == "" {
			f.Name = strings.TrimPrefix(base, ".")
		}
	}

	pl, err := f.Build(filepath.Dir(path))
	if err != nil {
		return nil, errors.Errorf("building plan %s: %w", f.Name, err)
	}

	logger.Debug().Str("plan", pl.Name).Int("edits", len(pl.Rules)).Msg("plan loaded")
	return pl, nil
}

// 🏗️ Build turns the file into a validated plan
func (f *File) Build(baseDir string) (*plan.Plan, error) {
	pl := &plan.Plan{
		Name:    f.Name,
		Target:  resolve(baseDir, f.Target),
		Include: f.Include,
		Exclude: f.Exclude,
		Lenient: f.Lenient,
		Message: f.Message,
	}

	rules, err := buildRules(baseDir, f.Edits)
	if err != nil {
		return nil, err
	}
	pl.Rules = rules

	for i, v := range f.Variants {
		rules, err := buildRules(baseDir, v.Edits)
		if err != nil {
			return nil, errors.Errorf("variant %d: %w", i, err)
		}
		pl.Variants = append(pl.Variants, plan.Variant{Match: v.Match, Rules: rules})
	}

	if err := pl.Validate(); err != nil {
		return nil, err
	}
	return pl, nil
}

func buildRules(baseDir string, edits []Edit) ([]text.Rule, error) {
	rules := make([]text.Rule, 0, len(edits))
	for i, e := range edits {
		rule, err := e.rule(baseDir)
		if err != nil {
			return nil, errors.Errorf("edit %d (%s): %w", i, e.Name, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (e *Edit) rule(baseDir string) (text.Rule, error) {
	replacement := e.Replacement
	if e.ReplacementFile != "" {
		if replacement != "" {
			return nil, errors.Errorf("replacement and replacement_file are mutually exclusive: %w", text.ErrInvalidRule)
		}
		data, err := os.ReadFile(resolve(baseDir, e.ReplacementFile))
		if err != nil {
			return nil, errors.Errorf("reading replacement_file: %w", err)
		}
		replacement = strings.TrimSuffix(string(data), "\n")
	}

	switch e.Kind {
	case KindInsert:
		return &text.InsertRule{RuleName: e.Name, Anchor: e.Anchor, Replacement: replacement}, nil
	case KindBlock:
		return &text.BlockRule{
			RuleName:    e.Name,
			Open:        e.Open,
			Close:       e.Close,
			Replacement: replacement,
			Mode:        text.MatchMode(e.Mode),
			Balance:     e.Balance,
		}, nil
	case KindMove:
		return &text.MoveRule{
			RuleName: e.Name,
			Start:    e.Start,
			End:      e.End,
			After:    e.After,
			Dedent:   e.Dedent,
			Indent:   e.Indent,
			Prefix:   e.Prefix,
			Suffix:   e.Suffix,
		}, nil
	case KindRewrite:
		return text.NewRewriteRule(e.Name, e.Pattern, replacement)
	case KindImport:
		return &text.ImportRule{RuleName: e.Name, Import: e.Import, UsesAny: e.UsesAny, Present: e.Present}, nil
	default:
		return nil, errors.Errorf("unknown kind %q: %w", e.Kind, text.ErrInvalidRule)
	}
}

func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
