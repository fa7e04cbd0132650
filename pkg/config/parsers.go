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

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(&YAMLParser{})
	Register(&JSONParser{})
	Register(&HCLParser{})
	Register(&DotfileParser{})
}

func ext(filename string) string {
	return strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func (p *YAMLParser) CanParse(filename string) bool {
	e := ext(filename)
	return e == ".yaml" || e == ".yml"
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte, filename string) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &f, nil
}

// 🔧 JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

func (p *JSONParser) CanParse(filename string) bool {
	return ext(filename) == ".json"
}

func (p *JSONParser) Parse(ctx context.Context, data []byte, filename string) (*File, error) {
	var f File
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&f); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &f, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func (p *HCLParser) CanParse(filename string) bool {
	return ext(filename) == ".hcl"
}

func (p *HCLParser) Parse(ctx context.Context, data []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filepath.Base(filename))
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// nl and tab can be used to spell out multi-line markers
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"nl":  cty.StringVal("\n"),
			"tab": cty.StringVal("\t"),
		},
	}

	var f File
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &f)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}
	return &f, nil
}

// 🔧 DotfileParser handles .srcpatch files, trying YAML first and HCL next
type DotfileParser struct{}

func (p *DotfileParser) CanParse(filename string) bool {
	return ext(filename) == ".srcpatch" || filepath.Base(filename) == ".srcpatch"
}

func (p *DotfileParser) Parse(ctx context.Context, data []byte, filename string) (*File, error) {
	f, yamlErr := (&YAMLParser{}).Parse(ctx, data, filename)
	if yamlErr == nil {
		return f, nil
	}
	f, hclErr := (&HCLParser{}).Parse(ctx, data, filename)
	if hclErr == nil {
		return f, nil
	}
	return nil, errors.Errorf("failed to parse %s as YAML (%v) or HCL: %w", filepath.Base(filename), yamlErr, hclErr)
}
