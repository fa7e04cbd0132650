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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/srcpatch/pkg/plan"
	"github.com/walteh/srcpatch/pkg/text"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		files       map[string]string
		wantErr     error
		errContains string
		check       func(t *testing.T, dir string, p *plan.Plan)
	}{
		{
			name:     "yaml_plan",
			filename: "homepage.yaml",
			config: `
target: src/HomePage.jsx
message: done
edits:
  - name: imports
    kind: insert
    anchor: "import A;"
    replacement: "import A;\nimport B;"
  - name: body
    kind: block
    open: "  return (\n    <PageWrapper>"
    close: "\n  );"
    mode: balanced
    replacement_file: body.jsx
`,
			files: map[string]string{"body.jsx": "  return (\n    <PageWrapper>\n    </PageWrapper>\n  );\n"},
			check: func(t *testing.T, dir string, p *plan.Plan) {
				assert.Equal(t, "homepage", p.Name, "name should default to the file name")
				assert.Equal(t, filepath.Join(dir, "src/HomePage.jsx"), p.Target)
				assert.Equal(t, "done", p.ConfirmationMessage())
				require.Len(t, p.Rules, 2)

				ins, ok := p.Rules[0].(*text.InsertRule)
				require.True(t, ok)
				assert.Equal(t, "import A;\nimport B;", ins.Replacement)

				blk, ok := p.Rules[1].(*text.BlockRule)
				require.True(t, ok)
				assert.Equal(t, text.MatchBalanced, blk.Mode)
				assert.Equal(t, "  return (\n    <PageWrapper>\n    </PageWrapper>\n  );", blk.Replacement, "trailing newline of replacement_file is dropped")
			},
		},
		{
			name:     "json_tree_plan",
			filename: "layout.json",
			config: `{
  "name": "layout",
  "target": "/abs/src",
  "include": ["**/*.jsx"],
  "exclude": ["**/vendor/**"],
  "lenient": true,
  "edits": [
    {"name": "hooks", "kind": "rewrite", "pattern": "from '\\.\\./hooks/([^']+)'", "replacement": "from '../shared/hooks/${1}'"}
  ]
}`,
			check: func(t *testing.T, dir string, p *plan.Plan) {
				assert.Equal(t, "layout", p.Name)
				assert.Equal(t, "/abs/src", p.Target, "absolute targets are kept")
				assert.True(t, p.IsTree())
				assert.True(t, p.Lenient)
				assert.Equal(t, []string{"**/vendor/**"}, p.Exclude)

				out, res := p.Rules[0].Apply("import x from '../hooks/useX';")
				assert.Equal(t, text.Applied, res.Outcome)
				assert.Equal(t, "import x from '../shared/hooks/useX';", out)
			},
		},
		{
			name:     "hcl_plan",
			filename: "plan.hcl",
			config: `
name   = "reviews"
target = "ProductDetail.jsx"

edit "move-reviews" {
  kind   = "move"
  start  = "{/* Reviews */}"
  end    = "</Tabs>"
  after  = "</Grid>"
  prefix = "${nl}<Tabs>${nl}"
  suffix = "</Tabs>${nl}"
}

edit "imports" {
  kind        = "insert"
  anchor      = "import A;"
  replacement = "import A;\nimport B;"
}
`,
			check: func(t *testing.T, dir string, p *plan.Plan) {
				assert.Equal(t, "reviews", p.Name)
				require.Len(t, p.Rules, 2)

				mv, ok := p.Rules[0].(*text.MoveRule)
				require.True(t, ok)
				assert.Equal(t, "move-reviews", mv.Name())
				assert.Equal(t, "\n<Tabs>\n", mv.Prefix)
				assert.Equal(t, "</Tabs>\n", mv.Suffix)

				ins, ok := p.Rules[1].(*text.InsertRule)
				require.True(t, ok)
				assert.Equal(t, "import A;\nimport B;", ins.Replacement)
			},
		},
		{
			name:     "dotfile_yaml",
			filename: ".srcpatch",
			config: `
target: a.js
edits:
  - name: x
    kind: insert
    anchor: a
    replacement: ab
`,
			check: func(t *testing.T, dir string, p *plan.Plan) {
				assert.Equal(t, filepath.Join(dir, "a.js"), p.Target)
				require.Len(t, p.Rules, 1)
			},
		},
		{
			name:     "dotfile_hcl",
			filename: ".srcpatch",
			config: `
target = "a.js"
edit "x" {
  kind        = "insert"
  anchor      = "a"
  replacement = "ab"
}
`,
			check: func(t *testing.T, dir string, p *plan.Plan) {
				require.Len(t, p.Rules, 1)
				assert.Equal(t, "x", p.Rules[0].Name())
			},
		},
		{
			name:     "yaml_variants",
			filename: "logger.yaml",
			config: `
target: src
include: ["**/*.js"]
lenient: true
edits:
  - name: logger-import
    kind: import
    import: "import logger from './logger';"
    uses_any: ["console.log("]
    present: ["import logger"]
variants:
  - match: ["shared/**"]
    edits:
      - name: logger-import
        kind: import
        import: "import logger from '../logger';"
`,
			check: func(t *testing.T, dir string, p *plan.Plan) {
				imp, ok := p.Rules[0].(*text.ImportRule)
				require.True(t, ok)
				assert.Equal(t, []string{"console.log("}, imp.UsesAny)
				assert.Equal(t, []string{"import logger"}, imp.Present)

				require.Len(t, p.Variants, 1)
				assert.Equal(t, []string{"shared/**"}, p.Variants[0].Match)

				rules, err := p.RulesFor("shared/x.js")
				require.NoError(t, err)
				assert.Equal(t, "import logger from '../logger';", rules[0].(*text.ImportRule).Import)
			},
		},
		{
			name:     "hcl_variants",
			filename: "logger.hcl",
			config: `
target  = "src"
include = ["**/*.js"]

edit "logger-import" {
  kind     = "import"
  import   = "import logger from './logger';"
  uses_any = ["console.log("]
}

variant {
  match = ["shared/**"]

  edit "logger-import" {
    kind   = "import"
    import = "import logger from '../logger';"
  }
}
`,
			check: func(t *testing.T, dir string, p *plan.Plan) {
				require.Len(t, p.Variants, 1)
				assert.Equal(t, "logger-import", p.Variants[0].Rules[0].Name())
			},
		},
		{
			name:     "bad_variant",
			filename: "bad.yaml",
			config: `
target: src
include: ["**/*.js"]
edits:
  - name: x
    kind: import
    import: "import x from 'x';"
variants:
  - match: ["a/**"]
    edits:
      - name: y
        kind: import
`,
			wantErr:     text.ErrInvalidRule,
			errContains: "variant 0",
		},
		{
			name:     "unknown_yaml_field",
			filename: "bad.yaml",
			config: `
target: a.js
targte: b.js
edits: []
`,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			filename:    "bad.json",
			config:      `{"target": "a.js", "edits": [], "extra": 1}`,
			errContains: "parsing JSON",
		},
		{
			name:     "unknown_kind",
			filename: "bad.yaml",
			config: `
target: a.js
edits:
  - name: x
    kind: splice
`,
			wantErr:     text.ErrInvalidRule,
			errContains: `unknown kind "splice"`,
		},
		{
			name:     "invalid_rule",
			filename: "bad.yaml",
			config: `
target: a.js
edits:
  - name: x
    kind: block
    open: "a"
`,
			wantErr:     text.ErrInvalidRule,
			errContains: "close marker is required",
		},
		{
			name:     "no_edits",
			filename: "bad.yaml",
			config:   "target: a.js\nedits: []\n",
			wantErr:  text.ErrInvalidRule,
		},
		{
			name:     "both_replacements",
			filename: "bad.yaml",
			config: `
target: a.js
edits:
  - name: x
    kind: insert
    anchor: a
    replacement: b
    replacement_file: b.txt
`,
			errContains: "mutually exclusive",
		},
		{
			name:     "missing_replacement_file",
			filename: "bad.yaml",
			config: `
target: a.js
edits:
  - name: x
    kind: insert
    anchor: a
    replacement_file: nope.txt
`,
			wantErr:     os.ErrNotExist,
			errContains: "reading replacement_file",
		},
		{
			name:        "unsupported_extension",
			filename:    "plan.toml",
			config:      "target = 'a'",
			errContains: "no parser found",
		},
		{
			name:        "bad_hcl",
			filename:    "plan.hcl",
			config:      "edit {",
			errContains: "parsing HCL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0o644))
			for name, content := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
			}

			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			p, err := Load(ctx, path)

			if tt.wantErr != nil || tt.errContains != "" {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, p)
			tt.check(t, dir, p)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGetParser(t *testing.T) {
	tests := []struct {
		filename string
		want     Parser
	}{
		{"plan.yaml", &YAMLParser{}},
		{"plan.YML", &YAMLParser{}},
		{"plan.json", &JSONParser{}},
		{"plan.hcl", &HCLParser{}},
		{".srcpatch", &DotfileParser{}},
		{"plan.txt", nil},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, GetParser(tt.filename))
		})
	}
}

func TestRegister(t *testing.T) {
	original := parsers
	defer func() { parsers = original }()

	parsers = nil
	Register(&HCLParser{})
	assert.Len(t, parsers, 1)
	assert.Nil(t, GetParser("plan.yaml"))
}
