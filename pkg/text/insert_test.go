package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceFirst(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		anchor      string
		replacement string
		want        string
		wantCount   int
	}{
		{
			name:        "first_occurrence_only",
			text:        "A\nX\nA\n",
			anchor:      "A",
			replacement: "A\nB",
			want:        "A\nB\nX\nA\n",
			wantCount:   1,
		},
		{
			name:        "anchor_missing",
			text:        "X\nY\n",
			anchor:      "A",
			replacement: "A\nB",
			want:        "X\nY\n",
			wantCount:   0,
		},
		{
			name:        "empty_anchor",
			text:        "X\n",
			anchor:      "",
			replacement: "B",
			want:        "X\n",
			wantCount:   0,
		},
		{
			name:        "non_ascii",
			text:        "import Ä from 'ä';\nrest",
			anchor:      "import Ä from 'ä';",
			replacement: "import Ä from 'ä';\nimport Ö from 'ö';",
			want:        "import Ä from 'ä';\nimport Ö from 'ö';\nrest",
			wantCount:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := ReplaceFirst(tt.text, tt.anchor, tt.replacement)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, n)
		})
	}
}

func TestReplaceFirstIsNotIdempotent(t *testing.T) {
	anchor := "import a from './a';"
	replacement := anchor + "\nimport b from './b';"

	once, n := ReplaceFirst(anchor+"\nbody\n", anchor, replacement)
	require.Equal(t, 1, n)
	twice, n := ReplaceFirst(once, anchor, replacement)
	require.Equal(t, 1, n)

	assert.Equal(t, 2, strings.Count(twice, "import b from './b';"), "raw replacement inserts the block again")
}

func TestInsertRule(t *testing.T) {
	rule := &InsertRule{
		RuleName:    "imports",
		Anchor:      "import a from './a';",
		Replacement: "import a from './a';\nimport b from './b';",
	}
	require.NoError(t, rule.Validate())

	input := "import a from './a';\n\nexport default A;\n"

	first, res := rule.Apply(input)
	assert.Equal(t, Applied, res.Outcome)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "imports", res.Rule)
	assert.Equal(t, "import a from './a';\nimport b from './b';\n\nexport default A;\n", first)

	second, res := rule.Apply(first)
	assert.Equal(t, AlreadyApplied, res.Outcome)
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, first, second, "guarded rule must not insert twice")

	missing, res := rule.Apply("export default A;\n")
	assert.Equal(t, NotFound, res.Outcome)
	assert.Equal(t, "export default A;\n", missing)
}

func TestInsertRule_Validate(t *testing.T) {
	tests := []struct {
		name      string
		rule      InsertRule
		wantError string
	}{
		{name: "valid", rule: InsertRule{Anchor: "a", Replacement: "a\nb"}},
		{name: "missing_anchor", rule: InsertRule{Replacement: "b"}, wantError: "anchor is required"},
		{name: "missing_replacement", rule: InsertRule{Anchor: "a"}, wantError: "replacement is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				assert.ErrorIs(t, err, ErrInvalidRule)
				return
			}
			require.NoError(t, err)
		})
	}
}
