package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveRule_Apply(t *testing.T) {
	rule := &MoveRule{
		RuleName: "reviews",
		Start:    "          {/* Reviews Section */}",
		End:      "        </DetailsTabs>",
		After:    "      </ModernProductGrid>",
		Dedent:   "        ",
		Indent:   "      ",
		Prefix:   "\n      <DetailsTabs>\n",
		Suffix:   "      </DetailsTabs>\n",
	}
	require.NoError(t, rule.Validate())

	input := "a\n" +
		"      </ModernProductGrid>\n" +
		"b\n" +
		"          {/* Reviews Section */}\n" +
		"          <Reviews />\n" +
		"        </DetailsTabs>\n" +
		"c\n"

	want := "a\n" +
		"      </ModernProductGrid>\n" +
		"      <DetailsTabs>\n" +
		"        {/* Reviews Section */}\n" +
		"        <Reviews />\n" +
		"      </DetailsTabs>\n" +
		"\n" +
		"b\n" +
		"        </DetailsTabs>\n" +
		"c\n"

	got, res := rule.Apply(input)
	assert.Equal(t, Applied, res.Outcome)
	assert.Equal(t, "reviews", res.Rule)
	assert.Equal(t, want, got)

	again, res := rule.Apply(got)
	assert.Equal(t, AlreadyApplied, res.Outcome)
	assert.Equal(t, got, again)
}

func TestMoveRule_NotFound(t *testing.T) {
	base := MoveRule{Start: "<start>", End: "<end>", After: "<after>"}

	tests := []struct {
		name string
		text string
	}{
		{name: "missing_start", text: "<end><after>"},
		{name: "end_before_start", text: "<end><start><after>"},
		{name: "missing_after", text: "<start>x<end>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := base
			got, res := rule.Apply(tt.text)
			assert.Equal(t, NotFound, res.Outcome)
			assert.Equal(t, tt.text, got)
		})
	}
}

func TestMoveRule_Validate(t *testing.T) {
	err := (&MoveRule{Start: "a", End: "b"}).Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRule)
	assert.Contains(t, err.Error(), "after marker is required")
}

func TestReindent(t *testing.T) {
	assert.Equal(t, "  a\n  b\n", reindent("    a\n    b\n", "    ", "  "))
	assert.Equal(t, ">a\n>b", reindent("a\nb", "", ">"))
	assert.Equal(t, "same\n", reindent("same\n", "", ""))
}
