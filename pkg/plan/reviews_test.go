package plan

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/srcpatch/pkg/text"
)

const productDetail = `const ProductDetail = () => (
  <div>
        <DetailsTabs>
          <Tab label="Description" />
          {/* Reviews Section */}
          <Tab label="Reviews">
            <Reviews />
          </Tab>
        </DetailsTabs>
      <ModernProductGrid>
        <Card />
      </ModernProductGrid>
  </div>
);
`

const productDetailMoved = `const ProductDetail = () => (
  <div>
        <DetailsTabs>
          <Tab label="Description" />
        </DetailsTabs>
      <ModernProductGrid>
        <Card />
      </ModernProductGrid>
      {/* Product Reviews Tabs */}
      <DetailsTabs>
        {/* Reviews Section */}
        <Tab label="Reviews">
          <Reviews />
        </Tab>
      </DetailsTabs>

  </div>
);
`

func TestProductReviews(t *testing.T) {
	p := ProductReviews()
	require.NoError(t, p.Validate())
	assert.False(t, p.IsTree())
	assert.Equal(t, "Successfully moved Reviews.", p.ConfirmationMessage())

	res, err := text.NewReplacer(true).ReplaceText(context.Background(), strings.NewReader(productDetail), p.Rules)
	require.NoError(t, err)
	assert.True(t, res.WasModified)
	if diff := cmp.Diff(productDetailMoved, string(res.ModifiedContent)); diff != "" {
		t.Errorf("unexpected move result: diff (-want +got):\n%s", diff)
	}

	again, err := text.NewReplacer(true).ReplaceText(context.Background(), strings.NewReader(productDetailMoved), p.Rules)
	require.NoError(t, err)
	assert.False(t, again.WasModified)
	require.Len(t, again.Steps, 1)
	assert.Equal(t, text.AlreadyApplied, again.Steps[0].Outcome)
}
