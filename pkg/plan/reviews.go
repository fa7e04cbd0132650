package plan

import (
	"github.com/walteh/srcpatch/pkg/text"
)

// ProductReviewsName is the built-in plan that moves the reviews tab out of
// the details tabs and below the product grid
const ProductReviewsName = "product-reviews"

func init() {
	register(ProductReviewsName, ProductReviews)
}

// ProductReviews returns the product detail reviews move
func ProductReviews() *Plan {
	return &Plan{
		Name:    ProductReviewsName,
		Target:  "src/features/products/ProductDetail.jsx",
		Message: "Successfully moved Reviews.",
		Rules: []text.Rule{
			&text.MoveRule{
				RuleName: "reviews-tab",
				Start:    "          {/* Reviews Section */}",
				End:      "        </DetailsTabs>",
				After:    "      </ModernProductGrid>",
				Dedent:   "        ",
				Indent:   "      ",
				Prefix:   "\n      {/* Product Reviews Tabs */}\n      <DetailsTabs>\n",
				Suffix:   "      </DetailsTabs>\n",
			},
		},
	}
}
