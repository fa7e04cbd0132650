package plan

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/walteh/srcpatch/pkg/text"
)

// FeaturesLayoutName is the built-in tree plan that rewrites relative imports
// after shared code moved under src/shared and pages moved under src/features.
const FeaturesLayoutName = "features-layout"

// sharedDirs moved from src/<dir> to src/shared/<newDir>
var sharedDirs = []struct{ dir, newDir string }{
	{"components", "components"},
	{"hooks", "hooks"},
	{"service", "services"},
	{"utils", "utils"},
	{"styles", "styles"},
	{"layout", "layout"},
}

// pageFeatures maps a page module to its new feature path
var pageFeatures = map[string]string{
	"HomePage":              "products/HomePage",
	"ProductDetail":         "products/ProductDetail",
	"CategoryPage":          "categories/CategoryPage",
	"CartPage":              "cart/CartPage",
	"WishlistPage":          "wishlist/WishlistPage",
	"OrderList":             "orders/OrderList",
	"OrderDetail":           "orders/OrderDetail",
	"CheckoutPage":          "orders/CheckoutPage",
	"OrderConfirmationPage": "orders/OrderConfirmationPage",
	"SearchResult":          "search/SearchResult",
	"profilePage":           "profile/profilePage",
	"AddressPage":           "profile/AddressPage",
	"PaymentMethodPage":     "profile/PaymentMethodPage",
	"NotificationPage":      "profile/NotificationPage",
	"ReviewPage":            "products/ReviewPage",
	"SellerPage":            "products/SellerPage",
	"CouponPage":            "products/CouponPage",
	"Creditbalance":         "profile/Creditbalance",
	"FollowPage":            "profile/FollowPage",
	"PermissionPage":        "profile/PermissionPage",
	"BrowserhistoryPage":    "profile/BrowserhistoryPage",
}

func init() {
	register(FeaturesLayoutName, FeaturesLayout)
}

// FeaturesLayout returns the import rewrite plan rooted at src
func FeaturesLayout() *Plan {
	return &Plan{
		Name:    FeaturesLayoutName,
		Target:  "src",
		Include: []string{"**/*.{js,jsx}"},
		Exclude: []string{"**/node_modules/**"},
		Lenient: true,
		Message: "Import updates complete!",
		Rules:   LayoutRules(),
	}
}

// LayoutRules builds the ordered rewrite rules of the features layout
func LayoutRules() []text.Rule {
	var rules []text.Rule

	for _, d := range sharedDirs {
		for depth := 1; depth <= 3; depth++ {
			up := strings.Repeat("../", depth)
			rules = append(rules, text.MustRewriteRule(
				fmt.Sprintf("%s-%d", d.dir, depth),
				`from ['"]`+regexp.QuoteMeta(up+d.dir+"/")+`([^'"]+)['"]`,
				"from '"+up+"shared/"+d.newDir+"/${1}'",
			))
		}
	}

	pages := make([]string, 0, len(pageFeatures))
	for page := range pageFeatures {
		pages = append(pages, page)
	}
	sort.Strings(pages)
	for _, page := range pages {
		rules = append(rules, text.MustRewriteRule(
			"pages-"+page,
			`from ['"]\.\./pages/`+regexp.QuoteMeta(page)+`['"]`,
			"from '../features/"+pageFeatures[page]+"'",
		))
	}
	rules = append(rules,
		text.MustRewriteRule("pages", `from ['"]\.\./pages/([^'"]+)['"]`, "from '../features/${1}'"),
		text.MustRewriteRule("auth", `from ['"]\.\./auth/([^'"]+)['"]`, "from '../features/auth/${1}'"),
	)

	return rules
}
