package plan

import (
	_ "embed"
	"strings"

	"github.com/walteh/srcpatch/pkg/text"
)

// HomePageName is the built-in plan that moves the home page onto the
// section components.
const HomePageName = "homepage"

// HomePageTarget is the default file the homepage plan edits
const HomePageTarget = "src/features/products/HomePage.jsx"

const homePageAnchor = "import SaiisaiStories from '../home/SaiisaiStories';"

var (
	//go:embed assets/homepage_imports.jsx
	homePageImports string

	//go:embed assets/homepage_return.jsx
	homePageReturn string
)

func init() {
	register(HomePageName, HomePage)
}

// HomePage returns the homepage plan. The target snapshot is known to run
// once; a re-run is reported as already applied.
//
// The return block is matched by balancing parentheses so a nested "\n  );"
// inside the JSX does not end it early. If the parentheses in the block never
// balance the plain first-match rule applies instead.
func HomePage() *Plan {
	return &Plan{
		Name:    HomePageName,
		Target:  HomePageTarget,
		Message: "HomePage.jsx updated successfully",
		Rules: []text.Rule{
			&text.InsertRule{
				RuleName:    "section-imports",
				Anchor:      homePageAnchor,
				Replacement: strings.TrimSuffix(homePageImports, "\n"),
			},
			&text.BlockRule{
				RuleName:    "return-block",
				Open:        "  return (\n    <PageWrapper>",
				Close:       "\n  );",
				Replacement: strings.TrimSuffix(homePageReturn, "\n"),
				Mode:        text.MatchBalanced,
				Balance:     text.DefaultBalance,
			},
		},
	}
}
