package text_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/srcpatch/pkg/text"
)

func ExampleReplacer_ReplaceText() {
	replacer := text.NewReplacer(true)

	rules := []text.Rule{
		&text.InsertRule{
			RuleName:    "imports",
			Anchor:      "import Stories from './Stories';",
			Replacement: "import Stories from './Stories';\nimport Hero from './Hero';",
		},
		&text.BlockRule{
			RuleName:    "return",
			Open:        "  return (\n    <PageWrapper>",
			Close:       "\n  );",
			Replacement: "  return (\n    <PageWrapper>\n      <Hero />\n    </PageWrapper>\n  );",
			Mode:        text.MatchBalanced,
		},
	}

	content := strings.NewReader("import Stories from './Stories';\n\nconst Home = () => {\n  return (\n    <PageWrapper>\n      <Stories />\n    </PageWrapper>\n  );\n};\n")

	result, err := replacer.ReplaceText(context.Background(), content, rules)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Print(string(result.ModifiedContent))
	for _, step := range result.Steps {
		fmt.Printf("%s: %s\n", step.Rule, step.Outcome)
	}

	// Output:
	// import Stories from './Stories';
	// import Hero from './Hero';
	//
	// const Home = () => {
	//   return (
	//     <PageWrapper>
	//       <Hero />
	//     </PageWrapper>
	//   );
	// };
	// imports: applied
	// return: applied
}

func ExampleReplaceFirst() {
	out, n := text.ReplaceFirst("A\nX\nA\n", "A", "A\nB")
	fmt.Printf("%q %d\n", out, n)

	// Output:
	// "A\nB\nX\nA\n" 1
}
