package iso_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/isocheck/internal/testgraphs"
	"github.com/matzehuels/isocheck/pkg/iso"
)

func ExampleCheck() {
	ctx := context.Background()
	hexagon := testgraphs.Cycle(6)
	triangles := testgraphs.TwoTriangles()

	for _, algo := range []string{"canonical", "Weisfeiler-Lehman", "backtracking"} {
		res, err := iso.Check(ctx, hexagon, triangles, algo)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Printf("%s: matched=%v heuristic=%v\n", res.Algorithm, res.Matched, res.Heuristic)
	}
	// Output:
	// canonical: matched=false heuristic=false
	// color-refinement: matched=true heuristic=true
	// backtracking: matched=false heuristic=false
}

func ExampleCheck_prefilter() {
	res, _ := iso.Check(context.Background(), testgraphs.Path(3), testgraphs.Path(4), "canonical")
	fmt.Println("matched:", res.Matched, "prefiltered:", res.Prefiltered)
	// Output:
	// matched: false prefiltered: true
}

func ExampleCanonicalize() {
	ctx := context.Background()
	a, _ := iso.Canonicalize(ctx, testgraphs.Cycle(5))
	b, _ := iso.Canonicalize(ctx, testgraphs.Cycle(5))
	fmt.Println("equal certificates:", a.Certificate.Equal(b.Certificate))
	fmt.Println("order length:", len(a.Order))
	// Output:
	// equal certificates: true
	// order length: 5
}

func ExampleAlgorithms() {
	for _, info := range iso.Algorithms() {
		fmt.Printf("%-17s exact=%v\n", info.Name, info.Exact)
	}
	// Output:
	// canonical         exact=true
	// color-refinement  exact=false
	// backtracking      exact=true
}
