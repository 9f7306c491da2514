package translate_test

import (
	"fmt"

	"github.com/matzehuels/animaut/pkg/layout"
	"github.com/matzehuels/animaut/pkg/scene"
	"github.com/matzehuels/animaut/pkg/translate"
)

func ExampleParseSpline() {
	sp, err := translate.ParseSpline("e,4,0 0,0 1,0 2,0 3,0", 2)
	if err != nil {
		panic(err)
	}
	fmt.Println("anchors:", sp.Anchors)
	fmt.Println("handles:", sp.Handles)
	fmt.Println("end:", *sp.End)
	// Output:
	// anchors: [{0 0} {6 0}]
	// handles: [{2 0} {4 0}]
	// end: {8 0}
}

func ExampleTranslator_Translate() {
	g := &layout.Graph{
		Box: layout.Box{UpperRight: scene.Pt(10, 10)},
		Nodes: []layout.Node{
			{ID: "q0", Pos: scene.Pt(1, 1)},
			{ID: "q1", Pos: scene.Pt(9, 9)},
		},
		Edges: []layout.Edge{
			{From: "q0", To: "q1", Spline: "1,1 3,3 6,6 9,9"},
		},
	}

	tr, err := translate.New(translate.DefaultOptions())
	if err != nil {
		panic(err)
	}
	scn, err := tr.Translate(g)
	if err != nil {
		panic(err)
	}
	for _, n := range scn.Nodes() {
		c := scene.Find[*scene.Circle](n)[0]
		fmt.Printf("%s at (%.1f, %.1f)\n", n.ID, c.Center.X, c.Center.Y)
	}
	fmt.Println("edges:", len(scn.Edges()))
	// Output:
	// q0 at (-3.2, -3.2)
	// q1 at (3.2, 3.2)
	// edges: 1
}
