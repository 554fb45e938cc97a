package gridtext_test

import (
	"fmt"

	"github.com/gogpu/gridtext"
)

func ExampleGrid_Dimensions() {
	g := gridtext.NewGrid(20, 800, 400)
	cols, rows := g.Dimensions()
	fmt.Println(cols, rows)
	// Output: 80 20
}

func ExampleGrid_DeleteWord() {
	g := gridtext.NewGrid(20, 800, 400)
	g.InsertText("hello world  ")
	g.DeleteWord()
	fmt.Printf("%q\n", g.String())
	// Output: "hello "
}

func ExampleAtlasCell() {
	col, row := gridtext.AtlasCell('A')
	fmt.Println(col, row)
	// Output: 14 1
}

func ExampleGlyph_Vertices() {
	g := gridtext.Glyph{
		Size:   gridtext.V2(1, 1),
		UVSize: gridtext.V2(1, 1),
	}
	for _, v := range g.Vertices() {
		fmt.Println(v.Pos, v.UV)
	}
	// Output:
	// {-1 1} {0 1}
	// {1 1} {1 1}
	// {1 -1} {1 0}
	// {-1 -1} {0 0}
}
