package topcom

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// InputExpr is a whole triangulation file:
//
//	points := [[0,0],[1,0],[0,1],[1,1]];
//	T[0] := {{0,1,3},{0,3,2}};
//	flip[0] := (0, {{0,1,3},{0,3,2}});
type InputExpr struct {
	Entries []*Entry `@@*`
}

type Entry struct {
	Points *PointsDecl `  @@`
	Triang *TriangDecl `| @@`
	Flip   *FlipDecl   `| @@`
}

type PointsDecl struct {
	Pos    lexer.Position
	Points []*Point `"points" ":=" "[" (@@ ("," @@)*)? "]" ";"?`
}

type Point struct {
	Pos    lexer.Position
	Coords []*Coord `"[" @@ ("," @@)* "]"`
}

type Coord struct {
	Neg bool  `@"-"?`
	Val int64 `@Int`
}

func (c *Coord) Value() int64 {
	if c.Neg {
		return -c.Val
	}
	return c.Val
}

type TriangDecl struct {
	Pos   lexer.Position
	Index int         `"T" "[" @Int "]" ":="`
	Cells []*CellExpr `"{" (@@ ("," @@)*)? "}" ";"?`
}

type FlipDecl struct {
	Pos    lexer.Position
	Index  int         `"flip" "[" @Int "]" ":="`
	Source int         `"(" @Int ","`
	Pair   []*CellExpr `"{" @@ "," @@ "}" ")" ";"?`
}

// CellExpr is {a,b,c} for a triangle, {a,b,c,d,...} for a face, or [p,r,q,s] for a node cell.
type CellExpr struct {
	Pos  lexer.Position
	Node []int32 `  "[" @Int ("," @Int)* "]"`
	Pts  []int32 `| "{" @Int ("," @Int)* "}"`
}

var inputLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Assign", Pattern: `:=`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Punct", Pattern: `[-\[\]{}(),;]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parseInputExpr = participle.MustBuild[InputExpr](
	participle.Lexer(inputLexer),
	participle.Elide("Comment", "Whitespace"),
)
