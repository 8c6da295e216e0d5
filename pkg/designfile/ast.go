package designfile

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a parsed design file: any number of project and block sections.
type File struct {
	Pos     lexer.Position
	Entries []*Entry `@@*`
}

// Entry is one top-level section.
type Entry struct {
	Project *ProjectDecl `  @@`
	Block   *BlockDecl   `| @@`
}

// ProjectDecl holds board-level constraints.
// Example: project "Weather Station" { max_length 100 mm }
type ProjectDecl struct {
	Pos    lexer.Position
	Name   string      `"project" @String "{"`
	Fields []*Quantity `@@* "}"`
}

// BlockDecl describes one power supply block.
type BlockDecl struct {
	Pos    lexer.Position
	Name   string        `"block" @String "{"`
	Fields []*BlockField `@@* "}"`
}

// BlockField is a single line inside a block.
type BlockField struct {
	Pos      lexer.Position
	Protect  []string  `  "protect" @String ( "," @String )*`
	Plan     []string  `| "plan" @Ident ( "," @Ident )*`
	Quantity *Quantity `| @@`
}

// Quantity is a keyed number with its unit, e.g. input 12.0 V.
type Quantity struct {
	Pos   lexer.Position
	Key   string  `@Ident`
	Value float64 `@Number`
	Unit  string  `@Ident`
}
