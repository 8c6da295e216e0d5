package designfile

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// DesignLexer tokenises .ots design files.
var DesignLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments run from # to end of line
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},

	// Numbers come before identifiers so "12V" lexes as 12 then V
	{Name: "Number", Pattern: `[-+]?(?:\d+\.\d*|\.\d+|\d+)`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

	{Name: "Punct", Pattern: `[{},]`},
})
