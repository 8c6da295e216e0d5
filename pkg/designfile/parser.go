// Package designfile reads .ots design files describing a project and its
// power supply blocks, optionally with an explicit build plan per block.
package designfile

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser represents a design file parser
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a new design file parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(DesignLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("designfile: failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse parses a design file from a reader. name is used in positions.
func (p *Parser) Parse(name string, r io.Reader) (*File, error) {
	f, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("designfile: parse error: %w", err)
	}
	return f, nil
}

// ParseString parses a design file from a string
func (p *Parser) ParseString(name, input string) (*File, error) {
	f, err := p.parser.ParseString(name, input)
	if err != nil {
		return nil, fmt.Errorf("designfile: parse error: %w", err)
	}
	return f, nil
}

// ParseFile parses a design file from a file path
func (p *Parser) ParseFile(filename string) (*File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("designfile: failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(filename, file)
}
