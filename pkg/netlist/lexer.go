package netlist

import (
	"bufio"
	"fmt"
	"io"
	"unicode"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenOpen
	tokenClose
	tokenAtom
)

type token struct {
	typ   tokenType
	value string
	line  int
}

// lexer splits KiCad s-expression text into parens and atoms. Quoted strings
// become a single atom with escapes resolved.
type lexer struct {
	reader *bufio.Reader
	peeked *rune
	line   int
}

func newLexer(r io.Reader) *lexer {
	return &lexer{reader: bufio.NewReader(r), line: 1}
}

func (l *lexer) next() (token, error) {
	for {
		ch, err := l.peek()
		if err == io.EOF {
			return token{typ: tokenEOF, line: l.line}, nil
		}
		if err != nil {
			return token{}, err
		}
		if !unicode.IsSpace(ch) {
			break
		}
		l.read()
	}

	ch, _ := l.peek()
	switch ch {
	case '(':
		l.read()
		return token{typ: tokenOpen, value: "(", line: l.line}, nil
	case ')':
		l.read()
		return token{typ: tokenClose, value: ")", line: l.line}, nil
	case '"':
		return l.quoted()
	default:
		return l.bare()
	}
}

func (l *lexer) peek() (rune, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	ch, _, err := l.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	l.peeked = &ch
	return ch, nil
}

func (l *lexer) read() (rune, error) {
	var ch rune
	if l.peeked != nil {
		ch = *l.peeked
		l.peeked = nil
	} else {
		var err error
		if ch, _, err = l.reader.ReadRune(); err != nil {
			return 0, err
		}
	}
	if ch == '\n' {
		l.line++
	}
	return ch, nil
}

func (l *lexer) quoted() (token, error) {
	start := l.line
	l.read()

	var out []rune
	for {
		ch, err := l.read()
		if err == io.EOF {
			return token{}, fmt.Errorf("line %d: unterminated string", start)
		}
		if err != nil {
			return token{}, err
		}
		switch ch {
		case '"':
			return token{typ: tokenAtom, value: string(out), line: start}, nil
		case '\\':
			esc, err := l.read()
			if err != nil {
				return token{}, fmt.Errorf("line %d: unterminated escape", l.line)
			}
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			default:
				out = append(out, esc)
			}
		default:
			out = append(out, ch)
		}
	}
}

func (l *lexer) bare() (token, error) {
	var out []rune
	for {
		ch, err := l.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token{}, err
		}
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			break
		}
		l.read()
		out = append(out, ch)
	}
	return token{typ: tokenAtom, value: string(out), line: l.line}, nil
}
