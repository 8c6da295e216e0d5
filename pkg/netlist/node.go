package netlist

import (
	"fmt"
	"io"
	"strings"
)

// Node is an s-expression: either an atom or a list of nodes.
type Node struct {
	Atom string
	List []*Node
	Leaf bool
	Line int
}

// Name returns the leading atom of a list, e.g. "net" for (net ...).
func (n *Node) Name() string {
	if n.Leaf || len(n.List) == 0 || !n.List[0].Leaf {
		return ""
	}
	return n.List[0].Atom
}

// Child returns the first sub-list named key.
func (n *Node) Child(key string) (*Node, bool) {
	for _, c := range n.List {
		if !c.Leaf && c.Name() == key {
			return c, true
		}
	}
	return nil, false
}

// Children returns every sub-list named key, in order.
func (n *Node) Children(key string) []*Node {
	var out []*Node
	for _, c := range n.List {
		if !c.Leaf && c.Name() == key {
			out = append(out, c)
		}
	}
	return out
}

// Value returns the atom following the name of the sub-list named key,
// so (ref "U1") yields "U1".
func (n *Node) Value(key string) (string, bool) {
	c, ok := n.Child(key)
	if !ok || len(c.List) < 2 || !c.List[1].Leaf {
		return "", false
	}
	return c.List[1].Atom, true
}

func (n *Node) String() string {
	if n.Leaf {
		return n.Atom
	}
	parts := make([]string, len(n.List))
	for i, c := range n.List {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Parse reads every top-level expression from r.
func Parse(r io.Reader) ([]*Node, error) {
	lx := newLexer(r)
	var out []*Node
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if tok.typ == tokenEOF {
			return out, nil
		}
		n, err := parseNode(lx, tok)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
}

func parseNode(lx *lexer, tok token) (*Node, error) {
	switch tok.typ {
	case tokenAtom:
		return &Node{Atom: tok.value, Leaf: true, Line: tok.line}, nil
	case tokenClose:
		return nil, fmt.Errorf("line %d: unexpected ')'", tok.line)
	case tokenOpen:
		list := &Node{Line: tok.line, List: []*Node{}}
		for {
			next, err := lx.next()
			if err != nil {
				return nil, err
			}
			switch next.typ {
			case tokenClose:
				return list, nil
			case tokenEOF:
				return nil, fmt.Errorf("line %d: unclosed '('", tok.line)
			}
			child, err := parseNode(lx, next)
			if err != nil {
				return nil, err
			}
			list.List = append(list.List, child)
		}
	default:
		return nil, fmt.Errorf("line %d: unexpected end of input", tok.line)
	}
}
