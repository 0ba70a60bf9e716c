// Package sexp parses the parenthesised records used by text game logs.
package sexp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is wrapped by every parse failure.
var ErrSyntax = errors.New("sexp syntax error")

// Node is either an atom or a list of nodes.
type Node struct {
	Atom   string
	Quoted bool
	List   []Node
	IsList bool
}

// Head returns the first atom of a list, or "" when the node is not a list
// starting with an atom.
func (n Node) Head() string {
	if !n.IsList || len(n.List) == 0 || n.List[0].IsList {
		return ""
	}
	return n.List[0].Atom
}

// Args returns the list elements after the head.
func (n Node) Args() []Node {
	if !n.IsList || len(n.List) == 0 {
		return nil
	}
	return n.List[1:]
}

// String renders the node back to text.
func (n Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n Node) write(b *strings.Builder) {
	if !n.IsList {
		if n.Quoted {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(n.Atom, `"`, `\"`))
			b.WriteByte('"')
			return
		}
		b.WriteString(n.Atom)
		return
	}
	b.WriteByte('(')
	for i, child := range n.List {
		if i > 0 {
			b.WriteByte(' ')
		}
		child.write(b)
	}
	b.WriteByte(')')
}

// Parse reads exactly one list from s. Trailing whitespace is allowed.
func Parse(s string) (Node, error) {
	p := parser{src: s}
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '(' {
		return Node{}, fmt.Errorf("%w: expected '(' at offset %d", ErrSyntax, p.pos)
	}
	node, err := p.list()
	if err != nil {
		return Node{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Node{}, fmt.Errorf("%w: trailing data at offset %d", ErrSyntax, p.pos)
	}
	return node, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) list() (Node, error) {
	start := p.pos
	p.pos++ // '('
	node := Node{IsList: true}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return Node{}, fmt.Errorf("%w: unterminated list opened at offset %d", ErrSyntax, start)
		}
		switch p.src[p.pos] {
		case ')':
			p.pos++
			return node, nil
		case '(':
			child, err := p.list()
			if err != nil {
				return Node{}, err
			}
			node.List = append(node.List, child)
		case '"':
			atom, err := p.quoted()
			if err != nil {
				return Node{}, err
			}
			node.List = append(node.List, atom)
		default:
			node.List = append(node.List, p.atom())
		}
	}
}

func (p *parser) quoted() (Node, error) {
	start := p.pos
	p.pos++ // opening quote
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.src):
			b.WriteByte(p.src[p.pos+1])
			p.pos += 2
		case c == '"':
			p.pos++
			return Node{Atom: b.String(), Quoted: true}, nil
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return Node{}, fmt.Errorf("%w: unterminated string at offset %d", ErrSyntax, start)
}

func (p *parser) atom() Node {
	start := p.pos
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n', '(', ')', '"':
			return Node{Atom: p.src[start:p.pos]}
		}
		p.pos++
	}
	return Node{Atom: p.src[start:p.pos]}
}
