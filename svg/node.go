// Package svg turns SVG documents into normalized glyph outlines.
//
// Parsing happens in two stages: the document is first read into a generic
// tree of nodes (name, attributes, children), then every path element's
// data string is normalized to absolute move/line/cubic/quadratic/close
// commands and mapped into font-design units. The node tree is deliberately
// decoupled from the XML decoder so traversal and path discovery do not
// depend on a particular parser representation.
package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Node is one element of the parsed document tree.
type Node struct {
	// Name is the local element name without namespace prefix.
	Name string

	// Attr maps attribute local names to their values.
	Attr map[string]string

	// Children are the child elements in document order.
	Children []*Node
}

// Walk visits n and all its descendants depth-first in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// ParseDocument reads an XML document into a node tree and returns its
// root element. Character data and comments are discarded; only element
// structure and attributes are kept.
func ParseDocument(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("svg: malformed document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{
				Name: t.Name.Local,
				Attr: make(map[string]string, len(t.Attr)),
			}
			for _, a := range t.Attr {
				node.Attr[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("svg: multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if root == nil {
		return nil, errors.New("svg: document has no elements")
	}
	return root, nil
}
