// Package parser turns raw XML bytes into a generic element tree that the
// validation phases can traverse without per-document schemas.
package parser

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Node is one XML element: its name, attributes, and child elements.
// Character data is discarded; the validator only inspects structure.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []Node     `xml:",any"`
}

// Parse decodes data into an element tree rooted at the document element.
func Parse(data []byte) (*Node, error) {
	var n Node
	if err := xml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	return &n, nil
}

// Local returns the element's tag name with any namespace stripped.
func (n *Node) Local() string {
	return n.XMLName.Local
}

// Attr returns the value of the named un-namespaced attribute, or ""
// when absent.
func (n *Node) Attr(local string) string {
	for _, a := range n.Attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// AttrNS returns the value of the attribute with the given namespace URI
// and local name, or "" when absent.
func (n *Node) AttrNS(space, local string) string {
	for _, a := range n.Attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// Child returns the first direct child with the given local name, or nil.
func (n *Node) Child(local string) *Node {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == local {
			return &n.Children[i]
		}
	}
	return nil
}

// ChildrenNamed returns every direct child with the given local name.
func (n *Node) ChildrenNamed(local string) []*Node {
	var out []*Node
	for i := range n.Children {
		if n.Children[i].XMLName.Local == local {
			out = append(out, &n.Children[i])
		}
	}
	return out
}

// Walk visits n and every descendant in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for i := range n.Children {
		n.Children[i].Walk(fn)
	}
}

// StripPrefix removes a leading "prefix:" from a type value, so that
// "archimate:BusinessActor" becomes "BusinessActor".
func StripPrefix(s string) string {
	if i := strings.Index(s, ":"); i >= 0 {
		return s[i+1:]
	}
	return s
}
