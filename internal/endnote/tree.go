package endnote

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const (
	attributePrefix = "@_"
	textKey         = "#text"
)

type NodeKind int

const (
	KindText NodeKind = iota
	KindObject
	KindList
)

// Node is a loosely typed view of an XML document. Elements that only
// carry text collapse to text nodes, repeated child elements become lists
// and attributes are stored as "@_name" keys next to the children.
type Node struct {
	Kind  NodeKind
	Text  string
	Items []*Node

	keys     []string
	children map[string]*Node
}

func newText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

func newObject() *Node {
	return &Node{Kind: KindObject, children: make(map[string]*Node)}
}

func (n *Node) IsText() bool   { return n != nil && n.Kind == KindText }
func (n *Node) IsObject() bool { return n != nil && n.Kind == KindObject }
func (n *Node) IsList() bool   { return n != nil && n.Kind == KindList }

// Get returns the child stored under key, or nil. Only objects have children.
func (n *Node) Get(key string) *Node {
	if !n.IsObject() {
		return nil
	}
	return n.children[key]
}

// Has reports whether an object node carries key.
func (n *Node) Has(key string) bool {
	return n.Get(key) != nil
}

// Keys returns the object's keys in document order.
func (n *Node) Keys() []string {
	if !n.IsObject() {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// Values returns the object's children in key order.
func (n *Node) Values() []*Node {
	if !n.IsObject() {
		return nil
	}
	values := make([]*Node, 0, len(n.keys))
	for _, key := range n.keys {
		values = append(values, n.children[key])
	}
	return values
}

// Attr returns the value of an attribute on an object node.
func (n *Node) Attr(name string) (string, bool) {
	attr := n.Get(attributePrefix + name)
	if !attr.IsText() {
		return "", false
	}
	return attr.Text, true
}

// add stores child under key, turning a repeated key into a list.
func (n *Node) add(key string, child *Node) {
	existing, ok := n.children[key]
	switch {
	case !ok:
		n.keys = append(n.keys, key)
		n.children[key] = child
	case existing.IsList():
		existing.Items = append(existing.Items, child)
	default:
		n.children[key] = &Node{Kind: KindList, Items: []*Node{existing, child}}
	}
}

type elementFrame struct {
	name     string
	node     *Node
	text     strings.Builder
	attrs    int
	elements int
}

func newFrame(start xml.StartElement) *elementFrame {
	frame := &elementFrame{name: start.Name.Local, node: newObject()}
	for _, attr := range start.Attr {
		frame.node.add(attributePrefix+attr.Name.Local, newText(strings.TrimSpace(attr.Value)))
		frame.attrs++
	}
	return frame
}

func (f *elementFrame) finish() *Node {
	text := strings.TrimSpace(f.text.String())
	if f.attrs == 0 && f.elements == 0 {
		return newText(text)
	}
	if text != "" {
		f.node.add(textKey, newText(text))
	}
	return f.node
}

// ParseTree reads an XML document into a Node tree. The returned root is
// an object keyed by the document's top-level element.
func ParseTree(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	decoder.Entity = xml.HTMLEntity

	root := newObject()
	var stack []*elementFrame

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if len(stack) > 0 {
				stack[len(stack)-1].elements++
			}
			stack = append(stack, newFrame(t))
		case xml.EndElement:
			frame := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := root
			if len(stack) > 0 {
				parent = stack[len(stack)-1].node
			}
			parent.add(frame.name, frame.finish())
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	return root, nil
}
