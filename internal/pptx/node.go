// Package pptx implements the PresentationML package container and the
// slide markup tree that the editing operations mutate.
//
// Slide parts are modelled as an explicit tree of nodes with owned child
// lists and ordered attributes. Tags and attribute names keep their
// namespace prefixes verbatim ("p:transition", "r:embed"): round-tripping
// a slide part must reuse the prefixes declared on the slide root, never
// resolve or redeclare them, so the tree works on raw qualified names
// instead of expanded namespace URIs.
package pptx

// Attr is a single element attribute. Order is preserved.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of a slide markup tree.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Elem constructs an element node.
func Elem(tag string, attrs ...Attr) *Node {
	return &Node{Tag: tag, Attrs: attrs}
}

// AttrValue returns the value of the named attribute, or "".
func (n *Node) AttrValue(name string) string {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	for _, a := range n.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// SetAttr sets the named attribute, appending it if absent.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildIndex returns the index of the first direct child with the given
// tag, or -1.
func (n *Node) ChildIndex(tag string) int {
	for i, c := range n.Children {
		if c.Tag == tag {
			return i
		}
	}
	return -1
}

// FindAll returns all direct children with the given tag.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Append adds children at the end of the child list.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// InsertAt inserts a child at index i, shifting later siblings right.
// An index at or past the end appends.
func (n *Node) InsertAt(i int, c *Node) {
	if i < 0 {
		i = 0
	}
	if i >= len(n.Children) {
		n.Children = append(n.Children, c)
		return
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = c
}

// RemoveChildren removes every direct child with the given tag and
// reports how many were removed. Untouched siblings keep their order.
func (n *Node) RemoveChildren(tag string) int {
	kept := n.Children[:0]
	removed := 0
	for _, c := range n.Children {
		if c.Tag == tag {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	n.Children = kept
	return removed
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	out := &Node{Tag: n.Tag, Text: n.Text}
	if len(n.Attrs) > 0 {
		out.Attrs = make([]Attr, len(n.Attrs))
		copy(out.Attrs, n.Attrs)
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, c.Clone())
	}
	return out
}

// InnerText returns the concatenated character data of the subtree.
func (n *Node) InnerText() string {
	s := n.Text
	for _, c := range n.Children {
		s += c.InnerText()
	}
	return s
}
