package scene

// Primitive is anything a Node can hold for rendering.
type Primitive interface {
	IsVisible() bool
	Alpha() float64
}

// Node is a retained scene-graph group. Visibility and opacity are
// inherited: a hidden node hides its whole subtree without touching the
// primitives inside it.
type Node struct {
	Name    string
	Visible bool
	Opacity float64

	Parent   *Node
	Children []*Node
	Items    []Primitive
}

// NewNode creates a visible, fully opaque node.
func NewNode(name string) *Node {
	return &Node{Name: name, Visible: true, Opacity: 1}
}

// Add attaches child, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child.Parent != nil {
		child.Parent.Remove(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Remove detaches child. It reports whether child was attached here.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return true
		}
	}
	return false
}

// Find returns the first descendant (or n itself) with the given name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Clear drops every item held directly by n.
func (n *Node) Clear() {
	n.Items = nil
}

// EffectiveVisible reports whether n and all its ancestors are visible.
func (n *Node) EffectiveVisible() bool {
	for p := n; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// EffectiveOpacity multiplies opacity down from the root.
func (n *Node) EffectiveOpacity() float64 {
	o := 1.0
	for p := n; p != nil; p = p.Parent {
		o *= p.Opacity
	}
	return o
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
