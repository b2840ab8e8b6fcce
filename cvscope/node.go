package cvscope

// Node is one entry in a rendered inspection tree.
//
// A Node is immutable once built: its summary text and declared type are
// computed eagerly, while children stay behind a thunk until the caller
// forces them with [Node.Children]. Forcing the same node twice yields
// identical output, since thunks close only over the describe inputs.
type Node struct {
	// Name is the label under the parent node. The root node of a
	// Describe call has no name; hosts assign the variable name.
	Name string

	// Value is the one-line summary text.
	Value string

	// Type is the declared type name shown next to the value, if any.
	Type string

	// ChildCount is the number of children forcing the node will yield.
	ChildCount int

	// Err records why this node could not be fully rendered (for
	// example an unreadable element). The node still carries a
	// placeholder Value so siblings render undisturbed.
	Err error

	children ChildFunc
}

// ChildFunc produces the ordered children of a node when it is expanded.
type ChildFunc func() ([]Node, error)

// Leaf returns a node with no children.
func Leaf(name, value, typ string) Node {
	return Node{Name: name, Value: value, Type: typ}
}

// Parent returns a node whose children are produced by fn when forced.
func Parent(name, value, typ string, count int, fn ChildFunc) Node {
	return Node{Name: name, Value: value, Type: typ, ChildCount: count, children: fn}
}

// errorLeaf marks a single child as unreadable without failing its siblings.
func errorLeaf(name, typ string, err error) Node {
	return Node{Name: name, Value: "<unreadable>", Type: typ, Err: err}
}

// HasChildren reports whether forcing the node can yield children.
func (n Node) HasChildren() bool {
	return n.children != nil
}

// Children forces the node's child thunk. It returns nil for leaves.
func (n Node) Children() ([]Node, error) {
	if n.children == nil {
		return nil, nil
	}
	return n.children()
}
