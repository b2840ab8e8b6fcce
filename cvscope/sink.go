package cvscope

import (
	"fmt"
	"io"
	gopath "path"
	"strings"
)

// Sink receives a rendered tree, one node at a time. It mirrors the
// hosting inspector's presentation protocol: scalar setters for the
// current node, then an optional child group. [Emit] guarantees that
// every BeginChildren is matched by EndChildren and every OpenChild by
// CloseChild, even when a group turns out empty or a child fails.
type Sink interface {
	// SetValue sets the current node's summary text.
	SetValue(text string)

	// SetDeclaredType sets the current node's type name.
	SetDeclaredType(name string)

	// SetChildCount announces how many children an expansion would
	// yield, before any child is emitted.
	SetChildCount(n int)

	// BeginChildren opens the child group with its final size.
	BeginChildren(count int)

	// OpenChild starts a named child and returns the sink to emit it
	// into.
	OpenChild(name string) Sink

	// CloseChild ends the child most recently opened on this sink.
	CloseChild()

	// EndChildren closes the child group.
	EndChildren()
}

// Emit pushes a rendered tree into a sink. Children are produced only
// where the expansion predicate allows (see [WithExpansion]); collapsed
// nodes cost one summary each. A child whose subtree fails still leaves
// the sink's scopes balanced, and its siblings are emitted regardless;
// the first failure is reported after the tree completes.
func Emit(root Node, sink Sink, opts ...EmitOption) error {
	o := defaultEmitOptions()
	for _, opt := range opts {
		opt(o)
	}
	return emit("/", root, sink, o)
}

func emit(path string, n Node, sink Sink, o *emitOptions) error {
	sink.SetDeclaredType(n.Type)
	sink.SetValue(n.Value)
	sink.SetChildCount(n.ChildCount)

	if !n.HasChildren() || !o.expanded(path) {
		return nil
	}

	children, err := n.Children()
	if err != nil {
		// The group was announced as expandable; close it empty.
		sink.BeginChildren(0)
		sink.EndChildren()
		return err
	}

	sink.BeginChildren(len(children))
	defer sink.EndChildren()

	var firstErr error
	for _, c := range children {
		cs := sink.OpenChild(c.Name)
		cerr := emit(gopath.Join(path, c.Name), c, cs, o)
		sink.CloseChild()
		if cerr != nil && firstErr == nil {
			firstErr = cerr
		}
	}
	return firstErr
}

// IndentSink renders nodes as an indented text tree, one line per node.
// It serves diagnostic output; inspector integrations provide their own
// Sink.
type IndentSink struct {
	w     io.Writer
	name  string
	depth int

	typ   string
	value string
}

// NewIndentSink returns a sink writing to w. rootName labels the top
// node, usually the inspected variable's name.
func NewIndentSink(w io.Writer, rootName string) *IndentSink {
	return &IndentSink{w: w, name: rootName}
}

func (s *IndentSink) SetDeclaredType(name string) { s.typ = name }
func (s *IndentSink) SetValue(text string)        { s.value = text }

// SetChildCount completes the node line; it is the last scalar setter
// Emit calls before any children.
func (s *IndentSink) SetChildCount(int) {
	line := strings.Repeat("  ", s.depth) + s.name
	if s.value != "" {
		line += " = " + s.value
	}
	if s.typ != "" {
		line += " (" + s.typ + ")"
	}
	fmt.Fprintln(s.w, line)
}

func (s *IndentSink) BeginChildren(int) {}

func (s *IndentSink) OpenChild(name string) Sink {
	return &IndentSink{w: s.w, name: name, depth: s.depth + 1}
}

func (s *IndentSink) CloseChild()  {}
func (s *IndentSink) EndChildren() {}
