package cvscope

import (
	"errors"
	gopath "path"
)

// WalkFunc is called for each node during traversal. path is the
// slash-joined location of the node under the root ("/", "/data",
// "/data/[0,0]", ...). err carries the node's own render error or the
// failure of expanding it; either way the walk continues with siblings.
// Return an error to stop walking, or [ErrStopWalk] to stop silently.
type WalkFunc func(path string, n Node, err error) error

// ErrStopWalk stops a walk early without reporting an error.
var ErrStopWalk = errors.New("walk stopped")

// Walk forces every node reachable from root in depth-first order and
// calls fn for each. Unlike [Emit], Walk ignores expansion state; every
// thunk is forced, so the traversal cost is bounded only by the grid cap.
func Walk(root Node, fn WalkFunc) error {
	err := walk("/", root, fn)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

func walk(path string, n Node, fn WalkFunc) error {
	nodeErr := n.Err
	var children []Node
	if n.HasChildren() {
		var err error
		children, err = n.Children()
		if err != nil {
			nodeErr = err
		}
	}

	if err := fn(path, n, nodeErr); err != nil {
		return err
	}

	for _, c := range children {
		if err := walk(gopath.Join(path, c.Name), c, fn); err != nil {
			return err
		}
	}
	return nil
}
