package cvscope

import (
	"errors"
	"testing"
)

func testTree() Node {
	return Parent("", "root", "", 2, func() ([]Node, error) {
		return []Node{
			Leaf("a", "1", "int"),
			Parent("b", "pair", "", 2, func() ([]Node, error) {
				return []Node{
					Leaf("x", "2", "int"),
					Leaf("y", "3", "int"),
				}, nil
			}),
		}, nil
	})
}

func TestWalkOrder(t *testing.T) {
	var paths []string
	err := Walk(testTree(), func(path string, n Node, err error) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{"/", "/a", "/b", "/b/x", "/b/y"}
	if len(paths) != len(expected) {
		t.Fatalf("expected %d visits, got %d: %v", len(expected), len(paths), paths)
	}
	for i, p := range expected {
		if paths[i] != p {
			t.Errorf("visit %d: expected %q, got %q", i, p, paths[i])
		}
	}
}

func TestWalkStop(t *testing.T) {
	var visits int
	err := Walk(testTree(), func(path string, n Node, err error) error {
		visits++
		if path == "/a" {
			return ErrStopWalk
		}
		return nil
	})
	if err != nil {
		t.Fatalf("stopping should not report an error, got %v", err)
	}
	if visits != 2 {
		t.Errorf("expected 2 visits, got %d", visits)
	}
}

func TestWalkPropagatesCallbackError(t *testing.T) {
	boom := errors.New("boom")
	err := Walk(testTree(), func(path string, n Node, err error) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected callback error, got %v", err)
	}
}

func TestWalkExpansionFailure(t *testing.T) {
	bad := errors.New("bad thunk")
	root := Parent("", "root", "", 2, func() ([]Node, error) {
		return []Node{
			Parent("broken", "?", "", 1, func() ([]Node, error) { return nil, bad }),
			Leaf("fine", "ok", ""),
		}, nil
	})

	var seen []string
	var gotErr error
	err := Walk(root, func(path string, n Node, err error) error {
		seen = append(seen, path)
		if path == "/broken" {
			gotErr = err
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	if !errors.Is(gotErr, bad) {
		t.Errorf("expected thunk error at /broken, got %v", gotErr)
	}
	// The broken sibling must not hide the good one.
	if len(seen) != 3 || seen[2] != "/fine" {
		t.Errorf("expected /fine to be visited, got %v", seen)
	}
}

func TestWalkReportsNodeErr(t *testing.T) {
	cause := errors.New("unreadable cell")
	root := Parent("", "root", "", 1, func() ([]Node, error) {
		return []Node{errorLeaf("dead", "int", cause)}, nil
	})

	var gotErr error
	_ = Walk(root, func(path string, n Node, err error) error {
		if path == "/dead" {
			gotErr = err
		}
		return nil
	})
	if !errors.Is(gotErr, cause) {
		t.Errorf("expected node error, got %v", gotErr)
	}
}
