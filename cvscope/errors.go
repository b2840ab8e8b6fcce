// Package cvscope renders lazy, navigable debugger views of OpenCV-style
// matrix buffers and geometry values.
//
// The package interprets raw field values that a hosting inspector has
// already read out of target memory. Each Describe function is a pure
// function of its inputs: it computes a one-line summary eagerly and
// returns a [Node] whose children are produced on demand when the caller
// forces them. Raw element bytes come from an [Oracle]; rendered trees
// can be pushed into a host through a [Sink] or traversed with [Walk].
package cvscope

import "errors"

// Common errors
var (
	ErrUnsupportedScalar = errors.New("unsupported scalar domain")
	ErrShortRead         = errors.New("short memory read")
)
