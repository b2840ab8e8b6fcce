package cvscope

import (
	"io"

	"github.com/sirupsen/logrus"
)

// DescribeOption configures a Describe call.
type DescribeOption func(*describeOptions)

type describeOptions struct {
	log logrus.FieldLogger
}

func defaultDescribeOptions() *describeOptions {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &describeOptions{log: l}
}

// WithLogger routes decode tracing to the given logger. By default
// tracing is discarded.
func WithLogger(log logrus.FieldLogger) DescribeOption {
	return func(o *describeOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// EmitOption configures how a tree is pushed into a [Sink].
type EmitOption func(*emitOptions)

type emitOptions struct {
	expanded func(path string) bool
}

func defaultEmitOptions() *emitOptions {
	return &emitOptions{
		expanded: func(string) bool { return false },
	}
}

// WithExpansion sets the host's expansion state: fn is consulted with a
// node's path ("/", "/data", "/data/[0,0]", ...) and children are
// produced only where it returns true.
func WithExpansion(fn func(path string) bool) EmitOption {
	return func(o *emitOptions) {
		if fn != nil {
			o.expanded = fn
		}
	}
}

// ExpandAll expands every node.
func ExpandAll() EmitOption {
	return WithExpansion(func(string) bool { return true })
}
