package scaffold

import (
	"context"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies which shape a Node holds.
type Kind int

const (
	kindInvalid Kind = iota
	// KindDirectory is an ordered mapping of name templates to child nodes.
	KindDirectory
	// KindContent is literal file text, possibly holding template syntax.
	KindContent
	// KindGenerator is a deferred computation producing a Directory or Content.
	KindGenerator
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindContent:
		return "content"
	case KindGenerator:
		return "generator"
	default:
		return "invalid"
	}
}

// GenerateFunc produces a node from a snapshot of the view context.
// It may block; the resolver runs it on its own goroutine path.
type GenerateFunc func(ctx context.Context, data *ViewContext) (Node, error)

// CallbackFunc produces a node by invoking done, possibly later and from
// another goroutine. Only the first call to done is honoured.
type CallbackFunc func(data *ViewContext, done func(Node, error))

// Node is one element of an output tree. Nodes are built with Dir, Content,
// Generator or Deferred; the zero Node is invalid.
type Node struct {
	kind     Kind
	children *orderedmap.OrderedMap[string, Node]
	text     string
	generate GenerateFunc
}

// Entry pairs a name template with a child node inside a directory.
type Entry struct {
	Name string
	Node Node
}

// Item is shorthand for an Entry literal.
func Item(name string, node Node) Entry {
	return Entry{Name: name, Node: node}
}

// Dir builds a directory node. A repeated name replaces the earlier child
// in place.
func Dir(entries ...Entry) Node {
	children := orderedmap.New[string, Node](orderedmap.WithCapacity[string, Node](len(entries)))
	for _, e := range entries {
		children.Set(e.Name, e.Node)
	}
	return Node{kind: KindDirectory, children: children}
}

// Content builds a file content node.
func Content(text string) Node {
	return Node{kind: KindContent, text: text}
}

// Generator builds a node whose value is computed at resolution time.
func Generator(fn GenerateFunc) Node {
	return Node{kind: KindGenerator, generate: fn}
}

// Deferred builds a generator node from a completion-callback function.
func Deferred(fn CallbackFunc) Node {
	return Generator(func(ctx context.Context, data *ViewContext) (Node, error) {
		return awaitCallback(ctx, data, fn)
	})
}

// Kind reports the node's shape.
func (n Node) Kind() Kind { return n.kind }

// IsZero reports whether n was never constructed.
func (n Node) IsZero() bool { return n.kind == kindInvalid }

// Text returns the literal text of a content node.
func (n Node) Text() string { return n.text }

// Len returns the number of children of a directory node.
func (n Node) Len() int {
	if n.children == nil {
		return 0
	}
	return n.children.Len()
}

// Entries returns the children of a directory node in declaration order.
func (n Node) Entries() []Entry {
	if n.children == nil {
		return nil
	}
	out := make([]Entry, 0, n.children.Len())
	for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Entry{Name: pair.Key, Node: pair.Value})
	}
	return out
}

// Child returns the child stored under the exact (unrendered) name.
func (n Node) Child(name string) (Node, bool) {
	if n.children == nil {
		return Node{}, false
	}
	return n.children.Get(name)
}

type callbackResult struct {
	node Node
	err  error
}

// awaitCallback turns a callback-style generator into a single awaited value.
func awaitCallback(ctx context.Context, data *ViewContext, fn CallbackFunc) (Node, error) {
	ch := make(chan callbackResult, 1)
	fn(data, func(node Node, err error) {
		select {
		case ch <- callbackResult{node: node, err: err}:
		default:
		}
	})

	select {
	case res := <-ch:
		return res.node, res.err
	case <-ctx.Done():
		return Node{}, ctx.Err()
	}
}
