package errors

import (
	"strconv"
	"strings"
)

// PathNode is one position in a query path trail. Nodes form a backward
// linked list: each descent into a field or list element allocates a new
// node pointing at its parent, and the chain is only walked when an error
// or path-qualified message needs rendering. A nil *PathNode is the root.
type PathNode struct {
	Parent  *PathNode
	Name    string
	Index   int
	indexed bool
}

// WithName returns a child node for the field or alias name.
func (n *PathNode) WithName(name string) *PathNode {
	return &PathNode{Parent: n, Name: name}
}

// WithIndex returns a child node for a list element position.
func (n *PathNode) WithIndex(idx int) *PathNode {
	return &PathNode{Parent: n, Index: idx, indexed: true}
}

// Path renders the trail root-first as the wire representation of a
// response path, mixing field names and list indexes.
func (n *PathNode) Path() []interface{} {
	if n == nil {
		return nil
	}
	parent := n.Parent.Path()
	if n.indexed {
		return append(parent, n.Index)
	}
	return append(parent, n.Name)
}

func (n *PathNode) String() string {
	if n == nil {
		return ""
	}
	segments := n.Path()
	parts := make([]string, len(segments))
	for i, seg := range segments {
		switch seg := seg.(type) {
		case int:
			parts[i] = strconv.Itoa(seg)
		case string:
			parts[i] = seg
		}
	}
	return strings.Join(parts, ".")
}
