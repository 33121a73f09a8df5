// Package schema holds the annotated YANG statement tree consumed by the
// model builders.
//
// A Node is produced once by the scanner and is treated as immutable
// afterwards. Every reference the scanner resolves (typedefs, identity bases,
// leafref targets, used groupings, deviations) is an explicit field, so the
// builders never search for optional attributes and never write back into the
// tree.
package schema

import "strings"

// Node is one YANG statement.
type Node struct {
	Keyword string
	Arg     string

	// Parent is the lexical parent statement; nil for modules and submodules.
	Parent *Node
	// Module is the module or submodule the statement is defined in.
	Module *Node
	// Subs are the raw substatements in source order.
	Subs []*Node

	// Children is the expanded data tree: uses are replaced by the grouping
	// contents, augments are merged in, rpcs always carry input and output.
	Children []*Node
	// Up is the data tree parent.
	Up *Node
	// Key lists the key leaves of a list, in key statement order.
	Key []*Node
	// Origin is the grouping statement a uses copy was made from; nil for
	// statements written where they appear.
	Origin *Node

	Typedefs   []*Node
	Groupings  []*Node
	Identities []*Node

	// Typedef is the typedef a derived type statement refers to.
	Typedef *Node
	// IdentityBase is the base identity of an identityref type statement.
	IdentityBase *Node
	// LeafrefTarget is the leaf a leafref type statement points at.
	LeafrefTarget *Node
	// Grouping is the grouping a uses statement refers to.
	Grouping *Node
	// Bases are the base identities of an identity statement.
	Bases []*Node

	// Deviations recorded against this node, grouped by deviate kind.
	Deviations []DeviationSet
	// IsDeviationModule marks modules that only carry deviations.
	IsDeviationModule bool
}

// Deviation is a single deviate property applied by Module.
type Deviation struct {
	Module *Node
	Stmt   *Node
}

// DeviationSet groups the deviations of one kind (replace, add, delete,
// not-supported).
type DeviationSet struct {
	Kind    string
	Entries []Deviation
}

// DataDefinitionKeywords are the statements that define data nodes.
var DataDefinitionKeywords = []string{
	"container", "leaf", "leaf-list", "list", "case", "choice",
	"anyxml", "anydata", "uses", "augment",
}

// IsDataDefinition reports whether keyword defines a data node.
func IsDataDefinition(keyword string) bool {
	for _, k := range DataDefinitionKeywords {
		if k == keyword {
			return true
		}
	}
	return false
}

// SearchOne returns the first substatement with the keyword, or nil.
func (n *Node) SearchOne(keyword string) *Node {
	if n == nil {
		return nil
	}
	for _, s := range n.Subs {
		if s.Keyword == keyword {
			return s
		}
	}
	return nil
}

// Search returns all substatements with the keyword.
func (n *Node) Search(keyword string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, s := range n.Subs {
		if s.Keyword == keyword {
			out = append(out, s)
		}
	}
	return out
}

// Type returns the type substatement. A type statement is its own type.
func (n *Node) Type() *Node {
	if n == nil {
		return nil
	}
	if n.Keyword == "type" {
		return n
	}
	return n.SearchOne("type")
}

// Top returns the module or submodule the node was defined in.
func (n *Node) Top() *Node {
	if n.Module != nil {
		return n.Module
	}
	return n
}

// Namespace returns the name of the module whose namespace the node lives
// in. Nodes defined in a submodule belong to the module named by belongs-to.
func (n *Node) Namespace() string {
	top := n.Top()
	if top.Keyword == "submodule" {
		if b := top.SearchOne("belongs-to"); b != nil {
			return b.Arg
		}
	}
	return top.Arg
}

// Path renders the data tree path of the node for diagnostics.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Up {
		if cur.Keyword == "module" || cur.Keyword == "submodule" {
			break
		}
		parts = append(parts, cur.Arg)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + n.Namespace() + ":" + strings.Join(parts, "/")
}

// WithReplacedType returns a copy of the node whose type substatement is
// replaced by typ. The receiver and its substatement slice are left
// untouched. If the node has no type substatement, typ is appended.
func (n *Node) WithReplacedType(typ *Node) *Node {
	c := *n
	c.Subs = make([]*Node, len(n.Subs), len(n.Subs)+1)
	copy(c.Subs, n.Subs)
	replaced := false
	for i, s := range c.Subs {
		if s.Keyword == "type" {
			c.Subs[i] = typ
			replaced = true
			break
		}
	}
	if !replaced {
		c.Subs = append(c.Subs, typ)
	}
	c.Deviations = nil
	return &c
}
