package schema

// maxTypeDepth bounds typedef/leafref chains so a malformed, cyclic schema
// cannot hang classification.
const maxTypeDepth = 64

// Classifier answers which built-in type a node's type resolves to.
// Each method accepts a leaf, leaf-list, typedef or type statement and
// returns the type statement that declares the built-in type, or nil.
type Classifier struct{}

// Enum returns the enumeration type statement, following typedefs and
// leafref targets.
func (Classifier) Enum(n *Node) *Node {
	return resolveBuiltin(n, "enumeration", true)
}

// Bits returns the bits type statement, following typedefs and leafref
// targets.
func (Classifier) Bits(n *Node) *Node {
	return resolveBuiltin(n, "bits", true)
}

// Union returns the union type statement, following typedefs.
func (Classifier) Union(n *Node) *Node {
	return resolveBuiltin(n, "union", false)
}

// IdentityRef returns the identityref type statement, following typedefs
// and leafref targets. The base identity is its IdentityBase.
func (Classifier) IdentityRef(n *Node) *Node {
	return resolveBuiltin(n, "identityref", true)
}

// UnionMembers returns the member type statements of a union type.
func UnionMembers(union *Node) []*Node {
	return union.Search("type")
}

func resolveBuiltin(n *Node, builtin string, followLeafref bool) *Node {
	t := n.Type()
	for depth := 0; t != nil && depth < maxTypeDepth; depth++ {
		switch {
		case t.Arg == builtin:
			return t
		case t.Typedef != nil:
			t = t.Typedef.Type()
		case followLeafref && t.Arg == "leafref" && t.LeafrefTarget != nil:
			t = t.LeafrefTarget.Type()
		default:
			return nil
		}
	}
	return nil
}
