package builder

import "github.com/Alia5/yapigen/internal/schema"

// Namespace holds the names the sanitizer assigned to schema nodes during a
// run. Nodes without an entry keep their schema name.
//
// Augments merge nodes from several modules into one parent, so two
// siblings can share a name that was unique in its own module. Sanitize
// prefixes every colliding sibling with the name of its defining module.
type Namespace struct {
	names map[*schema.Node]string
}

func NewNamespace() *Namespace {
	return &Namespace{names: make(map[*schema.Node]string)}
}

// Name returns the sanitized name of n.
func (ns *Namespace) Name(n *schema.Node) string {
	if name, ok := ns.names[n]; ok {
		return name
	}
	return n.Arg
}

// Sanitize renames the children of n that share a name with a sibling to
// <module>_<name>. A rename can collide with another sibling, so it repeats
// until every name is unique or the remaining clashes are between children
// of the same module, which a prefix cannot separate. It returns the renamed
// names in first-seen order.
func (ns *Namespace) Sanitize(n *schema.Node) []string {
	var renamed []string
	for {
		clashing := make(map[string]bool)
		for _, name := range ns.clashes(n) {
			modules := make(map[string]bool)
			for _, ch := range n.Children {
				if ns.Name(ch) == name {
					modules[ch.Top().Arg] = true
				}
			}
			if len(modules) > 1 {
				clashing[name] = true
				renamed = append(renamed, name)
			}
		}
		if len(clashing) == 0 {
			return renamed
		}
		for _, ch := range n.Children {
			if old := ns.Name(ch); clashing[old] {
				ns.names[ch] = ch.Top().Arg + "_" + old
			}
		}
	}
}

// clashes returns the names carried by more than one child of n.
func (ns *Namespace) clashes(n *schema.Node) []string {
	counts := make(map[string]int, len(n.Children))
	var order []string
	for _, ch := range n.Children {
		name := ns.Name(ch)
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	var out []string
	for _, name := range order {
		if counts[name] > 1 {
			out = append(out, name)
		}
	}
	return out
}

// alias gives n the sanitized name of of, if it has one.
func (ns *Namespace) alias(n, of *schema.Node) {
	if name, ok := ns.names[of]; ok {
		ns.names[n] = name
	}
}
