package builder

import (
	"github.com/Alia5/yapigen/internal/apimodel"
	"github.com/Alia5/yapigen/internal/schema"
)

// expandedKeywords are the children the expanded tree walks.
var expandedKeywords = append([]string{"rpc", "input", "output"}, schema.DataDefinitionKeywords...)

// ExpandedTree maps the data tree one to one: every container, list and rpc
// becomes a class, groupings are flattened into the classes using them.
type ExpandedTree struct {
	core
}

func NewExpandedTree(opts Options) *ExpandedTree {
	return &ExpandedTree{core: core{opts: withDefaults(opts)}}
}

// Convert builds the deviation packages first so deviations met while
// walking ordinary modules find their package, then one package per module.
// A deviation package holds the enum and bits typedefs of its module, which
// replacement types may name.
// Resolution order is ordinary packages, then deviation packages.
func (s *ExpandedTree) Convert(modules []*schema.Node) *Run {
	r := newRun()

	var ordinary, deviation []*schema.Node
	for _, m := range modules {
		switch {
		case m.IsDeviationModule:
			deviation = append(deviation, m)
		case m.Keyword == "module":
			ordinary = append(ordinary, m)
		}
	}

	var devPackages []*apimodel.Package
	for _, m := range deviation {
		p := s.newPackage(r, m)
		s.hoistTypedefs(r, m, p, true)
		r.deviations[m.Arg] = p
		devPackages = append(devPackages, p)
	}

	for _, m := range ordinary {
		p := s.newPackage(r, m)
		s.opts.Logger.Debug("Converting module", "module", m.Arg, "strategy", KindExpandedTree)
		s.convert(r, m, p)
		r.Packages = append(r.Packages, p)
	}
	r.Packages = append(r.Packages, devPackages...)
	return r
}

func (s *ExpandedTree) Resolve(r *Run, e apimodel.Element) error {
	return s.resolve(r, e, nil)
}

func (s *ExpandedTree) convert(r *Run, n *schema.Node, parent apimodel.Container) {
	element := parent

	s.addIdentities(r, n, parent)
	s.hoistTypedefs(r, n, parent, true)

	switch n.Keyword {
	case "container", "list", "rpc", "input", "output":
		if (n.Keyword == "input" || n.Keyword == "output") && len(n.Subs) == 0 && len(n.Children) == 0 {
			break
		}
		element = s.addClass(r, n, parent, true)
	case "leaf", "leaf-list", "anyxml":
		s.addLeaf(r, n, parent, leafOptions{unions: true})
	}

	if len(n.Deviations) > 0 {
		s.applyDeviations(r, n, parent)
	}

	if clashes := r.Namespace.Sanitize(n); len(clashes) > 0 {
		s.opts.Logger.Debug("Renamed colliding children", "node", n.Path(), "names", clashes)
	}

	var children []*schema.Node
	if n.Keyword == "rpc" && s.opts.FlattenRPCInput {
		children = deferredChildren(n)
	} else {
		children = orderedChildren(n)
	}
	for _, child := range children {
		s.convert(r, child, element)
	}
}

// orderedChildren returns the key leaves of n followed by its other walked
// children.
func orderedChildren(n *schema.Node) []*schema.Node {
	out := append([]*schema.Node(nil), n.Key...)
	for _, ch := range n.Children {
		if !contains(n.Key, ch) && hasKeyword(expandedKeywords, ch.Keyword) {
			out = append(out, ch)
		}
	}
	return out
}

// deferredChildren is orderedChildren with every input block replaced by its
// own children, appended after all other children.
func deferredChildren(n *schema.Node) []*schema.Node {
	out := append([]*schema.Node(nil), n.Key...)
	var inputs []*schema.Node
	for _, ch := range n.Children {
		if contains(out, ch) || !hasKeyword(expandedKeywords, ch.Keyword) {
			continue
		}
		if ch.Keyword == "input" {
			inputs = append(inputs, ch)
			continue
		}
		out = append(out, ch)
	}
	for _, in := range inputs {
		out = append(out, deferredChildren(in)...)
	}
	return out
}

func contains(nodes []*schema.Node, n *schema.Node) bool {
	for _, x := range nodes {
		if x == n {
			return true
		}
	}
	return false
}

func hasKeyword(keywords []string, kw string) bool {
	for _, k := range keywords {
		if k == kw {
			return true
		}
	}
	return false
}
