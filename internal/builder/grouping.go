package builder

import (
	"github.com/Alia5/yapigen/internal/apimodel"
	"github.com/Alia5/yapigen/internal/schema"
)

// GroupingClass turns every grouping into a class and makes the classes of
// the containers and lists using it extend that class. Children a node gets
// through uses are left to inheritance instead of being expanded again.
type GroupingClass struct {
	core
}

func NewGroupingClass(opts Options) *GroupingClass {
	return &GroupingClass{core: core{opts: withDefaults(opts)}}
}

// Convert creates one package per module. Submodules and deviation modules
// are not converted by this strategy.
func (s *GroupingClass) Convert(modules []*schema.Node) *Run {
	r := newRun()
	for _, m := range modules {
		if m.Keyword != "module" || m.IsDeviationModule {
			continue
		}
		p := s.newPackage(r, m)
		s.opts.Logger.Debug("Converting module", "module", m.Arg, "strategy", KindGroupingClass)
		s.convert(r, m, p)
		r.Packages = append(r.Packages, p)
	}
	return r
}

func (s *GroupingClass) Resolve(r *Run, e apimodel.Element) error {
	return s.resolve(r, e, s.resolveExtends)
}

// convert handles the groupings declared in n before n itself, so a
// grouping's class exists before any node inheriting from it.
func (s *GroupingClass) convert(r *Run, n *schema.Node, parent apimodel.Container) {
	element := parent

	s.addIdentities(r, n, parent)
	s.hoistTypedefs(r, n, parent, false)

	for _, g := range n.Groupings {
		s.convert(r, g, element)
	}

	switch n.Keyword {
	case "grouping", "container", "list":
		element = s.addClass(r, n, parent, false)
	case "leaf", "leaf-list":
		s.addLeaf(r, n, parent, leafOptions{registerInline: true})
	}

	inherited := make(map[string]bool)
	if n.Keyword != "module" {
		for _, u := range n.Search("uses") {
			if u.Grouping == nil {
				continue
			}
			for _, ch := range u.Grouping.Children {
				inherited[ch.Arg] = true
			}
		}
	}

	for _, child := range n.Children {
		if schema.IsDataDefinition(child.Keyword) && !inherited[child.Arg] {
			s.convert(r, child, element)
		}
	}
}

// resolveExtends sets the base classes of cls to the classes of the
// groupings its statement uses.
func (s *GroupingClass) resolveExtends(r *Run, cls *apimodel.Class) error {
	uses := cls.Stmt().Search("uses")
	if len(uses) == 0 {
		return nil
	}
	extends := make([]*apimodel.Class, 0, len(uses))
	for _, u := range uses {
		var base *apimodel.Class
		if u.Grouping != nil {
			base, _ = r.Index.Class(u.Grouping)
		}
		if base == nil {
			return &ResolutionError{Kind: ErrUnresolvedGroupingReference, Element: apimodel.FQN(cls)}
		}
		extends = append(extends, base)
	}
	cls.Extends = extends
	return nil
}
