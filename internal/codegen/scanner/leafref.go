package scanner

import (
	"strings"

	"github.com/Alia5/yapigen/internal/schema"
)

// resolveLeafrefs links the leafref types of every leaf in the data trees
// and groupings to the leaf their path points at. Paths that cannot be
// followed are left unlinked.
func (s *session) resolveLeafrefs() {
	var walk func(n *schema.Node)
	walk = func(n *schema.Node) {
		if n.Keyword == "leaf" || n.Keyword == "leaf-list" {
			s.linkLeafref(n, n.Type(), 0)
		}
		for _, ch := range n.Children {
			walk(ch)
		}
	}
	for _, top := range s.tops {
		walk(top)
		var groupings func(n *schema.Node)
		groupings = func(n *schema.Node) {
			if n.Keyword == "grouping" {
				walk(n)
			}
			for _, sub := range n.Subs {
				groupings(sub)
			}
		}
		groupings(top)
	}
}

// linkLeafref resolves the leafref in t as seen from leaf. A leafref
// declared in a typedef is shared by every user, so only absolute paths are
// resolved there.
func (s *session) linkLeafref(leaf, t *schema.Node, depth int) {
	if t == nil || depth > maxUsesDepth {
		return
	}
	switch {
	case t.Arg == "leafref":
		if t.LeafrefTarget != nil {
			return
		}
		if p := t.SearchOne("path"); p != nil {
			t.LeafrefTarget = s.followPath(leaf, p)
		}
	case t.Arg == "union":
		for _, m := range schema.UnionMembers(t) {
			s.linkLeafref(leaf, m, depth+1)
		}
	case t.Typedef != nil:
		tt := t.Typedef.Type()
		if tt != nil && tt.Arg == "leafref" {
			if p := tt.SearchOne("path"); p != nil && strings.HasPrefix(strings.TrimSpace(p.Arg), "/") {
				s.linkLeafref(leaf, tt, depth+1)
			}
			return
		}
		s.linkLeafref(leaf, tt, depth+1)
	}
}

// followPath walks the leafref path statement p from leaf. Prefixes are
// those of the module p is written in. Predicates are ignored and choice and
// case nodes are transparent.
func (s *session) followPath(leaf, p *schema.Node) *schema.Node {
	path := strings.TrimSpace(stripPredicates(p.Arg))
	if path == "" || strings.Contains(path, "(") {
		return nil
	}

	cur := leaf
	if strings.HasPrefix(path, "/") {
		top := p.Top()
		first, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
		prefix, _ := splitPrefix(first)
		if cur = s.moduleByPrefix(top, prefix); cur == nil {
			return nil
		}
		path = strings.TrimPrefix(path, "/")
	}

	for _, step := range strings.Split(path, "/") {
		step = strings.TrimSpace(step)
		switch step {
		case "", ".":
			continue
		case "..":
			cur = dataParent(cur)
		default:
			_, name := splitPrefix(step)
			cur = dataChild(cur, name)
		}
		if cur == nil {
			return nil
		}
	}
	return cur
}

func dataParent(n *schema.Node) *schema.Node {
	p := n.Up
	for p != nil && (p.Keyword == "choice" || p.Keyword == "case") {
		p = p.Up
	}
	return p
}

func dataChild(n *schema.Node, name string) *schema.Node {
	for _, ch := range n.Children {
		if ch.Keyword == "choice" || ch.Keyword == "case" {
			if found := dataChild(ch, name); found != nil {
				return found
			}
			continue
		}
		if ch.Arg == name {
			return ch
		}
	}
	return nil
}

// stripPredicates removes every [...] block from path.
func stripPredicates(path string) string {
	var b strings.Builder
	depth := 0
	for _, r := range path {
		switch {
		case r == '[':
			depth++
		case r == ']' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
