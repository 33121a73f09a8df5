package scanner

import (
	"fmt"
	"sort"

	"github.com/Alia5/yapigen/internal/schema"
	"github.com/openconfig/goyang/pkg/yang"
)

// parse loads one source into the module set and copies the modules and
// submodules it defined.
func (s *session) parse(src Source) error {
	known := make(map[*yang.Module]bool)
	for _, m := range s.loaded() {
		known[m] = true
	}
	if err := s.ms.Parse(src.Text, src.Name); err != nil {
		return fmt.Errorf("failed to parse %s: %w", src.Name, err)
	}

	var added []*yang.Module
	for _, m := range s.loaded() {
		if !known[m] {
			added = append(added, m)
		}
	}
	sort.Slice(added, func(i, j int) bool { return added[i].Name < added[j].Name })

	for _, m := range added {
		for _, top := range s.tops {
			if top.Keyword == m.Kind() && top.Arg == m.Name {
				return fmt.Errorf("%s: duplicate %s %q", src.Name, m.Kind(), m.Name)
			}
		}
		top := s.convert(m.Statement(), nil, nil)
		s.asts[top] = m
		s.tops = append(s.tops, top)
	}
	return nil
}

// loaded lists every module and submodule of the set once. The set indexes
// each of them by name and by name@revision.
func (s *session) loaded() []*yang.Module {
	seen := make(map[*yang.Module]bool)
	var out []*yang.Module
	for _, set := range []map[string]*yang.Module{s.ms.Modules, s.ms.SubModules} {
		for _, m := range set {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

// convert copies a goyang statement into a schema node. Every node records
// its lexical scope tables; identities only exist at the top level.
func (s *session) convert(st *yang.Statement, parent, top *schema.Node) *schema.Node {
	n := &schema.Node{
		Keyword: st.Keyword,
		Arg:     st.Argument,
		Parent:  parent,
		Module:  top,
	}
	s.nodes[st] = n
	if top == nil {
		top = n
	}
	for _, sub := range st.SubStatements() {
		c := s.convert(sub, n, top)
		n.Subs = append(n.Subs, c)
		switch c.Keyword {
		case "typedef":
			n.Typedefs = append(n.Typedefs, c)
		case "grouping":
			n.Groupings = append(n.Groupings, c)
		case "identity":
			if parent == nil {
				n.Identities = append(n.Identities, c)
			}
		}
	}
	return n
}

// mergeIncludes adds the top-level definitions of included submodules to
// the scope tables of the module.
func (s *session) mergeIncludes(top *schema.Node) {
	m := s.asts[top]
	if m.Kind() != "module" {
		return
	}
	for _, inc := range m.Include {
		sub := s.node(inc.Module)
		if sub == nil {
			continue
		}
		s.includes[top] = append(s.includes[top], sub)
		top.Typedefs = append(top.Typedefs, sub.Typedefs...)
		top.Groupings = append(top.Groupings, sub.Groupings...)
		top.Identities = append(top.Identities, sub.Identities...)
	}
}

// owner returns the module whose namespace top belongs to.
func (s *session) owner(top *schema.Node) *schema.Node {
	m := s.asts[top]
	if m != nil && m.Kind() == "submodule" && m.BelongsTo != nil {
		if n := s.node(s.ms.Modules[m.BelongsTo.Name]); n != nil {
			return n
		}
	}
	return top
}

// moduleByPrefix returns the module a prefix names inside top. The empty
// prefix and the prefix of top itself name the owning module.
func (s *session) moduleByPrefix(top *schema.Node, prefix string) *schema.Node {
	m := s.asts[top]
	if m == nil {
		return nil
	}
	found := yang.FindModuleByPrefix(m, prefix)
	if found == nil {
		return nil
	}
	if found == m {
		return s.owner(top)
	}
	return s.node(found)
}

// node returns the schema node copied from a goyang node.
func (s *session) node(n yang.Node) *schema.Node {
	if n == nil || isNil(n) {
		return nil
	}
	return s.nodes[n.Statement()]
}
