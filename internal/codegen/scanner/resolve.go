package scanner

import (
	"reflect"
	"strings"

	"github.com/Alia5/yapigen/internal/schema"
	"github.com/openconfig/goyang/pkg/yang"
)

// splitPrefix splits "prefix:name". The prefix is empty for plain names.
func splitPrefix(s string) (prefix, name string) {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

// resolveReferences copies the links goyang resolved onto the schema nodes:
// the typedef and identityref base of every type, the grouping of every
// uses and the bases of every identity. Names goyang could not resolve are
// left unlinked.
func (s *session) resolveReferences() {
	var all []yang.Node
	seen := make(map[yang.Node]bool)
	for _, top := range s.tops {
		all = collectAST(s.asts[top], seen, all)
	}

	// Process only builds entries, and so resolves leaf types, for
	// groupings some data node uses. Unused groupings and the bodies of
	// uses augments get theirs here.
	for _, an := range all {
		switch a := an.(type) {
		case *yang.Grouping:
			yang.ToEntry(a)
		case *yang.Uses:
			if a.Augment != nil {
				yang.ToEntry(a.Augment)
			}
		}
	}

	for _, an := range all {
		n := s.node(an)
		if n == nil {
			continue
		}
		switch a := an.(type) {
		case *yang.Type:
			s.linkType(n, a)
		case *yang.Uses:
			if g := yang.FindGrouping(a, a.Name, map[string]bool{}); g != nil {
				n.Grouping = s.node(g)
			}
		case *yang.Identity:
			for _, b := range a.Base {
				if id := s.identity(a, b.Name); id != nil {
					n.Bases = append(n.Bases, id)
				}
			}
		}
	}
}

func (s *session) linkType(n *schema.Node, t *yang.Type) {
	yt := t.YangType
	if yt == nil {
		return
	}
	if yt.Base != nil {
		if td, ok := yt.Base.Parent.(*yang.Typedef); ok {
			n.Typedef = s.node(td)
		}
	}
	if t.Name == "identityref" && yt.IdentityBase != nil {
		n.IdentityBase = s.node(yt.IdentityBase)
	}
}

// identity finds the identity ref names as seen from n, searching the
// module its prefix names and the submodules that module includes.
func (s *session) identity(n yang.Node, ref string) *schema.Node {
	prefix, name := splitPrefix(ref)
	m := yang.FindModuleByPrefix(n, prefix)
	if m == nil {
		return nil
	}
	if m.Kind() == "submodule" && m.BelongsTo != nil {
		if o := s.ms.Modules[m.BelongsTo.Name]; o != nil {
			m = o
		}
	}
	scopes := []*yang.Module{m}
	for _, inc := range m.Include {
		if inc.Module != nil {
			scopes = append(scopes, inc.Module)
		}
	}
	for _, scope := range scopes {
		for _, id := range scope.Identities() {
			if id.Name == name {
				return s.node(id)
			}
		}
	}
	return nil
}

// collectAST appends every node reachable from n through the exported node
// fields of the goyang AST, skipping parent links and raw statements.
func collectAST(n yang.Node, seen map[yang.Node]bool, out []yang.Node) []yang.Node {
	if n == nil || isNil(n) || seen[n] {
		return out
	}
	if _, raw := n.(*yang.Statement); raw {
		return out
	}
	seen[n] = true
	out = append(out, n)

	v := reflect.ValueOf(n).Elem()
	if v.Kind() != reflect.Struct {
		return out
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Name == "Parent" {
			continue
		}
		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.Ptr, reflect.Interface:
			if child, ok := fv.Interface().(yang.Node); ok {
				out = collectAST(child, seen, out)
			}
		case reflect.Slice:
			for j := 0; j < fv.Len(); j++ {
				if child, ok := fv.Index(j).Interface().(yang.Node); ok {
					out = collectAST(child, seen, out)
				}
			}
		}
	}
	return out
}

func isNil(n yang.Node) bool {
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func find(nodes []*schema.Node, name string) *schema.Node {
	for _, n := range nodes {
		if n.Arg == name {
			return n
		}
	}
	return nil
}
