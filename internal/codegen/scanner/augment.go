package scanner

import (
	"fmt"
	"strings"

	"github.com/Alia5/yapigen/internal/schema"
)

// applyAugments merges every top-level augment into its target. Augments
// can target nodes added by other augments, so unresolved ones are retried
// until a pass makes no progress.
func (s *session) applyAugments() error {
	var pending []*schema.Node
	for _, top := range s.tops {
		pending = append(pending, top.Search("augment")...)
	}

	for len(pending) > 0 {
		var next []*schema.Node
		for _, a := range pending {
			target := s.schemaNode(a.Top(), a.Arg)
			if target == nil {
				next = append(next, a)
				continue
			}
			children, _ := s.collect(a.Subs, 0)
			for _, ch := range children {
				s.adopt(target, ch.node, ch.depth)
			}
		}
		if len(next) == len(pending) {
			a := next[0]
			return fmt.Errorf("module %s: augment target %q not found", a.Top().Arg, a.Arg)
		}
		pending = next
	}
	return nil
}

// schemaNode resolves an absolute schema node id ("/p:a/p:b") written in
// top. At each step a child in the namespace named by the prefix wins over
// a child that only matches by name.
func (s *session) schemaNode(top *schema.Node, path string) *schema.Node {
	if !strings.HasPrefix(path, "/") {
		return nil
	}
	var cur *schema.Node
	for _, step := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		prefix, name := splitPrefix(strings.TrimSpace(step))
		ns := s.moduleByPrefix(top, prefix)
		if ns == nil {
			return nil
		}
		if cur == nil {
			cur = ns
		}
		cur = childIn(cur, name, ns.Arg)
		if cur == nil {
			return nil
		}
	}
	return cur
}

func childIn(n *schema.Node, name, namespace string) *schema.Node {
	var byName *schema.Node
	for _, ch := range n.Children {
		if ch.Arg != name {
			continue
		}
		if ch.Namespace() == namespace {
			return ch
		}
		if byName == nil {
			byName = ch
		}
	}
	return byName
}
