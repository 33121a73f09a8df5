package scanner

import (
	"strings"

	"github.com/Alia5/yapigen/internal/schema"
)

// maxUsesDepth bounds nested uses expansion so a grouping that uses itself
// cannot recurse forever.
const maxUsesDepth = 32

// dataKeywords are the statements that appear in the expanded data tree.
var dataKeywords = map[string]bool{
	"container": true, "leaf": true, "leaf-list": true, "list": true,
	"choice": true, "case": true, "anyxml": true, "anydata": true,
	"rpc": true, "action": true, "input": true, "output": true,
	"notification": true,
}

// buildDataTrees computes Children, Up and Key for every module and for
// every grouping, so groupings can be inspected on their own.
func (s *session) buildDataTrees() {
	for _, top := range s.tops {
		if top.Keyword != "module" {
			continue
		}
		subs := append([]*schema.Node(nil), top.Subs...)
		for _, sub := range s.includes[top] {
			subs = append(subs, sub.Subs...)
		}
		s.expand(top, subs, 0)
	}
	for _, top := range s.tops {
		var walk func(n *schema.Node)
		walk = func(n *schema.Node) {
			if n.Keyword == "grouping" {
				s.expand(n, n.Subs, 0)
			}
			for _, sub := range n.Subs {
				walk(sub)
			}
		}
		walk(top)
	}
}

// expand sets the data children of n from subs, replacing uses by copies of
// the grouping contents, and expands every child in turn.
func (s *session) expand(n *schema.Node, subs []*schema.Node, depth int) {
	if s.expanded[n] {
		return
	}
	s.expanded[n] = true

	children, augments := s.collect(subs, depth)
	for _, ch := range children {
		s.adopt(n, ch.node, ch.depth)
	}
	for _, a := range augments {
		target := descendant(n, a.Arg)
		if target == nil {
			continue
		}
		more, _ := s.collect(a.Subs, depth+1)
		for _, ch := range more {
			s.adopt(target, ch.node, ch.depth)
		}
	}

	if n.Keyword == "rpc" || n.Keyword == "action" {
		addImplicitIO(n)
	}
	if n.Keyword == "list" {
		n.Key = keyLeaves(n)
	}
}

type collected struct {
	node  *schema.Node
	depth int
}

// collect returns the data statements of subs with every uses replaced by
// fresh copies of its grouping's statements, plus the augments those uses
// carry.
func (s *session) collect(subs []*schema.Node, depth int) ([]collected, []*schema.Node) {
	var out []collected
	var augments []*schema.Node
	for _, sub := range subs {
		switch {
		case sub.Keyword == "uses":
			g := sub.Grouping
			if g == nil || depth >= maxUsesDepth {
				continue
			}
			copies := make([]*schema.Node, 0, len(g.Subs))
			for _, gs := range g.Subs {
				copies = append(copies, clone(gs, sub))
			}
			used, usedAugments := s.collect(copies, depth+1)
			out = append(out, used...)
			augments = append(augments, usedAugments...)
			augments = append(augments, sub.Search("augment")...)
		case dataKeywords[sub.Keyword]:
			out = append(out, collected{node: sub, depth: depth})
		}
	}
	return out, augments
}

// adopt appends ch to the data children of n and expands it.
func (s *session) adopt(n, ch *schema.Node, depth int) {
	ch.Up = n
	n.Children = append(n.Children, ch)
	s.expand(ch, ch.Subs, depth)
}

// clone deep-copies a statement subtree under parent. Resolved definitions
// are shared with the original; data tree fields are left for expansion.
func clone(n, parent *schema.Node) *schema.Node {
	c := *n
	c.Parent = parent
	c.Children = nil
	c.Up = nil
	c.Key = nil
	c.LeafrefTarget = nil
	if c.Origin == nil {
		c.Origin = n
	}
	c.Subs = make([]*schema.Node, len(n.Subs))
	for i, sub := range n.Subs {
		c.Subs[i] = clone(sub, &c)
	}
	return &c
}

// addImplicitIO gives an rpc or action empty input and output nodes when
// it does not declare them.
func addImplicitIO(n *schema.Node) {
	for _, kw := range []string{"input", "output"} {
		found := false
		for _, ch := range n.Children {
			if ch.Keyword == kw {
				found = true
				break
			}
		}
		if found {
			continue
		}
		io := &schema.Node{Keyword: kw, Arg: kw, Parent: n, Module: n.Module, Up: n}
		n.Children = append(n.Children, io)
	}
}

// keyLeaves returns the children of a list named by its key statement.
func keyLeaves(list *schema.Node) []*schema.Node {
	k := list.SearchOne("key")
	if k == nil {
		return nil
	}
	var out []*schema.Node
	for _, name := range strings.Fields(k.Arg) {
		_, name = splitPrefix(name)
		for _, ch := range list.Children {
			if ch.Arg == name && ch.Keyword == "leaf" {
				out = append(out, ch)
				break
			}
		}
	}
	return out
}

// descendant follows a descendant schema node id ("a/p:b") from n.
func descendant(n *schema.Node, path string) *schema.Node {
	cur := n
	for _, step := range strings.Split(strings.Trim(path, "/"), "/") {
		_, name := splitPrefix(step)
		cur = find(cur.Children, name)
		if cur == nil {
			return nil
		}
	}
	return cur
}
