package schema_test

import (
	"testing"

	"github.com/Alia5/yapigen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(kw, arg string, subs ...*schema.Node) *schema.Node {
	n := &schema.Node{Keyword: kw, Arg: arg, Subs: subs}
	for _, s := range subs {
		s.Parent = n
	}
	return n
}

func TestClassifier(t *testing.T) {
	enumType := node("type", "enumeration", node("enum", "a"))
	enumTypedef := node("typedef", "state", enumType)
	derived := node("type", "state")
	derived.Typedef = enumTypedef

	enumLeaf := node("leaf", "s", derived)

	ref := node("type", "leafref", node("path", "../s"))
	ref.LeafrefTarget = enumLeaf
	refLeaf := node("leaf", "r", ref)

	union := node("type", "union", node("type", "bits"), node("type", "string"))
	unionTypedef := node("typedef", "mixed", union)
	unionRef := node("type", "mixed")
	unionRef.Typedef = unionTypedef
	unionLeaf := node("leaf", "u", unionRef)

	idref := node("type", "identityref", node("base", "b"))
	idLeaf := node("leaf", "i", idref)

	type testCase struct {
		name        string
		n           *schema.Node
		enum        *schema.Node
		bits        *schema.Node
		union       *schema.Node
		identityRef *schema.Node
	}
	testCases := []testCase{
		{name: "typedef enum", n: enumLeaf, enum: enumType},
		{name: "typedef itself", n: enumTypedef, enum: enumType},
		{name: "type statement", n: enumType, enum: enumType},
		{name: "leafref to enum", n: refLeaf, enum: enumType},
		{name: "union typedef", n: unionLeaf, union: union},
		{name: "identityref", n: idLeaf, identityRef: idref},
		{name: "no type", n: node("container", "c")},
	}

	var c schema.Classifier
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Same(t, tc.enum, c.Enum(tc.n))
			assert.Same(t, tc.bits, c.Bits(tc.n))
			assert.Same(t, tc.union, c.Union(tc.n))
			assert.Same(t, tc.identityRef, c.IdentityRef(tc.n))
		})
	}

	assert.Len(t, schema.UnionMembers(union), 2)
}

func TestClassifierStopsOnTypedefCycle(t *testing.T) {
	td := node("typedef", "loop", node("type", "loop"))
	td.Subs[0].Typedef = td
	leaf := node("leaf", "x", node("type", "loop"))
	leaf.Subs[0].Typedef = td

	assert.Nil(t, schema.Classifier{}.Enum(leaf))
}

func TestWithReplacedType(t *testing.T) {
	m := &schema.Node{Keyword: "module", Arg: "m"}
	orig := node("type", "string")
	desc := node("description", "d")
	leaf := node("leaf", "x", desc, orig)
	leaf.Module = m
	leaf.Deviations = []schema.DeviationSet{{Kind: "replace"}}

	repl := node("type", "uint8")
	patched := leaf.WithReplacedType(repl)

	require.NotSame(t, leaf, patched)
	assert.Same(t, orig, leaf.Type())
	assert.Same(t, repl, patched.Type())
	assert.Same(t, desc, patched.Subs[0])
	assert.Len(t, leaf.Subs, 2)
	assert.Len(t, patched.Subs, 2)
	assert.Nil(t, patched.Deviations)
	assert.NotNil(t, leaf.Deviations)
	assert.Same(t, m, patched.Top())

	bare := node("anyxml", "blob")
	withType := bare.WithReplacedType(repl)
	assert.Empty(t, bare.Subs)
	assert.Same(t, repl, withType.Type())
}

func TestPathAndNamespace(t *testing.T) {
	mod := &schema.Node{Keyword: "module", Arg: "acme"}
	sub := node("submodule", "acme-sub", node("belongs-to", "acme"))
	c := &schema.Node{Keyword: "container", Arg: "box", Module: sub, Up: mod}
	leaf := &schema.Node{Keyword: "leaf", Arg: "size", Module: sub, Up: c}

	assert.Equal(t, "acme", leaf.Namespace())
	assert.Equal(t, "/acme:box/size", leaf.Path())
	assert.Same(t, sub, leaf.Top())
	assert.Same(t, mod, mod.Top())
}

func TestSearch(t *testing.T) {
	n := node("list", "l", node("key", "a"), node("leaf", "a"), node("leaf", "b"))
	assert.Equal(t, "a", n.SearchOne("key").Arg)
	assert.Len(t, n.Search("leaf"), 2)
	assert.Nil(t, n.SearchOne("type"))

	var missing *schema.Node
	assert.Nil(t, missing.SearchOne("type"))
	assert.True(t, schema.IsDataDefinition("leaf-list"))
	assert.False(t, schema.IsDataDefinition("rpc"))
}
