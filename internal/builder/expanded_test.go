package builder_test

import (
	"testing"

	"github.com/Alia5/yapigen/internal/apimodel"
	"github.com/Alia5/yapigen/internal/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inlineEnumModule = `
module m {
  namespace "urn:m";
  prefix m;

  container A {
    leaf x {
      type enumeration {
        enum a;
        enum b;
      }
    }
    leaf y {
      type string;
    }
  }
}
`

func TestInlineEnumIsOwnedByPropertyOwner(t *testing.T) {
	packages := build(t, builder.KindExpandedTree, pythonOptions(), map[string]string{"m.yang": inlineEnumModule})
	require.Len(t, packages, 1)

	a := class(t, pkg(t, packages, "m"), "A")
	x := property(t, a, "x")

	e, ok := x.Type.(*apimodel.Enum)
	require.True(t, ok, "x should link to an enum, got %T", x.Type)
	assert.Equal(t, "XEnum", e.Name())
	assert.Equal(t, []apimodel.Literal{{Name: "a", Value: 0}, {Name: "b", Value: 1}}, e.Literals)
	assert.Same(t, a, e.Owner())
	assert.Equal(t, "m.A.XEnum", apimodel.FQN(e))

	var users int
	for _, p := range packages {
		apimodel.Walk(p, func(el apimodel.Element) bool {
			if prop, ok := el.(*apimodel.Property); ok && prop.Type == e {
				users++
			}
			return true
		})
	}
	assert.Equal(t, 1, users)
	assert.Nil(t, property(t, a, "y").Type)
}

func TestSharedTypedefEnumIsOneInstance(t *testing.T) {
	packages := build(t, builder.KindExpandedTree, pythonOptions(), map[string]string{"m.yang": `
module m {
  namespace "urn:m";
  prefix m;

  typedef admin-state {
    type enumeration {
      enum up { value 1; }
      enum down;
      enum testing { value 10; }
    }
  }

  container iface {
    leaf state { type admin-state; }
    leaf desired { type m:admin-state; }
  }
  container other {
    leaf state { type admin-state; }
  }
}
`})

	p := pkg(t, packages, "m")
	shared, ok := child(t, p, "AdminState").(*apimodel.Enum)
	require.True(t, ok)
	assert.Equal(t, []apimodel.Literal{{Name: "up", Value: 1}, {Name: "down", Value: 2}, {Name: "testing", Value: 10}}, shared.Literals)

	iface := class(t, p, "Iface")
	assert.Same(t, shared, property(t, iface, "state").Type)
	assert.Same(t, shared, property(t, iface, "desired").Type)
	assert.Same(t, shared, property(t, class(t, p, "Other"), "state").Type)

	var enums int
	apimodel.Walk(p, func(el apimodel.Element) bool {
		if _, ok := el.(*apimodel.Enum); ok {
			enums++
		}
		return true
	})
	assert.Equal(t, 1, enums)
}

func TestResolveIsIdempotent(t *testing.T) {
	res := scan(t, map[string]string{"m.yang": `
module m {
  namespace "urn:m";
  prefix m;

  typedef level { type enumeration { enum low; enum high; } }
  typedef flags { type bits { bit a; bit b; } }
  identity base-id;
  identity derived { base base-id; }

  container c {
    leaf l { type level; }
    leaf f { type flags; }
    leaf id { type identityref { base base-id; } }
  }
}
`})
	s := builder.NewExpandedTree(pythonOptions())
	run := s.Convert(res.Modules)
	for _, p := range run.Packages {
		require.NoError(t, s.Resolve(run, p))
	}

	c := class(t, run.Packages[0], "C")
	before := map[string]apimodel.Element{}
	for _, prop := range c.Properties() {
		before[prop.Name()] = prop.Type
	}
	require.NotNil(t, before["l"])
	require.NotNil(t, before["f"])
	require.NotNil(t, before["id"])

	derived := class(t, run.Packages[0], "DerivedIdentity")
	require.Len(t, derived.Extends, 1)
	base := derived.Extends[0]

	for _, p := range run.Packages {
		require.NoError(t, s.Resolve(run, p))
	}
	for _, prop := range c.Properties() {
		assert.Same(t, before[prop.Name()], prop.Type, prop.Name())
	}
	assert.Equal(t, []*apimodel.Class{base}, derived.Extends)
}

func TestIdentityClassesExtendTheirBases(t *testing.T) {
	packages := build(t, builder.KindExpandedTree, pythonOptions(), map[string]string{
		"types.yang": `
module types {
  namespace "urn:types";
  prefix t;
  identity crypto-alg;
}
`,
		"m.yang": `
module m {
  namespace "urn:m";
  prefix m;
  import types { prefix t; }

  identity aes { base t:crypto-alg; }
  identity aes-256 { base aes; }

  leaf alg { type identityref { base t:crypto-alg; } }
}
`,
	})

	base := class(t, pkg(t, packages, "types"), "CryptoAlgIdentity")
	m := pkg(t, packages, "m")
	aes := class(t, m, "AesIdentity")
	aes256 := class(t, m, "Aes256Identity")

	assert.True(t, aes.IsIdentity())
	assert.Equal(t, []*apimodel.Class{base}, aes.Extends)
	assert.Equal(t, []*apimodel.Class{aes}, aes256.Extends)
	assert.Same(t, base, property(t, m, "alg").Type)
}

func TestLeafrefToInlineEnumSharesTheTargetEnum(t *testing.T) {
	packages := build(t, builder.KindExpandedTree, pythonOptions(), map[string]string{"m.yang": `
module m {
  namespace "urn:m";
  prefix m;

  container c {
    list entry {
      key name;
      leaf name { type string; }
      leaf mode { type enumeration { enum on; enum off; } }
    }
    leaf selected-mode {
      type leafref { path "../entry/mode"; }
    }
    leaf absolute-mode {
      type leafref { path "/m:c/m:entry[m:name = current()/../name]/m:mode"; }
    }
  }
}
`})

	c := class(t, pkg(t, packages, "m"), "C")
	entry := class(t, c, "Entry")
	mode := property(t, entry, "mode")
	e, ok := mode.Type.(*apimodel.Enum)
	require.True(t, ok)

	assert.Same(t, e, property(t, c, "selected_mode").Type)
	assert.Same(t, e, property(t, c, "absolute_mode").Type)
}

func TestListKeysComeFirst(t *testing.T) {
	packages := build(t, builder.KindExpandedTree, pythonOptions(), map[string]string{"m.yang": `
module m {
  namespace "urn:m";
  prefix m;

  list server {
    key "port host";
    leaf weight { type uint8; }
    leaf host { type string; }
    leaf port { type uint16; }
  }
}
`})

	server := class(t, pkg(t, packages, "m"), "Server")
	assert.Equal(t, []string{"port", "host", "weight"}, names(server))
	assert.True(t, property(t, server, "port").IsKey())
	assert.True(t, property(t, server, "host").IsKey())
	assert.False(t, property(t, server, "weight").IsKey())
}

func TestClassNamedLikeAncestorGetsSuffix(t *testing.T) {
	packages := build(t, builder.KindExpandedTree, pythonOptions(), map[string]string{"m.yang": `
module m {
  namespace "urn:m";
  prefix m;

  container config {
    container system {
      container config {
        leaf class { type string; }
      }
    }
  }
}
`})

	outer := class(t, pkg(t, packages, "m"), "Config")
	system := class(t, outer, "System")
	inner := class(t, system, "Config_")
	assert.Equal(t, "m.Config.System.Config_", apimodel.FQN(inner))
	assert.NotNil(t, property(t, system, "config"))
	assert.NotNil(t, property(t, inner, "class_"))
}

func TestUnionMembersAreLifted(t *testing.T) {
	packages := build(t, builder.KindExpandedTree, pythonOptions(), map[string]string{"m.yang": `
module m {
  namespace "urn:m";
  prefix m;

  container c {
    leaf u {
      type union {
        type enumeration { enum auto; }
        type bits { bit x; bit y; }
        type union {
          type enumeration { enum none; }
        }
        type uint32;
      }
    }
  }
}
`})

	c := class(t, pkg(t, packages, "m"), "C")
	assert.Equal(t, []string{"u", "UEnum", "UBits", "UEnum2"}, names(c))
	assert.Nil(t, property(t, c, "u").Type)
	bits, ok := child(t, c, "UBits").(*apimodel.Bits)
	require.True(t, ok)
	assert.Equal(t, []apimodel.Bit{{Name: "x", Position: 0}, {Name: "y", Position: 1}}, bits.Bits)
}

func TestRPCInputIsNestedByDefault(t *testing.T) {
	const rpcModule = `
module m {
  namespace "urn:m";
  prefix m;

  rpc do-it {
    input { leaf arg { type string; } }
    output { leaf result { type string; } }
  }
  rpc ping;
}
`
	tests := []struct {
		name    string
		flatten bool
		want    []string
	}{
		{name: "nested", flatten: false, want: []string{"Input", "input", "Output", "output"}},
		{name: "flattened", flatten: true, want: []string{"Output", "output", "arg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := pythonOptions()
			opts.FlattenRPCInput = tt.flatten
			p := pkg(t, build(t, builder.KindExpandedTree, opts, map[string]string{"m.yang": rpcModule}), "m")

			assert.Equal(t, tt.want, names(class(t, p, "DoIt")))
			assert.Empty(t, class(t, p, "Ping").OwnedElements())
		})
	}
}

func TestBuildIsRepeatable(t *testing.T) {
	res := scan(t, map[string]string{"m.yang": inlineEnumModule})
	for i := 0; i < 2; i++ {
		packages, err := builder.Build(builder.NewExpandedTree(pythonOptions()), res.Modules)
		require.NoError(t, err)
		a := class(t, packages[0], "A")
		assert.Equal(t, []string{"x", "XEnum", "y"}, names(a))
	}
}
