package builder_test

import (
	"errors"
	"testing"

	"github.com/Alia5/yapigen/internal/apimodel"
	"github.com/Alia5/yapigen/internal/builder"
	"github.com/Alia5/yapigen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupingBecomesBaseClass(t *testing.T) {
	packages := build(t, builder.KindGroupingClass, pythonOptions(), map[string]string{"m.yang": `
module m {
  namespace "urn:m";
  prefix m;

  grouping G {
    leaf y { type string; }
  }
  container C {
    uses G;
    leaf z { type int32; }
  }
}
`})
	require.Len(t, packages, 1)
	p := packages[0]

	g := class(t, p, "G")
	c := class(t, p, "C")
	assert.True(t, g.IsGrouping())
	assert.Equal(t, []string{"y"}, names(g))
	assert.Equal(t, []*apimodel.Class{g}, c.Extends)
	assert.Equal(t, []string{"z"}, names(c))
	assert.Empty(t, g.Extends)
}

func TestGroupingRegistersInlineEnums(t *testing.T) {
	res := scan(t, map[string]string{"m.yang": `
module m {
  namespace "urn:m";
  prefix m;

  grouping settings {
    leaf level { type enumeration { enum low; enum high; } }
  }
  container box {
    container inner {
      uses settings;
    }
  }
}
`})
	s := builder.NewGroupingClass(pythonOptions())
	run := s.Convert(res.Modules)
	for _, p := range run.Packages {
		require.NoError(t, s.Resolve(run, p))
	}

	settings := class(t, run.Packages[0], "Settings")
	level := property(t, settings, "level")
	e, ok := run.Index.Enum(level.Stmt().Type())
	require.True(t, ok)
	assert.Same(t, e, level.Type)

	box := class(t, run.Packages[0], "Box")
	inner := class(t, box, "Inner")
	assert.Equal(t, []*apimodel.Class{settings}, inner.Extends)
	assert.Empty(t, inner.OwnedElements())
}

func TestGroupingLeafrefToInheritedLeaf(t *testing.T) {
	sources := map[string]string{"m.yang": `
module m {
  namespace "urn:m";
  prefix m;

  grouping G {
    leaf mode { type enumeration { enum on; enum off; } }
    leaf flags { type bits { bit a; bit b; } }
  }
  container C {
    uses G;
    leaf sel { type leafref { path "../mode"; } }
    leaf mask { type leafref { path "/m:C/m:flags"; } }
  }
}
`}

	type testCase struct {
		kind builder.Kind
	}
	testCases := []testCase{
		{kind: builder.KindGroupingClass},
		{kind: builder.KindExpandedTree},
	}
	for _, tc := range testCases {
		t.Run(string(tc.kind), func(t *testing.T) {
			p := build(t, tc.kind, pythonOptions(), sources)[0]
			c := class(t, p, "C")

			var mode, flags *apimodel.Property
			if tc.kind == builder.KindGroupingClass {
				g := class(t, p, "G")
				mode, flags = property(t, g, "mode"), property(t, g, "flags")
			} else {
				mode, flags = property(t, c, "mode"), property(t, c, "flags")
			}
			require.IsType(t, &apimodel.Enum{}, mode.Type)
			require.IsType(t, &apimodel.Bits{}, flags.Type)
			assert.Same(t, mode.Type, property(t, c, "sel").Type)
			assert.Same(t, flags.Type, property(t, c, "mask").Type)
		})
	}
}

func TestGroupingStrategySkipsDeviationModules(t *testing.T) {
	packages := build(t, builder.KindGroupingClass, pythonOptions(), map[string]string{
		"base.yang": `
module base {
  namespace "urn:base";
  prefix b;
  container sys { leaf mode { type string; } }
}
`,
		"dev.yang": `
module dev {
  namespace "urn:dev";
  prefix d;
  import base { prefix b; }
  deviation /b:sys/b:mode { deviate not-supported; }
}
`,
	})
	require.Len(t, packages, 1)
	assert.Equal(t, "base", packages[0].Name())
}

func TestUnbuiltGroupingIsReported(t *testing.T) {
	orphan := &schema.Node{Keyword: "grouping", Arg: "G"}
	m := &schema.Node{Keyword: "module", Arg: "m"}
	c := &schema.Node{Keyword: "container", Arg: "C", Parent: m, Module: m, Up: m}
	u := &schema.Node{Keyword: "uses", Arg: "other:G", Parent: c, Module: m, Grouping: orphan}
	c.Subs = []*schema.Node{u}
	m.Subs = []*schema.Node{c}
	m.Children = []*schema.Node{c}

	packages, err := builder.Build(builder.NewGroupingClass(pythonOptions()), []*schema.Node{m})
	require.Error(t, err)
	assert.Nil(t, packages)
	assert.True(t, errors.Is(err, builder.ErrUnresolvedGroupingReference))

	var rerr *builder.ResolutionError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "m.C", rerr.Element)
	assert.Contains(t, err.Error(), "m.C")
}
