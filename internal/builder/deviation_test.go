package builder_test

import (
	"testing"

	"github.com/Alia5/yapigen/internal/apimodel"
	"github.com/Alia5/yapigen/internal/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deviatedBase = `
module base {
  namespace "urn:base";
  prefix b;

  container sys {
    leaf mode { type string; }
    leaf legacy { type string; }
  }
}
`

func TestTypeDeviationLeavesTargetUntouched(t *testing.T) {
	res := scan(t, map[string]string{
		"base.yang": deviatedBase,
		"dev.yang": `
module dev {
  namespace "urn:dev";
  prefix d;
  import base { prefix b; }

  deviation /b:sys/b:mode {
    deviate replace {
      type enumeration { enum fast; enum slow; }
    }
  }
  deviation /b:sys/b:legacy {
    deviate not-supported;
  }
}
`,
	})
	require.Len(t, res.Modules, 2)
	dev := res.Modules[1]
	require.True(t, dev.IsDeviationModule)

	packages, err := builder.Build(builder.NewExpandedTree(pythonOptions()), res.Modules)
	require.NoError(t, err)
	require.Len(t, packages, 2)
	assert.Equal(t, "base", packages[0].Name())
	assert.Equal(t, "dev", packages[1].Name())

	sys := class(t, packages[0], "Sys")
	mode := property(t, sys, "mode")
	assert.Nil(t, mode.Type)
	assert.Equal(t, "string", mode.Stmt().Type().Arg)

	devPkg := packages[1]
	require.Len(t, devPkg.OwnedElements(), 2)

	replace, ok := child(t, devPkg, "mode").(*apimodel.Deviation)
	require.True(t, ok)
	assert.Equal(t, "replace", replace.Kind)
	assert.Same(t, sys, replace.Patches)
	assert.NotSame(t, mode.Stmt(), replace.Target)
	assert.Equal(t, "enumeration", replace.Target.Type().Arg)
	require.Len(t, replace.Stmts(), 1)
	assert.Equal(t, "type", replace.Stmts()[0].Keyword)

	patched := property(t, replace, "mode")
	e, ok := patched.Type.(*apimodel.Enum)
	require.True(t, ok)
	assert.Same(t, replace, e.Owner())
	assert.Equal(t, "dev.mode.ModeEnum", apimodel.FQN(e))

	gone, ok := child(t, devPkg, "legacy").(*apimodel.Deviation)
	require.True(t, ok)
	assert.Equal(t, "not-supported", gone.Kind)
	assert.Empty(t, gone.OwnedElements())
	require.Len(t, gone.Stmts(), 1)
	assert.Equal(t, "deviate", gone.Stmts()[0].Keyword)

	// the original tree still sees the original type
	orig := res.Modules[0].Children[0].Children[0]
	assert.Equal(t, "mode", orig.Arg)
	assert.Equal(t, "string", orig.Type().Arg)
}

func TestReplacementTypeFromDeviationModuleTypedef(t *testing.T) {
	packages := build(t, builder.KindExpandedTree, pythonOptions(), map[string]string{
		"base.yang": deviatedBase,
		"dev.yang": `
module dev {
  namespace "urn:dev";
  prefix d;
  import base { prefix b; }

  typedef speed {
    type enumeration { enum fast; enum slow; }
  }

  deviation /b:sys/b:mode {
    deviate replace { type d:speed; }
  }
}
`,
	})
	devPkg := pkg(t, packages, "dev")
	speed, ok := child(t, devPkg, "Speed").(*apimodel.Enum)
	require.True(t, ok)

	replace, ok := child(t, devPkg, "mode").(*apimodel.Deviation)
	require.True(t, ok)
	assert.Same(t, speed, property(t, replace, "mode").Type)
}

func TestDeviationsOfOneKindShareAnElement(t *testing.T) {
	packages := build(t, builder.KindExpandedTree, pythonOptions(), map[string]string{
		"base.yang": deviatedBase,
		"dev.yang": `
module dev {
  namespace "urn:dev";
  prefix d;
  import base { prefix b; }

  deviation /b:sys/b:mode {
    deviate add { default "auto"; }
  }
  deviation /b:sys/b:mode {
    deviate add { must "true()"; }
  }
}
`,
	})

	devPkg := pkg(t, packages, "dev")
	require.Len(t, devPkg.OwnedElements(), 1)
	d, ok := devPkg.OwnedElements()[0].(*apimodel.Deviation)
	require.True(t, ok)
	assert.Equal(t, "add", d.Kind)

	var kw []string
	for _, s := range d.Stmts() {
		kw = append(kw, s.Keyword)
	}
	assert.Equal(t, []string{"default", "must"}, kw)
}
