package builder_test

import (
	"testing"

	"github.com/Alia5/yapigen/internal/apimodel"
	"github.com/Alia5/yapigen/internal/builder"
	"github.com/Alia5/yapigen/internal/codegen/common"
	"github.com/Alia5/yapigen/internal/codegen/scanner"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, sources map[string]string) *scanner.Result {
	t.Helper()
	res, err := scanner.ScanSources(sources)
	require.NoError(t, err)
	return res
}

func pythonOptions() builder.Options {
	return builder.Options{Namer: apimodel.Namer{IsKeyword: common.KeywordChecker("python")}}
}

func build(t *testing.T, kind builder.Kind, opts builder.Options, sources map[string]string) []*apimodel.Package {
	t.Helper()
	s, err := builder.New(kind, opts)
	require.NoError(t, err)
	packages, err := builder.Build(s, scan(t, sources).Modules)
	require.NoError(t, err)
	return packages
}

func pkg(t *testing.T, packages []*apimodel.Package, name string) *apimodel.Package {
	t.Helper()
	for _, p := range packages {
		if p.Name() == name {
			return p
		}
	}
	require.FailNowf(t, "package not found", "%s", name)
	return nil
}

func child(t *testing.T, c apimodel.Container, name string) apimodel.Element {
	t.Helper()
	for _, e := range c.OwnedElements() {
		if e.Name() == name {
			return e
		}
	}
	require.FailNowf(t, "element not found", "%s in %s", name, apimodel.FQN(c))
	return nil
}

func names(c apimodel.Container) []string {
	var out []string
	for _, e := range c.OwnedElements() {
		out = append(out, e.Name())
	}
	return out
}

func class(t *testing.T, c apimodel.Container, name string) *apimodel.Class {
	t.Helper()
	cls, ok := child(t, c, name).(*apimodel.Class)
	require.True(t, ok, "%s is not a class", name)
	return cls
}

func property(t *testing.T, c apimodel.Container, name string) *apimodel.Property {
	t.Helper()
	p, ok := child(t, c, name).(*apimodel.Property)
	require.True(t, ok, "%s is not a property", name)
	return p
}
