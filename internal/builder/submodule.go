package builder

import (
	"github.com/Alia5/yapigen/internal/apimodel"
	"github.com/Alia5/yapigen/internal/schema"
)

// PackageSubmodules returns one empty package per submodule. The content of
// a submodule is built as part of the module that includes it.
func PackageSubmodules(submodules []*schema.Node, namer apimodel.Namer) []*apimodel.Package {
	packages := make([]*apimodel.Package, 0, len(submodules))
	for _, sub := range submodules {
		packages = append(packages, apimodel.NewPackage(sub, namer.PackageName(sub.Arg)))
	}
	return packages
}
