package meta

import (
	"github.com/Alia5/yapigen/internal/apimodel"
	"github.com/Alia5/yapigen/internal/builder"
)

// Metadata holds the resolved API model for one target language.
// Shared between the generator orchestrator and the output writers.
type Metadata struct {
	Language string
	Strategy builder.Kind
	// Packages in resolution order: ordinary modules, then deviation modules.
	Packages []*apimodel.Package
	// Submodules are the empty packages of the scanned submodules.
	Submodules []*apimodel.Package
}

// AllPackages returns Packages followed by Submodules.
func (md *Metadata) AllPackages() []*apimodel.Package {
	out := make([]*apimodel.Package, 0, len(md.Packages)+len(md.Submodules))
	out = append(out, md.Packages...)
	return append(out, md.Submodules...)
}
