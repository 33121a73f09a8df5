package builder

import (
	"github.com/Alia5/yapigen/internal/apimodel"
	"github.com/Alia5/yapigen/internal/schema"
)

// applyDeviations records the deviations of target in the packages of the
// deviating modules. owner is the element that holds target's element.
//
// Each (kind, module) pair gets one Deviation element. A type replacement
// never touches target: the deviation gets a copy of target with the new
// type and its own property built from that copy.
func (c *core) applyDeviations(r *Run, target *schema.Node, owner apimodel.Container) {
	for _, set := range target.Deviations {
		perPackage := make(map[*apimodel.Package]*apimodel.Deviation)
		for _, entry := range set.Entries {
			pkg, ok := r.DeviationPackage(entry.Module.Arg)
			if !ok {
				c.opts.Logger.Warn("Skipping deviation from a module that is not a deviation module",
					"module", entry.Module.Arg, "target", target.Path(), "kind", set.Kind)
				continue
			}

			d, ok := perPackage[pkg]
			if !ok {
				d = apimodel.NewDeviation(set.Kind, target, owner)
				perPackage[pkg] = d
			}
			d.AddStmt(entry.Stmt)

			if entry.Stmt.Keyword == "type" {
				patched := target.WithReplacedType(entry.Stmt)
				d.Target = patched
				r.Namespace.alias(patched, target)
				c.addLeaf(r, patched, d, leafOptions{unions: true})
			}

			if !pkg.Owns(d) {
				pkg.Add(d)
				c.trace("deviation", d)
			}
		}
	}
}
