package scanner

import (
	"fmt"

	"github.com/Alia5/yapigen/internal/schema"
)

// recordDeviations attaches the deviate statements of top to their targets
// and marks modules that only deviate as deviation modules.
func (s *session) recordDeviations(top *schema.Node) error {
	deviations := top.Search("deviation")
	for _, dev := range deviations {
		target := s.schemaNode(top, dev.Arg)
		if target == nil {
			return fmt.Errorf("deviation target %q not found", dev.Arg)
		}
		for _, d := range dev.Search("deviate") {
			entries := d.Subs
			if d.Arg == "not-supported" {
				entries = []*schema.Node{d}
			}
			for _, e := range entries {
				addDeviation(target, d.Arg, schema.Deviation{Module: s.owner(top), Stmt: e})
			}
		}
	}

	if top.Keyword == "module" && len(deviations) > 0 && !definesData(top) {
		top.IsDeviationModule = true
	}
	return nil
}

func addDeviation(target *schema.Node, kind string, d schema.Deviation) {
	for i := range target.Deviations {
		if target.Deviations[i].Kind == kind {
			target.Deviations[i].Entries = append(target.Deviations[i].Entries, d)
			return
		}
	}
	target.Deviations = append(target.Deviations, schema.DeviationSet{Kind: kind, Entries: []schema.Deviation{d}})
}

func definesData(top *schema.Node) bool {
	for _, sub := range top.Subs {
		if dataKeywords[sub.Keyword] || sub.Keyword == "uses" || sub.Keyword == "augment" {
			return true
		}
	}
	return false
}
