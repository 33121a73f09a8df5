// Package scanner reads YANG sources and produces the annotated schema trees
// the model builders consume.
//
// Sources are loaded into a goyang module set, which binds imports and
// includes and resolves typedefs, identities and groupings. The scanner
// copies those links onto its own statement tree, then expands uses, merges
// augments, records deviations and resolves leafref paths there.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Alia5/yapigen/internal/schema"
	"github.com/openconfig/goyang/pkg/yang"
)

// Result holds the scanned modules and submodules in input order.
type Result struct {
	Modules    []*schema.Node
	Submodules []*schema.Node
}

// Source is one named YANG text.
type Source struct {
	Name string
	Text string
}

// ScanFiles reads and scans the given files. A directory contributes every
// *.yang file directly inside it, in name order.
func ScanFiles(paths []string) (*Result, error) {
	var sources []Source
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		files := []string{p}
		if info.IsDir() {
			files, err = filepath.Glob(filepath.Join(p, "*.yang"))
			if err != nil {
				return nil, fmt.Errorf("failed to list %s: %w", p, err)
			}
			sort.Strings(files)
		}
		for _, f := range files {
			data, err := os.ReadFile(f)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", f, err)
			}
			sources = append(sources, Source{Name: f, Text: string(data)})
		}
	}
	return Scan(sources)
}

// ScanSources scans in-memory sources keyed by file name, in name order.
func ScanSources(sources map[string]string) (*Result, error) {
	names := make([]string, 0, len(sources))
	for n := range sources {
		names = append(names, n)
	}
	sort.Strings(names)
	list := make([]Source, 0, len(names))
	for _, n := range names {
		list = append(list, Source{Name: n, Text: sources[n]})
	}
	return Scan(list)
}

// Scan parses and annotates sources.
func Scan(sources []Source) (*Result, error) {
	s := newSession()
	for _, src := range sources {
		if err := s.parse(src); err != nil {
			return nil, err
		}
	}

	if errs := s.ms.Process(); len(errs) > 0 {
		return nil, fmt.Errorf("failed to resolve modules: %w", errors.Join(errs...))
	}
	for _, top := range s.tops {
		s.mergeIncludes(top)
	}
	s.resolveReferences()

	s.buildDataTrees()
	if err := s.applyAugments(); err != nil {
		return nil, err
	}
	for _, top := range s.tops {
		if err := s.recordDeviations(top); err != nil {
			return nil, fmt.Errorf("module %s: %w", top.Arg, err)
		}
	}
	s.resolveLeafrefs()

	res := &Result{}
	for _, top := range s.tops {
		if top.Keyword == "submodule" {
			res.Submodules = append(res.Submodules, top)
		} else {
			res.Modules = append(res.Modules, top)
		}
	}
	return res, nil
}

// session is the state of one Scan call.
type session struct {
	ms   *yang.Modules
	tops []*schema.Node
	// nodes maps goyang statements to the schema nodes copied from them.
	nodes map[*yang.Statement]*schema.Node
	asts  map[*schema.Node]*yang.Module
	// includes lists the submodules of each module.
	includes map[*schema.Node][]*schema.Node
	expanded map[*schema.Node]bool
}

func newSession() *session {
	return &session{
		ms:       yang.NewModules(),
		nodes:    make(map[*yang.Statement]*schema.Node),
		asts:     make(map[*schema.Node]*yang.Module),
		includes: make(map[*schema.Node][]*schema.Node),
		expanded: make(map[*schema.Node]bool),
	}
}
