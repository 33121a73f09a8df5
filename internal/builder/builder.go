// Package builder turns annotated YANG module trees into the cross-referenced
// API meta-model.
//
// A build is two strictly sequential passes. Convert walks the schema once,
// top-down, creating the element skeleton and recording which element was
// made for which schema node in the run's Index. Resolve then walks every
// package and rewrites forward references (enum, bits and identity types,
// base classes) into direct element links.
//
// Two strategies share the conversion and resolution logic: ExpandedTree
// flattens groupings into the classes that use them, GroupingClass turns each
// grouping into a base class.
package builder

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/yapigen/internal/apimodel"
	"github.com/Alia5/yapigen/internal/log"
	"github.com/Alia5/yapigen/internal/schema"
)

// Strategy is one way of mapping schema trees to the meta-model.
type Strategy interface {
	// Convert runs the structural pass. The returned run lists the packages
	// in resolution order.
	Convert(modules []*schema.Node) *Run
	// Resolve runs the cross-reference pass over e and everything it owns.
	Resolve(run *Run, e apimodel.Element) error
}

// Kind selects a strategy.
type Kind string

const (
	KindExpandedTree  Kind = "expanded"
	KindGroupingClass Kind = "grouping"
)

// TypeClassifier reports which built-in type a node's type resolves to.
// schema.Classifier is the default implementation.
type TypeClassifier interface {
	Enum(n *schema.Node) *schema.Node
	Bits(n *schema.Node) *schema.Node
	Union(n *schema.Node) *schema.Node
	IdentityRef(n *schema.Node) *schema.Node
}

// Options configure a strategy.
type Options struct {
	Logger     *slog.Logger
	Trace      log.TraceLogger
	Classifier TypeClassifier
	Namer      apimodel.Namer
	// FlattenRPCInput walks rpc input children as direct rpc children, for
	// targets that cannot nest input blocks inside the rpc class.
	FlattenRPCInput bool
}

// New returns the strategy for kind.
func New(kind Kind, opts Options) (Strategy, error) {
	switch kind {
	case KindExpandedTree:
		return NewExpandedTree(opts), nil
	case KindGroupingClass:
		return NewGroupingClass(opts), nil
	default:
		return nil, fmt.Errorf("unknown builder strategy %q", kind)
	}
}

// Build converts modules with s and resolves every resulting package.
// On a resolution error no packages are returned.
func Build(s Strategy, modules []*schema.Node) ([]*apimodel.Package, error) {
	run := s.Convert(modules)
	for _, p := range run.Packages {
		if err := s.Resolve(run, p); err != nil {
			return nil, fmt.Errorf("resolve package %s: %w", p.Name(), err)
		}
	}
	return run.Packages, nil
}

// Run is the state of one build: the packages created so far and the
// side-tables linking schema nodes to elements.
type Run struct {
	// Packages in resolution order: ordinary modules, then deviation modules.
	Packages  []*apimodel.Package
	Index     *Index
	Namespace *Namespace

	deviations map[string]*apimodel.Package
	hoisted    map[*schema.Node]bool
}

func newRun() *Run {
	return &Run{
		Index:      NewIndex(),
		Namespace:  NewNamespace(),
		deviations: make(map[string]*apimodel.Package),
		hoisted:    make(map[*schema.Node]bool),
	}
}

// DeviationPackage returns the package built for a deviation module.
func (r *Run) DeviationPackage(module string) (*apimodel.Package, bool) {
	p, ok := r.deviations[module]
	return p, ok
}

func withDefaults(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Trace == nil {
		opts.Trace = log.NewTrace(nil)
	}
	if opts.Classifier == nil {
		opts.Classifier = schema.Classifier{}
	}
	return opts
}
