package builder

import (
	"github.com/Alia5/yapigen/internal/apimodel"
	"github.com/Alia5/yapigen/internal/schema"
)

// Index links schema nodes to the elements a run created for them. It
// replaces back-references on the schema tree: the tree stays untouched and
// the resolver looks elements up here.
//
// Enums and bits are keyed by their enumeration/bits type statement, every
// other element by the statement it was created for. Property, enum and bits
// lookups of a uses copy fall back to the grouping statement it came from.
type Index struct {
	packages   map[*schema.Node]*apimodel.Package
	classes    map[*schema.Node]*apimodel.Class
	properties map[*schema.Node]*apimodel.Property
	enums      map[*schema.Node]*apimodel.Enum
	bits       map[*schema.Node]*apimodel.Bits
}

func NewIndex() *Index {
	return &Index{
		packages:   make(map[*schema.Node]*apimodel.Package),
		classes:    make(map[*schema.Node]*apimodel.Class),
		properties: make(map[*schema.Node]*apimodel.Property),
		enums:      make(map[*schema.Node]*apimodel.Enum),
		bits:       make(map[*schema.Node]*apimodel.Bits),
	}
}

func (x *Index) Package(n *schema.Node) (*apimodel.Package, bool) {
	p, ok := x.packages[n]
	return p, ok
}

func (x *Index) Class(n *schema.Node) (*apimodel.Class, bool) {
	c, ok := x.classes[n]
	return c, ok
}

func (x *Index) Property(n *schema.Node) (*apimodel.Property, bool) {
	return lookup(x.properties, n)
}

func (x *Index) Enum(n *schema.Node) (*apimodel.Enum, bool) {
	return lookup(x.enums, n)
}

func (x *Index) Bits(n *schema.Node) (*apimodel.Bits, bool) {
	return lookup(x.bits, n)
}

func lookup[E any](m map[*schema.Node]E, n *schema.Node) (E, bool) {
	if e, ok := m[n]; ok || n == nil || n.Origin == nil {
		return e, ok
	}
	e, ok := m[n.Origin]
	return e, ok
}
