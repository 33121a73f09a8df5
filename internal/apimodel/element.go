// Package apimodel is the language-independent API meta-model produced by
// the builders: packages own classes, properties, enums, bits and
// deviations, and every element keeps a reference to the schema statement it
// was derived from.
//
// The tree is built in one pass and then cross-referenced; only
// Property.Type and Class.Extends change during resolution. Emitters must
// treat the finished tree as read-only.
package apimodel

import (
	"strconv"
	"strings"

	"github.com/Alia5/yapigen/internal/schema"
)

// Element is a node of the meta-model tree.
type Element interface {
	Name() string
	Owner() Element
	Stmt() *schema.Node
	setOwner(Element)
}

// Container is an element owning other elements.
type Container interface {
	Element
	OwnedElements() []Element
	Add(e Element)
}

type namedElement struct {
	name  string
	owner Element
	stmt  *schema.Node
}

func (e *namedElement) Name() string { return e.name }
func (e *namedElement) Owner() Element { return e.owner }
func (e *namedElement) Stmt() *schema.Node { return e.stmt }
func (e *namedElement) setOwner(o Element) { e.owner = o }

type owned struct {
	elements []Element
}

func (o *owned) OwnedElements() []Element { return o.elements }

// Owns reports whether e is directly owned.
func (o *owned) Owns(e Element) bool {
	for _, x := range o.elements {
		if x == e {
			return true
		}
	}
	return false
}

// Package is the root element for one module or submodule.
type Package struct {
	namedElement
	owned
}

// NewPackage creates the package for a module or submodule statement.
func NewPackage(stmt *schema.Node, name string) *Package {
	return &Package{namedElement: namedElement{name: name, stmt: stmt}}
}

// Add appends e and makes p its owner.
func (p *Package) Add(e Element) { adopt(p, &p.owned, e) }

// IsSubmodule reports whether the package was created for a submodule.
func (p *Package) IsSubmodule() bool { return p.stmt != nil && p.stmt.Keyword == "submodule" }

// Class is a structural type: container, list, rpc, input, output, identity
// or grouping.
type Class struct {
	namedElement
	owned

	// Extends lists the base classes; assigned during resolution.
	Extends []*Class
}

// NewClass creates a class for stmt.
func NewClass(stmt *schema.Node, name string) *Class {
	return &Class{namedElement: namedElement{name: name, stmt: stmt}}
}

// Add appends e and makes c its owner.
func (c *Class) Add(e Element) { adopt(c, &c.owned, e) }

// IsIdentity reports whether the class models a YANG identity.
func (c *Class) IsIdentity() bool { return c.stmt != nil && c.stmt.Keyword == "identity" }

// IsGrouping reports whether the class models a YANG grouping.
func (c *Class) IsGrouping() bool { return c.stmt != nil && c.stmt.Keyword == "grouping" }

// Properties returns the directly owned properties in order.
func (c *Class) Properties() []*Property {
	var out []*Property
	for _, e := range c.elements {
		if p, ok := e.(*Property); ok {
			out = append(out, p)
		}
	}
	return out
}

// Property is a named, typed field of a class.
type Property struct {
	namedElement

	// Type is a *Class, *Enum or *Bits once resolved; nil for built-in
	// scalar types, which emitters map from Stmt.
	Type Element
}

// NewProperty creates a property for stmt.
func NewProperty(stmt *schema.Node, name string) *Property {
	return &Property{namedElement: namedElement{name: name, stmt: stmt}}
}

// IsMany reports whether the property holds a sequence (list or leaf-list).
func (p *Property) IsMany() bool {
	return p.stmt != nil && (p.stmt.Keyword == "list" || p.stmt.Keyword == "leaf-list")
}

// IsKey reports whether the property is a key leaf of its list.
func (p *Property) IsKey() bool {
	if p.stmt == nil || p.stmt.Up == nil {
		return false
	}
	for _, k := range p.stmt.Up.Key {
		if k == p.stmt {
			return true
		}
	}
	return false
}

// Literal is one member of an enumeration.
type Literal struct {
	Name  string
	Value int
}

// Enum is an enumeration type. Its statement is the enumeration type
// statement.
type Enum struct {
	namedElement
	Literals []Literal
}

// NewEnum creates an enum from an enumeration type statement. Literals
// without an explicit value get the highest value so far plus one.
func NewEnum(stmt *schema.Node, name string) *Enum {
	e := &Enum{namedElement: namedElement{name: name, stmt: stmt}}
	next := 0
	for i, s := range stmt.Search("enum") {
		v := next
		if vs := s.SearchOne("value"); vs != nil {
			if n, err := strconv.Atoi(strings.TrimSpace(vs.Arg)); err == nil {
				v = n
			}
		}
		if i == 0 || v >= next {
			next = v + 1
		}
		e.Literals = append(e.Literals, Literal{Name: s.Arg, Value: v})
	}
	return e
}

// Bit is one named position of a bits type.
type Bit struct {
	Name     string
	Position int
}

// Bits is a bit-set type. Its statement is the bits type statement.
type Bits struct {
	namedElement
	Bits []Bit
}

// NewBits creates a bits element from a bits type statement. Bits without an
// explicit position get the highest position so far plus one.
func NewBits(stmt *schema.Node, name string) *Bits {
	b := &Bits{namedElement: namedElement{name: name, stmt: stmt}}
	next := 0
	for _, s := range stmt.Search("bit") {
		p := next
		if ps := s.SearchOne("position"); ps != nil {
			if n, err := strconv.Atoi(strings.TrimSpace(ps.Arg)); err == nil {
				p = n
			}
		}
		if p >= next {
			next = p + 1
		}
		b.Bits = append(b.Bits, Bit{Name: s.Arg, Position: p})
	}
	return b
}

// Deviation records the deviations one module applies to a target node.
type Deviation struct {
	namedElement
	owned

	// Kind is the deviate argument: replace, add, delete or not-supported.
	Kind string
	// Target is the deviated node, or its patched copy for type deviations.
	Target *schema.Node
	// Patches is the element whose structure the deviation modifies.
	Patches Element

	stmts []*schema.Node
}

// NewDeviation creates a deviation of kind against target.
func NewDeviation(kind string, target *schema.Node, patches Element) *Deviation {
	return &Deviation{
		namedElement: namedElement{name: target.Arg, stmt: target},
		Kind:         kind,
		Target:       target,
		Patches:      patches,
	}
}

// Add appends e and makes d its owner.
func (d *Deviation) Add(e Element) { adopt(d, &d.owned, e) }

// AddStmt records a deviate statement once.
func (d *Deviation) AddStmt(s *schema.Node) {
	for _, x := range d.stmts {
		if x == s {
			return
		}
	}
	d.stmts = append(d.stmts, s)
}

// Stmts returns the recorded deviate statements in first-seen order.
func (d *Deviation) Stmts() []*schema.Node { return d.stmts }

func adopt(owner Element, o *owned, e Element) {
	e.setOwner(owner)
	o.elements = append(o.elements, e)
}

// FQN returns the dotted name of e from its package down.
func FQN(e Element) string {
	var parts []string
	for cur := e; cur != nil; cur = cur.Owner() {
		parts = append(parts, cur.Name())
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// NameMatchesAncestor reports whether name equals the name of parent or of
// any class above it. Packages end the search.
func NameMatchesAncestor(name string, parent Element) bool {
	for cur := parent; cur != nil; cur = cur.Owner() {
		if _, ok := cur.(*Package); ok {
			return false
		}
		if cur.Name() == name {
			return true
		}
	}
	return false
}

// Walk visits e and everything it owns, depth first, parents before
// children. Returning false from fn skips the element's children.
func Walk(e Element, fn func(Element) bool) {
	if !fn(e) {
		return
	}
	if c, ok := e.(Container); ok {
		for _, child := range c.OwnedElements() {
			Walk(child, fn)
		}
	}
}
