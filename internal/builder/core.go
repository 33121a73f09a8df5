package builder

import (
	"github.com/Alia5/yapigen/internal/apimodel"
	"github.com/Alia5/yapigen/internal/codegen/common"
	"github.com/Alia5/yapigen/internal/schema"
)

// core is the conversion and resolution logic both strategies share.
type core struct {
	opts Options
}

// leafOptions are the points where the strategies differ when turning a
// leaf into a property.
type leafOptions struct {
	// unions lifts enumeration and bits members of inline unions.
	unions bool
	// registerInline records inline enums in the index so leafrefs and
	// deviations can reach them through the enum table.
	registerInline bool
}

func (c *core) trace(kind string, e apimodel.Element) {
	c.opts.Trace.Log(kind, apimodel.FQN(e))
}

func (c *core) newPackage(r *Run, module *schema.Node) *apimodel.Package {
	p := apimodel.NewPackage(module, c.opts.Namer.PackageName(module.Arg))
	r.Index.packages[module] = p
	c.trace("package", p)
	return p
}

// addIdentities creates one identity class per identity declared in n.
func (c *core) addIdentities(r *Run, n *schema.Node, parent apimodel.Container) {
	for _, id := range n.Identities {
		cls := apimodel.NewClass(id, c.opts.Namer.IdentityName(id.Arg))
		parent.Add(cls)
		r.Index.classes[id] = cls
		c.trace("identity", cls)
	}
}

// hoistTypedefs lifts the enum and bits typedefs declared in n into parent.
// With groupings set, typedefs declared anywhere inside the groupings of n
// are lifted too.
func (c *core) hoistTypedefs(r *Run, n *schema.Node, parent apimodel.Container, groupings bool) {
	for _, td := range n.Typedefs {
		c.hoistTypedef(r, td, parent)
	}
	if !groupings {
		return
	}
	var walk func(s *schema.Node)
	walk = func(s *schema.Node) {
		for _, sub := range s.Subs {
			if sub.Keyword == "typedef" {
				c.hoistTypedef(r, sub, parent)
				continue
			}
			walk(sub)
		}
	}
	for _, g := range n.Groupings {
		walk(g)
	}
}

// hoistTypedef creates the shared enum/bits elements of one typedef. A
// typedef is hoisted at most once per run, however many scopes see it.
func (c *core) hoistTypedef(r *Run, td *schema.Node, parent apimodel.Container) {
	if r.hoisted[td] {
		return
	}
	r.hoisted[td] = true

	t := td.Type()
	if t == nil {
		return
	}
	switch t.Arg {
	case "enumeration":
		e := apimodel.NewEnum(t, c.opts.Namer.TypedefName(td.Arg))
		parent.Add(e)
		r.Index.enums[t] = e
		c.trace("enum", e)
	case "bits":
		b := apimodel.NewBits(t, c.opts.Namer.TypedefName(td.Arg))
		parent.Add(b)
		r.Index.bits[t] = b
		c.trace("bits", b)
	case "union":
		c.liftUnion(r, t, parent, td.Arg)
	}
}

// liftUnion creates enum and bits elements for the enumeration and bits
// members of union, descending into nested unions.
func (c *core) liftUnion(r *Run, union *schema.Node, parent apimodel.Container, arg string) {
	var enums, bits int
	var walk func(u *schema.Node)
	walk = func(u *schema.Node) {
		for _, m := range schema.UnionMembers(u) {
			switch m.Arg {
			case "enumeration":
				e := apimodel.NewEnum(m, common.Numbered(c.opts.Namer.EnumName(arg), enums))
				enums++
				parent.Add(e)
				r.Index.enums[m] = e
				c.trace("enum", e)
			case "bits":
				b := apimodel.NewBits(m, common.Numbered(c.opts.Namer.BitsName(arg), bits))
				bits++
				parent.Add(b)
				r.Index.bits[m] = b
				c.trace("bits", b)
			case "union":
				walk(m)
			}
		}
	}
	walk(union)
}

// addClass creates the class for n and, unless parent is a package or n is
// a grouping, the property in parent that holds it.
func (c *core) addClass(r *Run, n *schema.Node, parent apimodel.Container, checkAncestors bool) *apimodel.Class {
	name := c.opts.Namer.ClassName(r.Namespace.Name(n))
	if checkAncestors && apimodel.NameMatchesAncestor(name, parent) {
		name += "_"
	}
	cls := apimodel.NewClass(n, name)
	parent.Add(cls)
	r.Index.classes[n] = cls
	c.trace("class", cls)

	if _, ok := parent.(*apimodel.Package); ok || n.Keyword == "grouping" {
		return cls
	}
	prop := apimodel.NewProperty(n, c.opts.Namer.PropertyName(r.Namespace.Name(n)))
	prop.Type = cls
	parent.Add(prop)
	r.Index.properties[n] = prop
	c.trace("property", prop)
	return cls
}

// addLeaf creates the property for a leaf, leaf-list or anyxml node. An
// enumeration, bits or union declared inline in the leaf is lifted into a
// sibling element of the property; enum and bits are linked immediately.
func (c *core) addLeaf(r *Run, n *schema.Node, parent apimodel.Container, lo leafOptions) *apimodel.Property {
	name := r.Namespace.Name(n)
	prop := apimodel.NewProperty(n, c.opts.Namer.PropertyName(name))
	parent.Add(prop)
	r.Index.properties[n] = prop
	c.trace("property", prop)

	t := n.Type()
	if t == nil {
		return prop
	}
	types := c.opts.Classifier
	switch {
	case types.Enum(n) == t:
		e := apimodel.NewEnum(t, c.opts.Namer.EnumName(name))
		parent.Add(e)
		prop.Type = e
		if lo.registerInline {
			r.Index.enums[t] = e
		}
		c.trace("enum", e)
	case types.Bits(n) == t:
		b := apimodel.NewBits(t, c.opts.Namer.BitsName(name))
		parent.Add(b)
		prop.Type = b
		if lo.registerInline {
			r.Index.bits[t] = b
		}
		c.trace("bits", b)
	case lo.unions && types.Union(n) == t:
		c.liftUnion(r, t, parent, name)
	}
	return prop
}

// resolve walks e and everything it owns. Properties and identity classes
// are resolved here; resolveClass handles the remaining classes and may be
// nil.
func (c *core) resolve(r *Run, e apimodel.Element, resolveClass func(*Run, *apimodel.Class) error) error {
	var err error
	switch el := e.(type) {
	case *apimodel.Property:
		err = c.resolveProperty(r, el)
	case *apimodel.Class:
		if el.IsIdentity() {
			err = c.resolveIdentity(r, el)
		} else if resolveClass != nil {
			err = resolveClass(r, el)
		}
	}
	if err != nil {
		return err
	}

	if ct, ok := e.(apimodel.Container); ok {
		for _, child := range ct.OwnedElements() {
			if err := c.resolve(r, child, resolveClass); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *core) resolveProperty(r *Run, p *apimodel.Property) error {
	types := c.opts.Classifier
	if t := types.Enum(p.Stmt()); t != nil {
		if _, ok := p.Type.(*apimodel.Enum); ok {
			return nil
		}
		if e, ok := r.Index.Enum(t); ok {
			p.Type = e
			return nil
		}
		// leafref to a leaf that declares the enumeration inline
		if target, ok := r.Index.Property(t.Parent); ok {
			if e, ok := target.Type.(*apimodel.Enum); ok {
				p.Type = e
				return nil
			}
		}
		return &ResolutionError{Kind: ErrUnresolvedEnumReference, Element: apimodel.FQN(p)}
	}

	if t := types.IdentityRef(p.Stmt()); t != nil {
		if t.IdentityBase != nil {
			if cls, ok := r.Index.Class(t.IdentityBase); ok {
				p.Type = cls
				return nil
			}
		}
		return &ResolutionError{Kind: ErrUnresolvedIdentityReference, Element: apimodel.FQN(p)}
	}

	if t := types.Bits(p.Stmt()); t != nil {
		if _, ok := p.Type.(*apimodel.Bits); ok {
			return nil
		}
		if b, ok := r.Index.Bits(t); ok {
			p.Type = b
			return nil
		}
		if target, ok := r.Index.Property(t.Parent); ok {
			if b, ok := target.Type.(*apimodel.Bits); ok {
				p.Type = b
				return nil
			}
		}
		return &ResolutionError{Kind: ErrUnresolvedBitsReference, Element: apimodel.FQN(p)}
	}
	return nil
}

// resolveIdentity links an identity class to the classes of its base
// identities.
func (c *core) resolveIdentity(r *Run, cls *apimodel.Class) error {
	bases := cls.Stmt().Bases
	if len(bases) == 0 {
		return nil
	}
	extends := make([]*apimodel.Class, 0, len(bases))
	for _, b := range bases {
		base, ok := r.Index.Class(b)
		if !ok {
			return &ResolutionError{Kind: ErrUnresolvedIdentityReference, Element: apimodel.FQN(cls)}
		}
		extends = append(extends, base)
	}
	cls.Extends = extends
	return nil
}
