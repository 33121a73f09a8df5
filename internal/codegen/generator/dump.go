package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Alia5/yapigen/internal/apimodel"
	"github.com/Alia5/yapigen/internal/codegen/meta"
	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Document is the serialized model of one package.
type Document struct {
	Generator string     `json:"generator" yaml:"generator" toml:"generator"`
	Language  string     `json:"language" yaml:"language" toml:"language"`
	Strategy  string     `json:"strategy" yaml:"strategy" toml:"strategy"`
	Package   ElementDoc `json:"package" yaml:"package" toml:"package"`
}

// ElementDoc is one serialized model element. Links to other elements are
// written as their fully qualified names.
type ElementDoc struct {
	Kind   string `json:"kind" yaml:"kind" toml:"kind"`
	Name   string `json:"name" yaml:"name" toml:"name"`
	Schema string `json:"schema,omitempty" yaml:"schema,omitempty" toml:"schema,omitempty"`

	Type    string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Many    bool     `json:"many,omitempty" yaml:"many,omitempty" toml:"many,omitempty"`
	Key     bool     `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	Extends []string `json:"extends,omitempty" yaml:"extends,omitempty" toml:"extends,omitempty"`

	Literals []LiteralDoc `json:"literals,omitempty" yaml:"literals,omitempty" toml:"literals,omitempty"`
	Bits     []LiteralDoc `json:"bits,omitempty" yaml:"bits,omitempty" toml:"bits,omitempty"`

	Deviate    string   `json:"deviate,omitempty" yaml:"deviate,omitempty" toml:"deviate,omitempty"`
	Patches    string   `json:"patches,omitempty" yaml:"patches,omitempty" toml:"patches,omitempty"`
	Statements []string `json:"statements,omitempty" yaml:"statements,omitempty" toml:"statements,omitempty"`

	Elements []ElementDoc `json:"elements,omitempty" yaml:"elements,omitempty" toml:"elements,omitempty"`
}

// LiteralDoc is an enum literal or a bit.
type LiteralDoc struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Value int    `json:"value" yaml:"value" toml:"value"`
}

// NewDocument serializes pkg as built for md.
func NewDocument(md *meta.Metadata, version string, pkg *apimodel.Package) Document {
	return Document{
		Generator: "yapigen " + version,
		Language:  md.Language,
		Strategy:  string(md.Strategy),
		Package:   elementDoc(pkg),
	}
}

func elementDoc(e apimodel.Element) ElementDoc {
	doc := ElementDoc{Name: e.Name()}
	if st := e.Stmt(); st != nil {
		doc.Schema = st.Keyword + " " + st.Arg
	}

	switch el := e.(type) {
	case *apimodel.Package:
		doc.Kind = "package"
		if el.IsSubmodule() {
			doc.Kind = "submodule"
		}
	case *apimodel.Class:
		doc.Kind = "class"
		if el.IsIdentity() {
			doc.Kind = "identity"
		}
		for _, b := range el.Extends {
			doc.Extends = append(doc.Extends, apimodel.FQN(b))
		}
	case *apimodel.Property:
		doc.Kind = "property"
		doc.Many = el.IsMany()
		doc.Key = el.IsKey()
		if el.Type != nil {
			doc.Type = apimodel.FQN(el.Type)
		} else if t := el.Stmt().Type(); t != nil {
			doc.Type = t.Arg
		}
	case *apimodel.Enum:
		doc.Kind = "enum"
		for _, l := range el.Literals {
			doc.Literals = append(doc.Literals, LiteralDoc{Name: l.Name, Value: l.Value})
		}
	case *apimodel.Bits:
		doc.Kind = "bits"
		for _, b := range el.Bits {
			doc.Bits = append(doc.Bits, LiteralDoc{Name: b.Name, Value: b.Position})
		}
	case *apimodel.Deviation:
		doc.Kind = "deviation"
		doc.Deviate = el.Kind
		doc.Schema = el.Target.Path()
		if el.Patches != nil {
			doc.Patches = apimodel.FQN(el.Patches)
		}
		for _, s := range el.Stmts() {
			doc.Statements = append(doc.Statements, strings.TrimSpace(s.Keyword+" "+s.Arg))
		}
	}

	if c, ok := e.(apimodel.Container); ok {
		for _, child := range c.OwnedElements() {
			doc.Elements = append(doc.Elements, elementDoc(child))
		}
	}
	return doc
}

// Marshal encodes doc as json, yaml or toml.
func Marshal(doc Document, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(doc)
	case "toml":
		return toml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Extension returns the file extension for format.
func Extension(format string) string {
	if format == "" {
		return "json"
	}
	return format
}
