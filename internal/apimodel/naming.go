package apimodel

import (
	"strings"

	"github.com/Alia5/yapigen/internal/codegen/common"
)

// Namer derives element names from schema names for one target language.
type Namer struct {
	// IsKeyword reports reserved words of the target language; names
	// matching it get a trailing underscore.
	IsKeyword func(string) bool
}

// PackageName maps a module name to a package name.
func (n Namer) PackageName(module string) string {
	name := strings.NewReplacer("-", "_", ".", "_").Replace(module)
	return common.EscapeKeyword(common.SanitizeLeadingDigit(name), n.IsKeyword)
}

// ClassName maps a schema name to a class name.
func (n Namer) ClassName(arg string) string {
	return common.EscapeKeyword(common.SanitizeLeadingDigit(common.ToPascalCase(arg)), n.IsKeyword)
}

// PropertyName maps a schema name to a property name.
func (n Namer) PropertyName(arg string) string {
	return common.EscapeKeyword(common.SanitizeLeadingDigit(common.ToSnakeCase(arg)), n.IsKeyword)
}

// IdentityName maps an identity name to its class name.
func (n Namer) IdentityName(arg string) string {
	return n.ClassName(arg) + "Identity"
}

// TypedefName names an enum or bits type lifted from a typedef.
func (n Namer) TypedefName(arg string) string {
	return n.ClassName(arg)
}

// EnumName names an enumeration declared inline in a leaf.
func (n Namer) EnumName(leaf string) string {
	return common.SanitizeLeadingDigit(common.ToPascalCase(leaf)) + "Enum"
}

// BitsName names a bits type declared inline in a leaf.
func (n Namer) BitsName(leaf string) string {
	return common.SanitizeLeadingDigit(common.ToPascalCase(leaf)) + "Bits"
}
