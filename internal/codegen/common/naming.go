package common

import (
	"strings"
	"unicode"
)

// ToPascalCase joins the words of a YANG identifier, upper-casing the first
// letter of each word. Word boundaries are '-', '_', '.' and whitespace;
// the remaining letters keep their case ("ipv4-MTU" -> "Ipv4MTU").
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
	})

	var result strings.Builder
	for _, word := range words {
		r := []rune(word)
		r[0] = unicode.ToUpper(r[0])
		result.WriteString(string(r))
	}

	return result.String()
}

// ToSnakeCase lower-cases an identifier and separates words with '_'.
// '-' and '.' are treated as separators, camelCase boundaries get an
// underscore ("ifIndex" -> "if_index", "XMLParser" -> "xml_parser").
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}
	s = strings.NewReplacer("-", "_", ".", "_").Replace(s)
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		isUpper := r >= 'A' && r <= 'Z'

		if i > 0 && isUpper && runes[i-1] != '_' {
			prevIsLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextIsLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'

			// "someWord" -> "some_word", "XMLParser" -> "xml_parser"
			if prevIsLower || nextIsLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// EscapeKeyword appends '_' to names reserved in the target language.
func EscapeKeyword(name string, isKeyword func(string) bool) string {
	if isKeyword != nil && isKeyword(name) {
		return name + "_"
	}
	return name
}
