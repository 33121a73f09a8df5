package common

import (
	"fmt"
	"strings"
)

const readmeTemplate = `# yapigen API model (%s)

This directory was generated by yapigen %s. Each file is the
language-independent API meta-model of one YANG module: packages, classes,
properties, enums, bits and deviations, fully cross-referenced.

## Packages

%s`

// Readme renders the README.md listing the generated package files.
func Readme(lang, version string, files []string) []byte {
	var list strings.Builder
	for _, f := range files {
		fmt.Fprintf(&list, "- `%s`\n", f)
	}
	return []byte(fmt.Sprintf(readmeTemplate, lang, version, list.String()))
}
