package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/Alia5/yapigen/internal/codegen/common"
	"github.com/Alia5/yapigen/internal/configpaths"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit writes a template holding the flag defaults of a command.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"build"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output  string `help:"Destination file path (defaults to current directory)"`
	Global  bool   `help:"Write to the user config directory instead of the current directory"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

var templates = map[string]reflect.Type{
	"build": reflect.TypeOf(Build{}),
}

func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	t, ok := templates[c.Command]
	if !ok {
		return fmt.Errorf("unknown command %q; expected 'build'", c.Command)
	}

	dest, err := c.destination(format)
	if err != nil {
		return err
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}

	data, err := encodeTemplate(flagDefaults(t), format)
	if err != nil {
		return fmt.Errorf("failed to encode %s template: %w", format, err)
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func (c *ConfigInit) destination(format string) (string, error) {
	switch {
	case c.Output != "":
		return c.Output, nil
	case c.Global:
		p, err := configpaths.DefaultNamedConfigPath(c.Command, format)
		if err != nil {
			return "", fmt.Errorf("failed to resolve config directory: %w", err)
		}
		return p, nil
	default:
		return c.Command + "." + format, nil
	}
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json", "toml":
		return strings.ToLower(f)
	case "yaml", "yml":
		return "yaml"
	default:
		return ""
	}
}

func encodeTemplate(v map[string]any, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(v)
	case "toml":
		return toml.Marshal(v)
	default:
		return json.MarshalIndent(v, "", "  ")
	}
}

// flagDefaults maps the string flags of a command struct to their defaults,
// keyed the way kong's config resolvers look them up: the flag name in
// snake case. Positional arguments cannot come from a config file and are
// left out.
func flagDefaults(t reflect.Type) map[string]any {
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if _, arg := f.Tag.Lookup("arg"); arg || !f.IsExported() {
			continue
		}
		name := f.Tag.Get("name")
		if name == "" {
			name = f.Name
		}
		if f.Type.Kind() == reflect.String {
			out[common.ToSnakeCase(name)] = f.Tag.Get("default")
		}
	}
	return out
}
