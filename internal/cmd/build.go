package cmd

import (
	"log/slog"

	"github.com/Alia5/yapigen/internal/codegen/generator"
	"github.com/Alia5/yapigen/internal/log"
)

type Build struct {
	Sources []string `arg:"" name:"source" help:"YANG files or directories containing *.yang files" type:"path"`
	Output  string   `help:"Output directory for the generated models" default:"./models" env:"YAPIGEN_BUILD_OUTPUT"`
	Lang    string   `help:"Target language profile: python, cpp, go, grouping, or 'all'" default:"all" enum:"python,cpp,go,grouping,all" env:"YAPIGEN_BUILD_LANG"`
	Format  string   `help:"Model document format" default:"json" enum:"json,yaml,toml" env:"YAPIGEN_BUILD_FORMAT"`
}

// Run is called by Kong when the build command is executed.
func (b *Build) Run(logger *slog.Logger, tracer log.TraceLogger) error {
	logger.Info("Starting API model build", "output", b.Output, "lang", b.Lang, "format", b.Format)

	gen := generator.New(b.Output, b.Sources, b.Format, logger, tracer)
	if b.Lang == "all" {
		return gen.GenAll()
	}
	return gen.GenerateLang(b.Lang)
}
