package generator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/Alia5/yapigen/internal/apimodel"
	"github.com/Alia5/yapigen/internal/builder"
	"github.com/Alia5/yapigen/internal/codegen/common"
	"github.com/Alia5/yapigen/internal/codegen/meta"
	"github.com/Alia5/yapigen/internal/codegen/scanner"
	"github.com/Alia5/yapigen/internal/log"
)

// Profile describes how the model is built for one target language.
type Profile struct {
	Strategy builder.Kind
	// Keywords names the reserved word set escaped in element names.
	Keywords string
	// FlattenRPCInput walks rpc input children as direct rpc children.
	FlattenRPCInput bool
}

var profiles = map[string]Profile{
	"python":   {Strategy: builder.KindExpandedTree, Keywords: "python"},
	"cpp":      {Strategy: builder.KindExpandedTree, Keywords: "cpp", FlattenRPCInput: true},
	"go":       {Strategy: builder.KindExpandedTree, Keywords: "go"},
	"grouping": {Strategy: builder.KindGroupingClass, Keywords: "python"},
}

// Languages returns the supported language names in sorted order.
func Languages() []string {
	out := make([]string, 0, len(profiles))
	for k := range profiles {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type Generator struct {
	outputDir string
	sources   []string
	format    string
	logger    *slog.Logger
	trace     log.TraceLogger

	scanned *scanner.Result
}

// New creates a generator reading the YANG files and directories in
// sources and writing model documents in format below outputDir.
func New(outputDir string, sources []string, format string, logger *slog.Logger, trace log.TraceLogger) *Generator {
	if trace == nil {
		trace = log.NewTrace(nil)
	}
	return &Generator{
		outputDir: outputDir,
		sources:   sources,
		format:    format,
		logger:    logger,
		trace:     trace,
	}
}

func (g *Generator) GenAll() error {
	for _, lang := range Languages() {
		if err := g.GenerateLang(lang); err != nil {
			return fmt.Errorf("generate %s model: %w", lang, err)
		}
	}
	return nil
}

func (g *Generator) GenerateLang(lang string) error {
	if _, ok := profiles[lang]; !ok {
		return fmt.Errorf("unsupported language '%s' (supported: %v)", lang, Languages())
	}
	g.logger.Info("Generating API model", "language", lang)

	md, err := g.Compile(lang)
	if err != nil {
		return err
	}

	outputPath := filepath.Join(g.outputDir, lang)
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return fmt.Errorf("failed to create %s output directory: %w", lang, err)
	}

	written, err := g.writeModel(outputPath, md)
	if err != nil {
		return err
	}

	g.logger.Info("API model generation complete", "language", lang, "output", outputPath, "written", written)
	return nil
}

// Compile builds and resolves the API model for lang. Sources are scanned
// on first use and shared by later calls.
func (g *Generator) Compile(lang string) (*meta.Metadata, error) {
	p, ok := profiles[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language '%s' (supported: %v)", lang, Languages())
	}
	res, err := g.Scan()
	if err != nil {
		return nil, err
	}

	namer := apimodel.Namer{IsKeyword: common.KeywordChecker(p.Keywords)}
	strategy, err := builder.New(p.Strategy, builder.Options{
		Logger:          g.logger.With("language", lang),
		Trace:           g.trace,
		Namer:           namer,
		FlattenRPCInput: p.FlattenRPCInput,
	})
	if err != nil {
		return nil, err
	}

	g.logger.Debug("Building API model", "language", lang, "strategy", p.Strategy)
	packages, err := builder.Build(strategy, res.Modules)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s model: %w", lang, err)
	}
	md := &meta.Metadata{
		Language:   lang,
		Strategy:   p.Strategy,
		Packages:   packages,
		Submodules: builder.PackageSubmodules(res.Submodules, namer),
	}
	g.logger.Info("Built API model", "language", lang, "packages", len(md.Packages), "submodules", len(md.Submodules))
	return md, nil
}

// Scan reads the configured sources once.
func (g *Generator) Scan() (*scanner.Result, error) {
	if g.scanned != nil {
		return g.scanned, nil
	}
	if len(g.sources) == 0 {
		return nil, fmt.Errorf("no YANG sources given")
	}

	g.logger.Info("Scanning YANG sources", "paths", g.sources)
	res, err := scanner.ScanFiles(g.sources)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sources: %w", err)
	}
	g.logger.Info("Found modules", "modules", len(res.Modules), "submodules", len(res.Submodules))
	g.scanned = res
	return res, nil
}
