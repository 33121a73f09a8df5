package generator

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Alia5/yapigen/internal/codegen/common"
	"github.com/Alia5/yapigen/internal/codegen/meta"
	"golang.org/x/crypto/blake2b"
)

// ManifestFile is written next to the model documents of a language.
const ManifestFile = "manifest.json"

// Manifest maps each generated file name to the blake2b-256 digest of its
// content.
type Manifest struct {
	Generator string            `json:"generator"`
	Language  string            `json:"language"`
	Files     map[string]string `json:"files"`
}

// Digest returns the hex blake2b-256 digest of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ReadManifest loads the manifest in dir. A missing manifest is empty.
func ReadManifest(dir string) (*Manifest, error) {
	m := &Manifest{Files: map[string]string{}}
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestFile, err)
	}
	if m.Files == nil {
		m.Files = map[string]string{}
	}
	return m, nil
}

// writeModel writes one document per package, the README and the manifest
// to dir. Files whose digest matches the previous manifest and that still
// exist are not rewritten. It returns the number of files written.
func (g *Generator) writeModel(dir string, md *meta.Metadata) (int, error) {
	version, err := common.GetVersion()
	if err != nil {
		return 0, err
	}
	prev, err := ReadManifest(dir)
	if err != nil {
		return 0, err
	}

	files := make(map[string][]byte)
	var names []string
	ext := Extension(g.format)
	for _, pkg := range md.AllPackages() {
		data, err := Marshal(NewDocument(md, version, pkg), ext)
		if err != nil {
			return 0, fmt.Errorf("failed to encode package %s: %w", pkg.Name(), err)
		}
		name := pkg.Name() + "." + ext
		files[name] = data
		names = append(names, name)
	}
	sort.Strings(names)
	files["README.md"] = common.Readme(md.Language, version, names)

	next := &Manifest{Generator: "yapigen " + version, Language: md.Language, Files: map[string]string{}}
	written := 0
	for name, data := range files {
		digest := Digest(data)
		next.Files[name] = digest
		path := filepath.Join(dir, name)
		if prev.Files[name] == digest && unchanged(path, data) {
			g.logger.Debug("Unchanged", "file", path)
			continue
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		g.logger.Debug("Wrote", "file", path)
		written++
	}

	for name := range prev.Files {
		if _, ok := next.Files[name]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return written, fmt.Errorf("failed to remove stale %s: %w", name, err)
		}
		g.logger.Debug("Removed stale file", "file", name)
	}

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return written, err
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), append(data, '\n'), 0o644); err != nil {
		return written, fmt.Errorf("failed to write manifest: %w", err)
	}
	return written, nil
}

func unchanged(path string, data []byte) bool {
	existing, err := os.ReadFile(path)
	return err == nil && bytes.Equal(existing, data)
}
