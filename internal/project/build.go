// Package project drives multi-file builds: source discovery, dependency
// resolution, exception centralization, and output assembly.
package project

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goex-lang/goex/internal/gen"
	"github.com/goex-lang/goex/internal/syntax"
)

// ProgressFunc is called after each unit is generated.
type ProgressFunc func(done, total int, path string)

// Builder runs project builds rooted at a directory.
type Builder struct {
	Root     string
	Manifest *Manifest

	// Progress, when set, receives per-unit completion updates.
	Progress ProgressFunc

	// NoCache disables the bbolt build cache.
	NoCache bool
}

// NewBuilder creates a Builder for the project at root, loading the
// manifest from disk.
func NewBuilder(root string) (*Builder, error) {
	man, err := LoadManifest(root)
	if err != nil {
		return nil, err
	}
	return &Builder{Root: root, Manifest: man}, nil
}

// Result summarizes a completed build.
type Result struct {
	OutputDir  string
	Units      []string // unit paths in build order
	Cached     int      // units served from the cache
	Exceptions bool     // shared exception module emitted
	MainDir    string   // output directory containing the main package, "" if none
}

// sourceDir returns the directory scanned for units. When the configured
// source directory does not exist, the project root itself is scanned.
func (b *Builder) sourceDir() string {
	dir := filepath.Join(b.Root, b.Manifest.SourceDir)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	return b.Root
}

// load discovers and parses every unit. The first syntax error aborts
// the whole build.
func (b *Builder) load() ([]*Unit, error) {
	walker := NewWalker(b.Manifest.Includes, b.Manifest.Excludes)
	paths, err := walker.Walk(b.sourceDir())
	if err != nil {
		return nil, err
	}

	units := make([]*Unit, 0, len(paths))
	for _, rel := range paths {
		source, err := os.ReadFile(filepath.Join(b.sourceDir(), filepath.FromSlash(rel)))
		if err != nil {
			return nil, err
		}

		file, err := syntax.Parse(rel, bytes.NewReader(source), nil)
		if err != nil {
			return nil, err
		}

		units = append(units, &Unit{
			Path:    rel,
			Package: file.PkgName,
			File:    file,
			Source:  source,
		})
	}
	return units, nil
}

// Build transpiles the whole project. All outputs are staged in memory
// and written only after every unit has generated successfully, so a
// fatal condition leaves no partial output tree.
func (b *Builder) Build() (*Result, error) {
	units, err := b.load()
	if err != nil {
		return nil, err
	}

	order, err := Resolve(units, b.Manifest.Module)
	if err != nil {
		return nil, err
	}

	classes := Classes(units)
	hasExceptions := UsesExceptions(units)

	ctx := &gen.Context{
		ProjectMode:      true,
		ExceptionsImport: b.Manifest.ExceptionsImport(),
		Classes:          classes,
	}

	cache := b.openCache()
	if cache != nil {
		defer cache.Close()
	}

	// Generate in dependency order, staging outputs keyed by their
	// output-relative path.
	staged := map[string]string{}
	result := &Result{
		OutputDir:  filepath.Join(b.Root, b.Manifest.OutputDir),
		Exceptions: hasExceptions,
	}

	for i, u := range order {
		hash := Fingerprint(u.Source, b.Manifest.Module, classes)

		var code string
		if cache != nil {
			if cached, hit := cache.Lookup(u.Path, hash); hit {
				code = cached
				result.Cached++
			}
		}
		if code == "" {
			code, err = ctx.Generate(u.File)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", u.Path, err)
			}
			if cache != nil {
				_ = cache.Store(u.Path, hash, code)
			}
		}

		outRel := strings.TrimSuffix(u.Path, filepath.Ext(u.Path)) + ".go"
		staged[outRel] = code
		result.Units = append(result.Units, u.Path)

		if u.Package == b.Manifest.MainPackage && result.MainDir == "" && hasMain(u.File) {
			result.MainDir = filepath.Join(result.OutputDir, filepath.FromSlash(path.Dir(outRel)))
		}

		if b.Progress != nil {
			b.Progress(i+1, len(order), u.Path)
		}
	}

	if hasExceptions {
		staged[ExceptionsFile] = exceptionsSource
	}

	if err := b.writeTree(result.OutputDir, staged); err != nil {
		return nil, err
	}
	if err := b.writeGoMod(result.OutputDir); err != nil {
		return nil, err
	}

	return result, nil
}

// openCache opens the build cache, or returns nil when caching is
// disabled or the cache cannot be opened. A broken cache never fails a
// build.
func (b *Builder) openCache() *Cache {
	if b.NoCache {
		return nil
	}
	cache, err := OpenCache(filepath.Join(b.Root, CacheFile))
	if err != nil {
		return nil
	}
	return cache
}

// writeTree writes the staged outputs under outputDir.
func (b *Builder) writeTree(outputDir string, staged map[string]string) error {
	for rel, code := range staged {
		dest := filepath.Join(outputDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(dest, []byte(code), 0644); err != nil {
			return err
		}
	}
	return nil
}

// writeGoMod generates the output tree's go.mod unless one exists.
func (b *Builder) writeGoMod(outputDir string) error {
	dest := filepath.Join(outputDir, "go.mod")
	if _, err := os.Stat(dest); err == nil {
		return nil
	}
	content := fmt.Sprintf("module %s\n\ngo 1.22\n", b.Manifest.Module)
	return os.WriteFile(dest, []byte(content), 0644)
}

// hasMain reports whether the unit declares func main.
func hasMain(file *syntax.File) bool {
	for _, d := range file.Decls {
		if f, ok := d.(*syntax.FuncDecl); ok && f.Name == "main" {
			return true
		}
	}
	return false
}

// ----------------------------------------------------------------------------
// Project info

// UnitInfo describes one unit for reporting.
type UnitInfo struct {
	Path    string
	Package string
	Imports []string
}

// Info is the project summary behind the info command.
type Info struct {
	Manifest *Manifest
	Units    []UnitInfo
	Packages map[string]int      // package name to unit count
	Edges    map[string][]string // unit path to its dependencies
}

// Inspect parses the project and summarizes it without generating any
// output.
func (b *Builder) Inspect() (*Info, error) {
	units, err := b.load()
	if err != nil {
		return nil, err
	}

	info := &Info{
		Manifest: b.Manifest,
		Packages: map[string]int{},
		Edges:    Edges(units, b.Manifest.Module),
	}

	for _, u := range units {
		var imports []string
		for _, imp := range u.File.Imports {
			imports = append(imports, imp.Path)
		}
		info.Units = append(info.Units, UnitInfo{
			Path:    u.Path,
			Package: u.Package,
			Imports: imports,
		})
		info.Packages[u.Package]++
	}

	sort.Slice(info.Units, func(i, j int) bool { return info.Units[i].Path < info.Units[j].Path })
	return info, nil
}
