package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newProject scaffolds a project with the given manifest and source files
// (paths relative to the source dir).
func newProject(t *testing.T, man *Manifest, sources map[string]string) string {
	t.Helper()
	root := t.TempDir()
	if err := man.Save(root); err != nil {
		t.Fatal(err)
	}
	for rel, src := range sources {
		writeFile(t, filepath.Join(root, man.SourceDir), rel, src)
	}
	return root
}

func testManifest(name string) *Manifest {
	return &Manifest{
		Name:        name,
		Version:     "1.0.0",
		MainPackage: "main",
		SourceDir:   "src",
		OutputDir:   "build",
		Module:      "example.com/" + name,
	}
}

func readOutput(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, "build", filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read output %s: %v", rel, err)
	}
	return string(data)
}

func TestInitScaffold(t *testing.T) {
	root := t.TempDir()

	man, err := Init(root, "demo", "")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if man.Module != "github.com/user/demo" {
		t.Errorf("Module = %q", man.Module)
	}

	for _, rel := range []string{ManifestJSON, "src/main.gox"} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	// The example unit parses and builds.
	b, err := NewBuilder(root)
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	res, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(res.Units) != 1 || res.Units[0] != "main.gox" {
		t.Errorf("units = %v", res.Units)
	}

	out := readOutput(t, root, "main.go")
	if !strings.Contains(out, "func NewHelloWorld() *HelloWorld {") {
		t.Errorf("example output missing factory:\n%s", out)
	}
}

func TestInitCustomModule(t *testing.T) {
	root := t.TempDir()
	man, err := Init(root, "demo", "example.com/custom")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if man.Module != "example.com/custom" {
		t.Errorf("Module = %q", man.Module)
	}
}

func TestInitKeepsExistingExample(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.gox", "package main\nfunc main() { }\n")

	if _, err := Init(root, "demo", ""); err != nil {
		t.Fatalf("init: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "src", "main.gox"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "HelloWorld") {
		t.Error("existing example file was overwritten")
	}
}

func TestBuildProject(t *testing.T) {
	root := newProject(t, testManifest("app"), map[string]string{
		"main.gox": `package main
import "example.com/app/util"
func main() {
    util.Check(1)
}
`,
		"util/check.gox": `package util
func Check(x int) {
    if x < 0 {
        throw NewException("Negative", "value is negative")
    }
}
`,
	})

	b, err := NewBuilder(root)
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	res, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// Build order respects the import edge.
	if len(res.Units) != 2 || res.Units[0] != "util/check.gox" || res.Units[1] != "main.gox" {
		t.Errorf("units = %v, want [util/check.gox main.gox]", res.Units)
	}

	// The throwing unit references the shared module.
	util := readOutput(t, root, "util/check.go")
	if !strings.Contains(util, `"example.com/app/exceptions"`) {
		t.Error("util output missing shared module import")
	}
	if !strings.Contains(util, `panic(exceptions.NewException("Negative", "value is negative"))`) {
		t.Errorf("util output:\n%s", util)
	}
	if strings.Contains(util, "type Exception interface {") {
		t.Error("exception types emitted inline in project mode")
	}

	// The shared module is emitted exactly once, importless.
	if !res.Exceptions {
		t.Error("Result.Exceptions = false")
	}
	exc := readOutput(t, root, "exceptions/exceptions.go")
	if !strings.Contains(exc, "package exceptions") || !strings.Contains(exc, "func NewException(exType, message string) Exception {") {
		t.Errorf("shared module:\n%s", exc)
	}
	if strings.Contains(exc, "import") {
		t.Error("shared module has imports")
	}

	// go.mod names the project module.
	gomod := readOutput(t, root, "go.mod")
	if !strings.Contains(gomod, "module example.com/app") {
		t.Errorf("go.mod:\n%s", gomod)
	}

	// The main package lands at the output root.
	if res.MainDir != res.OutputDir {
		t.Errorf("MainDir = %q, want %q", res.MainDir, res.OutputDir)
	}
}

func TestBuildNoExceptions(t *testing.T) {
	root := newProject(t, testManifest("plain"), map[string]string{
		"main.gox": "package main\nfunc main() {\nprintln(\"hi\")\n}\n",
	})

	b, err := NewBuilder(root)
	if err != nil {
		t.Fatal(err)
	}
	res, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if res.Exceptions {
		t.Error("Result.Exceptions = true for a project that never throws")
	}
	if _, err := os.Stat(filepath.Join(root, "build", "exceptions", "exceptions.go")); !os.IsNotExist(err) {
		t.Error("shared module emitted for a project that never throws")
	}
}

func TestBuildCacheHit(t *testing.T) {
	root := newProject(t, testManifest("cached"), map[string]string{
		"main.gox": "package main\nfunc main() {\nprintln(\"hi\")\n}\n",
	})

	b, err := NewBuilder(root)
	if err != nil {
		t.Fatal(err)
	}

	first, err := b.Build()
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	if first.Cached != 0 {
		t.Errorf("first build served %d cached units", first.Cached)
	}

	second, err := b.Build()
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if second.Cached != 1 {
		t.Errorf("second build served %d cached units, want 1", second.Cached)
	}

	// Editing the source invalidates the entry.
	writeFile(t, filepath.Join(root, "src"), "main.gox", "package main\nfunc main() {\nprintln(\"bye\")\n}\n")
	third, err := b.Build()
	if err != nil {
		t.Fatalf("third build: %v", err)
	}
	if third.Cached != 0 {
		t.Errorf("third build served %d cached units, want 0", third.Cached)
	}
	if !strings.Contains(readOutput(t, root, "main.go"), `println("bye")`) {
		t.Error("output not regenerated after the edit")
	}
}

func TestBuildNoCache(t *testing.T) {
	root := newProject(t, testManifest("nocache"), map[string]string{
		"main.gox": "package main\nfunc main() { }\n",
	})

	b, err := NewBuilder(root)
	if err != nil {
		t.Fatal(err)
	}
	b.NoCache = true

	if _, err := b.Build(); err != nil {
		t.Fatalf("build: %v", err)
	}
	res, err := b.Build()
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if res.Cached != 0 {
		t.Errorf("cached = %d with caching disabled", res.Cached)
	}
	if _, err := os.Stat(filepath.Join(root, ".goex")); !os.IsNotExist(err) {
		t.Error("cache directory created with caching disabled")
	}
}

func TestBuildSyntaxErrorLeavesNoOutput(t *testing.T) {
	root := newProject(t, testManifest("broken"), map[string]string{
		"good.gox":   "package main\nfunc main() { }\n",
		"zz_bad.gox": "package main\nfunc f( { }\n",
	})

	b, err := NewBuilder(root)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected a build error")
	}

	// The staged outputs are written all-or-nothing.
	if _, err := os.Stat(filepath.Join(root, "build", "good.go")); !os.IsNotExist(err) {
		t.Error("partial output written despite the failed build")
	}
}

func TestBuildCycleFails(t *testing.T) {
	root := newProject(t, testManifest("cyclic"), map[string]string{
		"a/a.gox": "package a\nimport \"example.com/cyclic/b\"\nfunc fa() { }\n",
		"b/b.gox": "package b\nimport \"example.com/cyclic/a\"\nfunc fb() { }\n",
	})

	b, err := NewBuilder(root)
	if err != nil {
		t.Fatal(err)
	}
	_, err = b.Build()
	if err == nil {
		t.Fatal("expected a cycle error")
	}
	if _, ok := err.(*CycleError); !ok {
		t.Errorf("error is %T, want *CycleError", err)
	}
}

func TestBuildProgress(t *testing.T) {
	root := newProject(t, testManifest("progress"), map[string]string{
		"a.gox": "package main\nfunc a() { }\n",
		"b.gox": "package main\nfunc main() { }\n",
	})

	b, err := NewBuilder(root)
	if err != nil {
		t.Fatal(err)
	}

	var seen []string
	var total int
	b.Progress = func(done, n int, path string) {
		seen = append(seen, path)
		total = n
	}

	if _, err := b.Build(); err != nil {
		t.Fatalf("build: %v", err)
	}
	if total != 2 || len(seen) != 2 {
		t.Errorf("progress calls = %v (total %d), want both units", seen, total)
	}
}

func TestBuildFallsBackToRootSourceDir(t *testing.T) {
	// No src directory: units are discovered from the project root.
	root := t.TempDir()
	man := testManifest("flat")
	if err := man.Save(root); err != nil {
		t.Fatal(err)
	}
	writeFile(t, root, "main.gox", "package main\nfunc main() { }\n")

	b, err := NewBuilder(root)
	if err != nil {
		t.Fatal(err)
	}
	res, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(res.Units) != 1 || res.Units[0] != "main.gox" {
		t.Errorf("units = %v", res.Units)
	}
}

func TestInspect(t *testing.T) {
	root := newProject(t, testManifest("info"), map[string]string{
		"main.gox": `package main
import "example.com/info/models"
func main() { }
`,
		"models/user.gox": "package models\nclass User {\n}\n",
	})

	b, err := NewBuilder(root)
	if err != nil {
		t.Fatal(err)
	}
	info, err := b.Inspect()
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}

	if len(info.Units) != 2 {
		t.Fatalf("got %d units, want 2", len(info.Units))
	}
	// Units are sorted by path.
	if info.Units[0].Path != "main.gox" || info.Units[1].Path != "models/user.gox" {
		t.Errorf("units = %v", info.Units)
	}
	if len(info.Units[0].Imports) != 1 || info.Units[0].Imports[0] != "example.com/info/models" {
		t.Errorf("main imports = %v", info.Units[0].Imports)
	}
	if info.Packages["main"] != 1 || info.Packages["models"] != 1 {
		t.Errorf("packages = %v", info.Packages)
	}
	if deps := info.Edges["main.gox"]; len(deps) != 1 || deps[0] != "models/user.gox" {
		t.Errorf("edges = %v", info.Edges)
	}

	// Inspect generates nothing.
	if _, err := os.Stat(filepath.Join(root, "build", "main.go")); !os.IsNotExist(err) {
		t.Error("inspect wrote output files")
	}
}
