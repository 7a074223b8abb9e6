package project

import (
	"sort"
	"strings"

	"github.com/goex-lang/goex/internal/syntax"
)

// Unit is one parsed source file of a project.
type Unit struct {
	Path    string // slash-separated path relative to the source dir
	Package string
	File    *syntax.File
	Source  []byte
}

// CycleError reports a dependency cycle between units.
type CycleError struct {
	Units []string // every unit implicated in the cycle, sorted
}

func (e *CycleError) Error() string {
	return "dependency cycle involving: " + strings.Join(e.Units, ", ")
}

// ResolveError reports an unresolvable superclass reference.
type ResolveError struct {
	Unit  string
	Class string
	Super string
}

func (e *ResolveError) Error() string {
	return e.Unit + ": class " + e.Class + " extends unknown class " + e.Super
}

// Classes collects every class declared across the units.
func Classes(units []*Unit) map[string]*syntax.ClassDecl {
	classes := map[string]*syntax.ClassDecl{}
	for _, u := range units {
		for _, d := range u.File.Decls {
			if c, ok := d.(*syntax.ClassDecl); ok {
				classes[c.Name] = c
			}
		}
	}
	return classes
}

// Resolve orders units so every unit comes after the units it depends
// on. A unit depends on another when it imports that unit's package, or
// when one of its classes extends a class the other declares. Kahn's
// algorithm; ties are broken by source path so the order is stable.
func Resolve(units []*Unit, module string) ([]*Unit, error) {
	byPath := map[string]*Unit{}
	byPackage := map[string][]*Unit{}
	classOwner := map[string]*Unit{}

	for _, u := range units {
		byPath[u.Path] = u
		byPackage[u.Package] = append(byPackage[u.Package], u)
		for _, d := range u.File.Decls {
			if c, ok := d.(*syntax.ClassDecl); ok {
				classOwner[c.Name] = u
			}
		}
	}

	deps := map[string]map[string]bool{}
	addDep := func(u *Unit, on *Unit) {
		if on == nil || on.Path == u.Path {
			return
		}
		if deps[u.Path] == nil {
			deps[u.Path] = map[string]bool{}
		}
		deps[u.Path][on.Path] = true
	}

	for _, u := range units {
		// Import edges: a local import names a sibling package either
		// bare or as a path under the project module.
		for _, imp := range u.File.Imports {
			pkg := imp.Path
			if module != "" && strings.HasPrefix(pkg, module+"/") {
				pkg = pkg[len(module)+1:]
			}
			for _, provider := range byPackage[pkg] {
				addDep(u, provider)
			}
		}

		// Inheritance edges, with superclass resolution checked here:
		// an unknown parent is fatal for the whole build.
		for _, d := range u.File.Decls {
			c, ok := d.(*syntax.ClassDecl)
			if !ok || c.Extends == "" {
				continue
			}
			owner, found := classOwner[c.Extends]
			if !found {
				return nil, &ResolveError{Unit: u.Path, Class: c.Name, Super: c.Extends}
			}
			addDep(u, owner)
		}
	}

	// Kahn's algorithm over the dependency edges.
	indeg := map[string]int{}
	dependents := map[string][]string{}
	for _, u := range units {
		indeg[u.Path] = 0
	}
	for path, set := range deps {
		for on := range set {
			indeg[path]++
			dependents[on] = append(dependents[on], path)
		}
	}

	var ready []string
	for path, n := range indeg {
		if n == 0 {
			ready = append(ready, path)
		}
	}
	sort.Strings(ready)

	order := make([]*Unit, 0, len(units))
	for len(ready) > 0 {
		path := ready[0]
		ready = ready[1:]
		order = append(order, byPath[path])

		released := false
		for _, dep := range dependents[path] {
			indeg[dep]--
			if indeg[dep] == 0 {
				ready = append(ready, dep)
				released = true
			}
		}
		if released {
			sort.Strings(ready)
		}
	}

	if len(order) < len(units) {
		return nil, &CycleError{Units: cycleMembers(deps, indeg)}
	}

	return order, nil
}

// cycleMembers names the units actually on a dependency cycle. Kahn's
// algorithm leaves behind both cycle members and units downstream of
// them, so the residual set is narrowed to its strongly connected
// components of more than one unit.
func cycleMembers(deps map[string]map[string]bool, indeg map[string]int) []string {
	residual := map[string]bool{}
	for path, n := range indeg {
		if n > 0 {
			residual[path] = true
		}
	}

	// Tarjan's algorithm over the residual subgraph.
	index := map[string]int{}
	low := map[string]int{}
	onStack := map[string]bool{}
	var stack []string
	var next int
	var members []string

	var connect func(v string)
	connect = func(v string) {
		index[v] = next
		low[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for w := range deps[v] {
			if !residual[w] {
				continue
			}
			if _, seen := index[w]; !seen {
				connect(w)
				if low[w] < low[v] {
					low[v] = low[w]
				}
			} else if onStack[w] && index[w] < low[v] {
				low[v] = index[w]
			}
		}

		if low[v] == index[v] {
			var comp []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			// Self-dependencies are never recorded, so a trivial
			// component cannot be a cycle.
			if len(comp) > 1 {
				members = append(members, comp...)
			}
		}
	}

	for v := range residual {
		if _, seen := index[v]; !seen {
			connect(v)
		}
	}

	sort.Strings(members)
	return members
}

// Edges returns the dependency edges for reporting: unit path to the
// sorted paths it depends on.
func Edges(units []*Unit, module string) map[string][]string {
	// Reuse Resolve's edge construction by rebuilding it cheaply here.
	byPackage := map[string][]*Unit{}
	classOwner := map[string]*Unit{}
	for _, u := range units {
		byPackage[u.Package] = append(byPackage[u.Package], u)
		for _, d := range u.File.Decls {
			if c, ok := d.(*syntax.ClassDecl); ok {
				classOwner[c.Name] = u
			}
		}
	}

	edges := map[string][]string{}
	for _, u := range units {
		set := map[string]bool{}
		for _, imp := range u.File.Imports {
			pkg := imp.Path
			if module != "" && strings.HasPrefix(pkg, module+"/") {
				pkg = pkg[len(module)+1:]
			}
			for _, provider := range byPackage[pkg] {
				if provider.Path != u.Path {
					set[provider.Path] = true
				}
			}
		}
		for _, d := range u.File.Decls {
			if c, ok := d.(*syntax.ClassDecl); ok && c.Extends != "" {
				if owner, found := classOwner[c.Extends]; found && owner.Path != u.Path {
					set[owner.Path] = true
				}
			}
		}
		if len(set) > 0 {
			var list []string
			for path := range set {
				list = append(list, path)
			}
			sort.Strings(list)
			edges[u.Path] = list
		}
	}
	return edges
}
