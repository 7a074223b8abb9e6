package project

import (
	"strings"
	"testing"

	"github.com/goex-lang/goex/internal/syntax"
)

func makeUnit(t *testing.T, path, src string) *Unit {
	t.Helper()
	f, err := syntax.Parse(path, strings.NewReader(src), nil)
	if err != nil {
		t.Fatalf("%s: %v", path, err)
	}
	return &Unit{Path: path, Package: f.PkgName, File: f, Source: []byte(src)}
}

func orderOf(units []*Unit) []string {
	paths := make([]string, len(units))
	for i, u := range units {
		paths[i] = u.Path
	}
	return paths
}

func TestResolveImportOrder(t *testing.T) {
	units := []*Unit{
		makeUnit(t, "main.gox", `package main
import "example.com/app/models"
func main() { }
`),
		makeUnit(t, "models/user.gox", `package models
class User {
    name string
}
`),
	}

	order, err := Resolve(units, "example.com/app")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	got := orderOf(order)
	want := []string{"models/user.gox", "main.gox"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestResolveBareImport(t *testing.T) {
	units := []*Unit{
		makeUnit(t, "main.gox", `package main
import "models"
func main() { }
`),
		makeUnit(t, "models/user.gox", "package models\nclass User {\n}\n"),
	}

	order, err := Resolve(units, "example.com/app")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if orderOf(order)[0] != "models/user.gox" {
		t.Errorf("order = %v, want the models unit first", orderOf(order))
	}
}

func TestResolveInheritanceOrder(t *testing.T) {
	units := []*Unit{
		makeUnit(t, "a_student.gox", `package models
class Student extends Person {
    school string
}
`),
		makeUnit(t, "z_person.gox", `package models
class Person {
    name string
}
`),
	}

	order, err := Resolve(units, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	got := orderOf(order)
	if got[0] != "z_person.gox" || got[1] != "a_student.gox" {
		t.Errorf("order = %v, want the parent's unit first", got)
	}
}

func TestResolveStableTieBreak(t *testing.T) {
	units := []*Unit{
		makeUnit(t, "c.gox", "package p\nfunc c() { }\n"),
		makeUnit(t, "a.gox", "package p\nfunc a() { }\n"),
		makeUnit(t, "b.gox", "package p\nfunc b() { }\n"),
	}

	order, err := Resolve(units, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	got := orderOf(order)
	want := []string{"a.gox", "b.gox", "c.gox"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v (path tie-break)", got, want)
		}
	}
}

func TestResolveSameFileInheritance(t *testing.T) {
	units := []*Unit{
		makeUnit(t, "models.gox", `package models
class Person {
    name string
}
class Student extends Person {
    school string
}
`),
	}

	order, err := Resolve(units, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(order) != 1 {
		t.Errorf("got %d units, want 1", len(order))
	}
}

func TestResolveCycle(t *testing.T) {
	units := []*Unit{
		makeUnit(t, "a.gox", "package a\nimport \"b\"\nfunc fa() { }\n"),
		makeUnit(t, "b.gox", "package b\nimport \"a\"\nfunc fb() { }\n"),
		makeUnit(t, "free.gox", "package free\nfunc ff() { }\n"),
	}

	_, err := Resolve(units, "")
	if err == nil {
		t.Fatal("expected a cycle error")
	}
	ce, ok := err.(*CycleError)
	if !ok {
		t.Fatalf("error is %T, want *CycleError", err)
	}

	// Every implicated unit is named, sorted; the free unit is not.
	if len(ce.Units) != 2 || ce.Units[0] != "a.gox" || ce.Units[1] != "b.gox" {
		t.Errorf("cycle units = %v, want [a.gox b.gox]", ce.Units)
	}
	if !strings.Contains(err.Error(), "dependency cycle involving: a.gox, b.gox") {
		t.Errorf("error = %q", err)
	}
}

func TestResolveCycleExcludesDownstream(t *testing.T) {
	units := []*Unit{
		makeUnit(t, "a.gox", "package a\nimport \"b\"\nfunc fa() { }\n"),
		makeUnit(t, "b.gox", "package b\nimport \"a\"\nfunc fb() { }\n"),
		makeUnit(t, "c.gox", "package c\nimport \"a\"\nfunc fc() { }\n"),
		makeUnit(t, "d.gox", "package d\nimport \"c\"\nfunc fd() { }\n"),
	}

	_, err := Resolve(units, "")
	ce, ok := err.(*CycleError)
	if !ok {
		t.Fatalf("error is %T, want *CycleError", err)
	}

	// c and d never leave the ready queue because they sit behind the
	// cycle, but only the units on it are named.
	if len(ce.Units) != 2 || ce.Units[0] != "a.gox" || ce.Units[1] != "b.gox" {
		t.Errorf("cycle units = %v, want [a.gox b.gox]", ce.Units)
	}
}

func TestResolveUnknownSuperclass(t *testing.T) {
	units := []*Unit{
		makeUnit(t, "orphan.gox", `package models
class Orphan extends Ghost {
    x int
}
`),
	}

	_, err := Resolve(units, "")
	if err == nil {
		t.Fatal("expected a resolve error")
	}
	re, ok := err.(*ResolveError)
	if !ok {
		t.Fatalf("error is %T, want *ResolveError", err)
	}
	if re.Class != "Orphan" || re.Super != "Ghost" {
		t.Errorf("resolve error = %+v", re)
	}
	if !strings.Contains(err.Error(), "class Orphan extends unknown class Ghost") {
		t.Errorf("error = %q", err)
	}
}

func TestClasses(t *testing.T) {
	units := []*Unit{
		makeUnit(t, "a.gox", "package p\nclass A {\n}\n"),
		makeUnit(t, "b.gox", "package p\nclass B extends A {\n}\nclass C {\n}\n"),
	}

	classes := Classes(units)
	if len(classes) != 3 {
		t.Fatalf("got %d classes, want 3", len(classes))
	}
	if classes["B"].Extends != "A" {
		t.Errorf("class B extends %q, want A", classes["B"].Extends)
	}
}

func TestEdges(t *testing.T) {
	units := []*Unit{
		makeUnit(t, "main.gox", `package main
import "example.com/app/models"
func main() { }
`),
		makeUnit(t, "models/user.gox", "package models\nclass User {\n}\n"),
		makeUnit(t, "models/admin.gox", "package models\nclass Admin extends User {\n}\n"),
	}

	edges := Edges(units, "example.com/app")

	main := edges["main.gox"]
	if len(main) != 2 {
		t.Fatalf("main edges = %v, want both models units", main)
	}
	if main[0] != "models/admin.gox" || main[1] != "models/user.gox" {
		t.Errorf("main edges = %v, want sorted", main)
	}

	admin := edges["models/admin.gox"]
	if len(admin) != 1 || admin[0] != "models/user.gox" {
		t.Errorf("admin edges = %v, want [models/user.gox]", admin)
	}

	if _, ok := edges["models/user.gox"]; ok {
		t.Error("leaf unit has edges")
	}
}

func TestUsesExceptions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"plain", "package p\nfunc f() { }\n", false},
		{"try", "package p\nfunc f() {\ntry { g() } finally { h() }\n}\n", true},
		{"throw", "package p\nfunc f() {\nthrow NewException(\"E\", \"m\")\n}\n", true},
		{"new_exception", "package p\nfunc f() {\ne := new Exception(\"E\", \"m\")\nuse(e)\n}\n", true},
		{"constructor_call", "package p\nfunc f() {\ne := NewException(\"E\", \"m\")\nuse(e)\n}\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units := []*Unit{makeUnit(t, "u.gox", tt.src)}
			if got := UsesExceptions(units); got != tt.want {
				t.Errorf("UsesExceptions = %v, want %v", got, tt.want)
			}
		})
	}
}
