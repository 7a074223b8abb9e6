package project

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheStoreLookup(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), ".goex", "cache.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer cache.Close()

	if _, hit := cache.Lookup("main.gox", "h1"); hit {
		t.Error("hit on an empty cache")
	}

	if err := cache.Store("main.gox", "h1", "package main\n"); err != nil {
		t.Fatalf("store: %v", err)
	}

	out, hit := cache.Lookup("main.gox", "h1")
	if !hit || out != "package main\n" {
		t.Errorf("lookup = (%q, %v), want cached output", out, hit)
	}

	// A different fingerprint misses even though the path is known.
	if _, hit := cache.Lookup("main.gox", "h2"); hit {
		t.Error("stale entry served for a changed fingerprint")
	}
}

func TestCacheOverwrite(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer cache.Close()

	if err := cache.Store("u.gox", "h1", "old"); err != nil {
		t.Fatal(err)
	}
	if err := cache.Store("u.gox", "h2", "new"); err != nil {
		t.Fatal(err)
	}

	if _, hit := cache.Lookup("u.gox", "h1"); hit {
		t.Error("old entry survived the overwrite")
	}
	if out, hit := cache.Lookup("u.gox", "h2"); !hit || out != "new" {
		t.Errorf("lookup = (%q, %v), want the new entry", out, hit)
	}
}

func TestFingerprint(t *testing.T) {
	classes := Classes([]*Unit{
		makeUnit(t, "m.gox", "package p\nclass A {\n    x int\n}\n"),
	})

	base := Fingerprint([]byte("src"), "example.com/app", classes)

	if got := Fingerprint([]byte("src"), "example.com/app", classes); got != base {
		t.Error("fingerprint is not deterministic")
	}
	if got := Fingerprint([]byte("other"), "example.com/app", classes); got == base {
		t.Error("source change did not alter the fingerprint")
	}
	if got := Fingerprint([]byte("src"), "example.com/renamed", classes); got == base {
		t.Error("module change did not alter the fingerprint")
	}

	// A change to any class shape invalidates the fingerprint.
	grown := Classes([]*Unit{
		makeUnit(t, "m.gox", "package p\nclass A {\n    x int\n    y int\n}\n"),
	})
	if got := Fingerprint([]byte("src"), "example.com/app", grown); got == base {
		t.Error("class shape change did not alter the fingerprint")
	}

	if !isHex(base) {
		t.Errorf("fingerprint %q is not hex", base)
	}
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return !('0' <= r && r <= '9' || 'a' <= r && r <= 'f')
	}) < 0
}
