package unreadcache

import (
	"errors"
	"strings"
	"testing"
)

func TestRegistryGetBeforeCreate(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Get()
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if !strings.Contains(err.Error(), "Create") {
		t.Fatalf("error should identify the missing initialization: %q", err.Error())
	}
}

func TestRegistryCreateReplaces(t *testing.T) {
	reg := NewRegistry()

	first, err := reg.Create(Options{Namespace: "newsletters", Cache: newMemCache()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := reg.Get()
	if err != nil || got != first {
		t.Fatalf("Get should return the created manager, got %v err=%v", got, err)
	}

	second, err := reg.Create(Options{Namespace: "newsletters", Cache: newMemCache()})
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	got, err = reg.Get()
	if err != nil || got != second || got == first {
		t.Fatalf("second Create must replace, not merge")
	}
}

func TestRegistryCreateInvalidOptionsLeavesRegistration(t *testing.T) {
	reg := NewRegistry()
	valid, err := reg.Create(Options{Namespace: "newsletters", Cache: newMemCache()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := reg.Create(Options{}); err == nil {
		t.Fatalf("Create with no cache should fail")
	}
	got, err := reg.Get()
	if err != nil || got != valid {
		t.Fatalf("failed Create must not clobber the registration")
	}
}

func TestRegistryReset(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Create(Options{Namespace: "newsletters", Cache: newMemCache()}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	reg.Reset()
	if _, err := reg.Get(); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Reset should clear the registration, got %v", err)
	}
}
