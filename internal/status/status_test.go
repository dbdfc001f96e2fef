package status

import (
	"errors"
	"strings"
	"testing"
)

func TestOKInjectsHostAttributes(t *testing.T) {
	s := OK(map[string]string{"action": "resolve"})
	if !s.Ok() {
		t.Fatalf("expected ok status")
	}
	for _, key := range []string{"hostname", "resolvedname", "version", "action"} {
		if !s.Contains(key) {
			t.Fatalf("expected attribute %q to be present", key)
		}
	}
}

func TestFromErrorCarriesErrorAttribute(t *testing.T) {
	s := FromError(errors.New("boom"), map[string]string{"secret": "foo"})
	if s.Ok() {
		t.Fatalf("expected failed status")
	}
	got, ok := s.Get("error")
	if !ok || got != "boom" {
		t.Fatalf("error attribute = %q, %v; want boom, true", got, ok)
	}
	if v, _ := s.Get("secret"); v != "foo" {
		t.Fatalf("secret attribute = %q, want foo", v)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := OK(nil)
	v, ok := s.Get("nope")
	if ok || v != "" {
		t.Fatalf("Get(nope) = %q, %v; want empty, false", v, ok)
	}
	if s.Contains("nope") {
		t.Fatalf("Contains(nope) should be false")
	}
}

func TestInjectedKeysOverrideCallerValues(t *testing.T) {
	s := OK(map[string]string{"hostname": "spoofed"})
	v, _ := s.Get("hostname")
	if v == "spoofed" {
		t.Fatalf("caller value should not override injected hostname")
	}
}

func TestStringDeterministicSortedOrder(t *testing.T) {
	attrs := map[string]string{"zebra": "1", "alpha": "2", "mid": "3"}
	a := New(false, attrs).String()
	b := New(false, attrs).String()
	if a != b {
		t.Fatalf("renderings differ:\n%s\n%s", a, b)
	}
	if !strings.HasPrefix(a, "<Status BAD ") {
		t.Fatalf("unexpected prefix: %s", a)
	}
	if strings.Index(a, "alpha=") > strings.Index(a, "mid=") ||
		strings.Index(a, "mid=") > strings.Index(a, "zebra=") {
		t.Fatalf("attributes not sorted: %s", a)
	}
}

func TestAsMapIncludesOutcome(t *testing.T) {
	m := OK(map[string]string{"k": "v"}).AsMap()
	if m["ok"] != true {
		t.Fatalf("ok = %v, want true", m["ok"])
	}
	if m["k"] != "v" {
		t.Fatalf("k = %v, want v", m["k"])
	}
}
