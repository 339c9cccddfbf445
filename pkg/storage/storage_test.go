package storage

import (
	"errors"
	"strings"
	"testing"
)

func TestObjectName(t *testing.T) {
	name, err := ObjectName("/products/flores/rosas/", "Foto.JPEG", "image/jpeg")
	if err != nil {
		t.Fatalf("ObjectName returned error: %v", err)
	}
	if !strings.HasPrefix(name, "products/flores/rosas/") || !strings.HasSuffix(name, ".jpg") {
		t.Fatalf("unexpected object name %q", name)
	}

	name, err = ObjectName("products", "file.gif", "image/gif")
	if err != nil {
		t.Fatalf("ObjectName returned error: %v", err)
	}
	if !strings.HasSuffix(name, ".gif") {
		t.Fatalf("expected extension fallback, got %q", name)
	}
}

func TestCleanKeyRejectsTraversal(t *testing.T) {
	for _, key := range []string{"", "/", "..", "../secrets", "a/../../b"} {
		if _, err := CleanKey(key); !errors.Is(err, ErrInvalidObject) {
			t.Fatalf("CleanKey(%q) expected ErrInvalidObject, got %v", key, err)
		}
	}
	got, err := CleanKey("products//a/./b")
	if err != nil || got != "products/a/b" {
		t.Fatalf("CleanKey returned %q, %v", got, err)
	}
}
