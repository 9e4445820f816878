package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseVMRef_UUID(t *testing.T) {
	ref, err := ParseVMRef("3b4e9c86-1c1c-4a6e-9d3e-5a9c0f6b7a21")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ref.ID != "3b4e9c86-1c1c-4a6e-9d3e-5a9c0f6b7a21" {
		t.Errorf("expected ID set, got %+v", ref)
	}
	if ref.Name != "" {
		t.Errorf("expected empty name, got %q", ref.Name)
	}
}

func TestParseVMRef_Name(t *testing.T) {
	ref, err := ParseVMRef("web-frontend")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ref.Name != "web-frontend" || ref.ID != "" {
		t.Errorf("expected name ref, got %+v", ref)
	}
}

func TestParseVMRef_Empty(t *testing.T) {
	_, err := ParseVMRef("")
	if !errors.Is(err, ErrEmptyRef) {
		t.Fatalf("expected ErrEmptyRef, got %v", err)
	}
}

func TestVMRef_Validate(t *testing.T) {
	if err := ByName("a").Validate(); err != nil {
		t.Errorf("name ref: %v", err)
	}
	if err := (VMRef{}).Validate(); !errors.Is(err, ErrEmptyRef) {
		t.Errorf("zero ref: expected ErrEmptyRef, got %v", err)
	}
	if err := (VMRef{ID: "x", Name: "y"}).Validate(); err == nil {
		t.Error("both fields set: expected error")
	}
}

func TestVMRef_JSONShape(t *testing.T) {
	b, err := json.Marshal(ByName("db"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"name":"db"}` {
		t.Errorf("expected name-only JSON, got %s", b)
	}
	b, _ = json.Marshal(ByID("1234"))
	if string(b) != `{"id":"1234"}` {
		t.Errorf("expected id-only JSON, got %s", b)
	}
}
