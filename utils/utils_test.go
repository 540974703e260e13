package utils

import (
	"database/sql"
	"testing"
)

func TestCreatePagination(t *testing.T) {
	p := CreatePagination(45, 2, 10)
	if p.TotalPages != 5 {
		t.Fatalf("expected 5 pages, got %d", p.TotalPages)
	}
	if p.CurrentPage != 2 || p.PageSize != 10 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
}

func TestCreatePaginationDefaults(t *testing.T) {
	p := CreatePagination(3, 0, 0)
	if p.CurrentPage != 1 || p.PageSize != 10 {
		t.Fatalf("expected defaults page=1 size=10, got %+v", p)
	}
	if p.TotalPages != 1 {
		t.Fatalf("expected 1 page, got %d", p.TotalPages)
	}
}

func TestNullStringToStringPtr(t *testing.T) {
	ns := sql.NullString{String: "hello", Valid: true}
	p := NullStringToStringPtr(ns)
	if p == nil || *p != "hello" {
		t.Fatalf("expected pointer to 'hello', got %v", p)
	}

	ns2 := sql.NullString{Valid: false}
	if p2 := NullStringToStringPtr(ns2); p2 != nil {
		t.Fatalf("expected nil pointer, got %v", p2)
	}
}

func TestPointerToString(t *testing.T) {
	s := "world"
	if PointerToString(&s) != "world" {
		t.Fatalf("expected 'world'")
	}
	if PointerToString(nil) != "<nil>" {
		t.Fatalf("expected '<nil>' for nil pointer")
	}
}
