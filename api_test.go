package gorecord_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	gorecord "github.com/reoring/gorecord"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := gorecord.Issues{
		{Path: "/a", Code: gorecord.CodeUnknownRule},
		{Path: "/b", Code: gorecord.CodeUndeclaredField, Hint: "ghost"},
		{Path: "/c", Code: gorecord.CodeInvalidPattern},
		{Path: "/d", Code: gorecord.CodeInvalidBounds},
	}
	s := iss.Error()
	if !strings.Contains(s, "undeclared_field at /b (ghost)") || !strings.Contains(s, "(total 4)") {
		t.Fatalf("unexpected summary: %s", s)
	}
}

func TestConfigError_WrapsIssues(t *testing.T) {
	err := fmt.Errorf("loading: %w", &gorecord.ConfigError{
		TypeName: "T",
		Issues:   gorecord.Issues{{Path: "/", Code: gorecord.CodeEmptyName}},
	})
	if !errors.Is(err, gorecord.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration")
	}
	iss, ok := gorecord.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != gorecord.CodeEmptyName {
		t.Fatalf("unexpected issues: %v", iss)
	}
	if _, ok := gorecord.AsIssues(nil); ok {
		t.Fatalf("nil error has no issues")
	}
}

func TestCoerce(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		raw  any
		typ  gorecord.FieldType
		want any
	}{
		{"42", gorecord.TypeInt, int64(42)},
		{"x", gorecord.TypeInt, nil},
		{nil, gorecord.TypeString, nil},
		{12, gorecord.TypeString, "12"},
		{"true", gorecord.TypeBool, true},
		{0, gorecord.TypeBool, false},
		{"2.5", gorecord.TypeFloat, 2.5},
		{"2025-01-01T00:00:00Z", gorecord.TypeDate, ts},
		{"never", gorecord.TypeDate, nil},
		{[]int{1}, gorecord.TypeAuto, []int{1}},
	}
	for _, c := range cases {
		got := gorecord.Coerce(c.raw, c.typ)
		if fmt.Sprint(got) != fmt.Sprint(c.want) || (got == nil) != (c.want == nil) {
			t.Fatalf("Coerce(%#v, %s) = %#v, want %#v", c.raw, c.typ, got, c.want)
		}
	}
}

func TestParseFieldType(t *testing.T) {
	for in, want := range map[string]gorecord.FieldType{
		"":        gorecord.TypeAuto,
		"integer": gorecord.TypeInt,
		"number":  gorecord.TypeFloat,
		"bool":    gorecord.TypeBool,
		"date":    gorecord.TypeDate,
	} {
		got, ok := gorecord.ParseFieldType(in)
		if !ok || got != want || !got.Valid() {
			t.Fatalf("ParseFieldType(%q) = %q,%v", in, got, ok)
		}
	}
	if _, ok := gorecord.ParseFieldType("decimal"); ok {
		t.Fatalf("decimal is not a field type")
	}
	if gorecord.RuleKind("between").Valid() {
		t.Fatalf("between is not a rule kind")
	}
}

func TestRule_String(t *testing.T) {
	if s := gorecord.MinLength("name", 3).String(); s != "length(name,3,*)" {
		t.Fatalf("unexpected: %s", s)
	}
	if s := gorecord.Presence("login").String(); s != "presence(login)" {
		t.Fatalf("unexpected: %s", s)
	}
}
