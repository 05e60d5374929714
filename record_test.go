package gorecord_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	gorecord "github.com/reoring/gorecord"
)

func trollData(now time.Time) map[string]any {
	return map[string]any{
		"id":        0,
		"createdAt": now,
		"name":      "Steve Jobs",
		"login":     "billgates",
	}
}

func TestTroll_ValidRecord(t *testing.T) {
	reg := newTrollRegistry(t)
	now := time.Now()
	rec, err := reg.Create("Person.Troll", trollData(now))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !rec.IsValid() {
		t.Fatalf("expected valid record: %v", rec.Data())
	}
	if rec.ID() != int64(0) {
		t.Fatalf("unexpected identity: %#v", rec.ID())
	}
	if rec.IsPhantom() {
		t.Fatalf("a record constructed with an id is not phantom")
	}
	got, ok := rec.GetTime("createdAt")
	if !ok || !got.Equal(now) {
		t.Fatalf("createdAt round trip: %v %v", got, ok)
	}
	if v, _ := rec.Get("passwordHash"); v != nil {
		t.Fatalf("omitted field must be absent, got %#v", v)
	}
}

func TestTroll_SubtypeRecordIsValid(t *testing.T) {
	reg := newTrollRegistry(t)
	reg.MustDeclare("Person.TrollWithPassword", gorecord.Declaration{Extends: "Person.Troll"})
	rec, err := reg.Create("Person.TrollWithPassword", trollData(time.Now()))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !rec.IsValid() || rec.ID() != int64(0) {
		t.Fatalf("expected valid subtype record with id 0")
	}
	if !rec.Type().IsA("Person.Troll") {
		t.Fatalf("subtype record must be a Troll")
	}
}

func TestTroll_InvalidRecords(t *testing.T) {
	reg := newTrollRegistry(t)
	cases := map[string]func(map[string]any){
		"login omitted":       func(d map[string]any) { delete(d, "login") },
		"login too short":     func(d map[string]any) { d["login"] = "AB" },
		"login bad format":    func(d map[string]any) { d["login"] = "Bill Gates" },
		"name too short":      func(d map[string]any) { d["name"] = "St" },
		"login empty string":  func(d map[string]any) { d["login"] = "" },
		"login over 32 chars": func(d map[string]any) { d["login"] = "abcdefghijklmnopqrstuvwxyz0123456" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := trollData(time.Now())
			mutate(d)
			rec, err := reg.Create("Person.Troll", d)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if rec.IsValid() {
				t.Fatalf("expected invalid record: %v", rec.Data())
			}
		})
	}
}

func TestIsValid_Idempotent(t *testing.T) {
	reg := newTrollRegistry(t)
	rec, _ := reg.Create("Person.Troll", map[string]any{"id": 1, "name": "x"})
	before := rec.Data()
	first, second := rec.IsValid(), rec.IsValid()
	if first != second {
		t.Fatalf("IsValid not idempotent")
	}
	if !reflect.DeepEqual(before, rec.Data()) || rec.Dirty() {
		t.Fatalf("IsValid must not change state")
	}
}

func TestSet_CoercesAndTracksDirty(t *testing.T) {
	reg := newTrollRegistry(t)
	rec, _ := reg.Create("Person.Troll", trollData(time.Now()))

	for _, f := range rec.Type().FieldNames() {
		if rec.IsDirty(f) {
			t.Fatalf("fresh record has dirty field %s", f)
		}
	}

	if err := rec.Set("id", "0"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if rec.Dirty() {
		t.Fatalf("setting an equal value must not mark dirty")
	}

	if err := rec.Set("id", "42"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _ := rec.Get("id"); v != int64(42) {
		t.Fatalf("expected int64(42), got %#v", v)
	}
	if !rec.IsDirty("id") {
		t.Fatalf("id must be dirty")
	}
	if got := rec.Modified(); !reflect.DeepEqual(got, []string{"id"}) {
		t.Fatalf("only id may be dirty, got %v", got)
	}
	if ch := rec.Changes(); len(ch) != 1 || ch["id"] != int64(42) {
		t.Fatalf("unexpected changes: %v", ch)
	}
}

func TestSet_UnparsableDegradesToAbsent(t *testing.T) {
	reg := newTrollRegistry(t)
	rec, _ := reg.Create("Person.Troll", trollData(time.Now()))
	if err := rec.Set("createdAt", "yesterday-ish"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _ := rec.Get("createdAt"); v != nil {
		t.Fatalf("expected absent date, got %#v", v)
	}
	if !rec.IsDirty("createdAt") {
		t.Fatalf("losing a value is a change")
	}
}

func TestUnknownField(t *testing.T) {
	reg := newTrollRegistry(t)
	rec, _ := reg.Create("Person.Troll", nil)
	_, err := rec.Get("email")
	var ufe *gorecord.UnknownFieldError
	if !errors.As(err, &ufe) || ufe.Field != "email" || ufe.TypeName != "Person.Troll" {
		t.Fatalf("expected UnknownFieldError, got %v", err)
	}
	if err := rec.Set("email", "x"); !errors.Is(err, gorecord.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := rec.SetValues(map[string]any{"name": "abc", "email": "x"}); !errors.Is(err, gorecord.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if rec.Dirty() {
		t.Fatalf("SetValues must not apply anything when a key is unknown")
	}
}

func TestMarkCleanAndReject(t *testing.T) {
	reg := newTrollRegistry(t)
	rec, _ := reg.Create("Person.Troll", trollData(time.Now()))

	_ = rec.SetValues(map[string]any{"name": "Bill Gates", "login": "stevejobs"})
	_ = rec.Set("name", "Steve Wozniak")
	rec.Reject()
	if v, _ := rec.GetString("name"); v != "Steve Jobs" {
		t.Fatalf("reject must restore the clean value, got %q", v)
	}
	if v, _ := rec.GetString("login"); v != "billgates" || rec.Dirty() {
		t.Fatalf("reject must restore every field and clear flags")
	}

	_ = rec.Set("login", "stevejobs")
	rec.MarkClean()
	if rec.Dirty() {
		t.Fatalf("MarkClean must clear flags")
	}
	rec.Reject()
	if v, _ := rec.GetString("login"); v != "stevejobs" {
		t.Fatalf("reject after MarkClean keeps accepted values, got %q", v)
	}
}

func TestDefaultsAndPhantom(t *testing.T) {
	reg := gorecord.NewRegistry()
	reg.MustDeclare("Task", gorecord.Declaration{
		Fields: []gorecord.Field{
			gorecord.F("id", gorecord.TypeInt),
			gorecord.F("done", gorecord.TypeBool).WithDefault("false"),
			gorecord.F("weight", gorecord.TypeFloat).WithDefault(1),
			gorecord.F("meta", gorecord.TypeAuto),
		},
	})
	rec, _ := reg.Create("Task", map[string]any{"meta": []any{"a"}, "done": "garbage"})
	if !rec.IsPhantom() || rec.ID() != nil {
		t.Fatalf("record without id must be phantom")
	}
	if b, ok := rec.GetBool("done"); !ok || b {
		t.Fatalf("unconvertible input falls back to default, got %v %v", b, ok)
	}
	if w, ok := rec.GetFloat("weight"); !ok || w != 1 {
		t.Fatalf("default weight: %v %v", w, ok)
	}
	if _, ok := rec.GetInt("weight"); ok {
		t.Fatalf("typed getter must reject other types")
	}
	if err := rec.SetID(7); err != nil {
		t.Fatalf("set id: %v", err)
	}
	if n, _ := rec.GetInt("id"); n != 7 {
		t.Fatalf("unexpected id %d", n)
	}
	if err := rec.Set("meta", []any{"a"}); err != nil || rec.IsDirty("meta") {
		t.Fatalf("deep equal auto value must not mark dirty")
	}
}

func TestCopy(t *testing.T) {
	reg := newTrollRegistry(t)
	rec, _ := reg.Create("Person.Troll", trollData(time.Now()))
	_ = rec.Set("name", "Bill Gates")

	cp := rec.Copy()
	if cp.Dirty() {
		t.Fatalf("copy must be clean")
	}
	if v, _ := cp.GetString("name"); v != "Bill Gates" {
		t.Fatalf("copy must carry current values, got %q", v)
	}
	_ = cp.Set("name", "Other Name")
	if v, _ := rec.GetString("name"); v != "Bill Gates" {
		t.Fatalf("copy must not share state")
	}
}

func TestInclusionExclusion(t *testing.T) {
	reg := gorecord.NewRegistry()
	reg.MustDeclare("Account", gorecord.Declaration{
		Fields: []gorecord.Field{
			gorecord.F("id", gorecord.TypeInt),
			gorecord.F("level", gorecord.TypeInt),
			gorecord.F("login", gorecord.TypeString),
		},
		Validations: []gorecord.Rule{
			gorecord.Inclusion("level", "1", 2, 3.0),
			gorecord.Exclusion("login", "root", "admin"),
		},
	})
	ok, _ := reg.Create("Account", map[string]any{"level": "2", "login": "bill"})
	if !ok.IsValid() {
		t.Fatalf("expected valid account")
	}
	badLevel, _ := reg.Create("Account", map[string]any{"level": 9, "login": "bill"})
	if badLevel.IsValid() {
		t.Fatalf("level 9 is not included")
	}
	reserved, _ := reg.Create("Account", map[string]any{"level": 1, "login": "root"})
	if reserved.IsValid() {
		t.Fatalf("login root is excluded")
	}
}

func TestDefaults_NotSharedBetweenRecords(t *testing.T) {
	reg := gorecord.NewRegistry()
	tags := []any{"a"}
	rt := reg.MustDeclare("Tagged", gorecord.Declaration{
		Fields: []gorecord.Field{
			gorecord.F("tags", gorecord.TypeAuto).WithDefault(tags),
			gorecord.F("meta", gorecord.TypeAuto).WithDefault(map[string]any{"k": "v"}),
		},
	})
	tags[0] = "changed"

	first := gorecord.New(rt, nil)
	v, _ := first.Get("tags")
	v.([]any)[0] = "x"
	m, _ := first.Get("meta")
	m.(map[string]any)["k"] = "x"

	second := gorecord.New(rt, nil)
	if v, _ := second.Get("tags"); !reflect.DeepEqual(v, []any{"a"}) {
		t.Fatalf("default tags leaked between records: %v", v)
	}
	if m, _ := second.Get("meta"); !reflect.DeepEqual(m, map[string]any{"k": "v"}) {
		t.Fatalf("default meta leaked between records: %v", m)
	}
	if f, _ := rt.Field("tags"); !reflect.DeepEqual(f.Default, []any{"a"}) {
		t.Fatalf("declared default must be copied, got %v", f.Default)
	}

	cp := second.Copy()
	v, _ = cp.Get("tags")
	v.([]any)[0] = "y"
	if v, _ := second.Get("tags"); !reflect.DeepEqual(v, []any{"a"}) {
		t.Fatalf("copy must not share values, got %v", v)
	}
}
