package gorecord

import (
	"time"

	"github.com/reoring/gorecord/internal/coerce"
)

// Record is a live instance of a RecordType. It holds one coerced value per
// declared field and remembers which fields changed since it was constructed
// or last marked clean.
//
// A Record is not safe for concurrent mutation.
type Record struct {
	typ      *RecordType
	values   map[string]any
	dirty    map[string]bool
	original map[string]any // values at the last clean point, for dirty fields
	phantom  bool
}

// New constructs a record of type rt from raw data keyed by field name.
// Every declared field is coerced to its type; missing or unconvertible input
// falls back to the field default, or nil. Keys that name no field are
// ignored. The new record is clean.
func New(rt *RecordType, data map[string]any) *Record {
	rec := &Record{
		typ:      rt,
		values:   make(map[string]any, len(rt.fields)),
		dirty:    make(map[string]bool, len(rt.fields)),
		original: map[string]any{},
	}
	for _, f := range rt.fields {
		v := f.coerce(data[f.Name])
		if v == nil {
			v = coerce.Clone(f.Default)
		}
		rec.values[f.Name] = v
		rec.dirty[f.Name] = false
	}
	rec.phantom = rec.values[rt.idProperty] == nil
	return rec
}

// Type returns the record type the record is bound to.
func (r *Record) Type() *RecordType { return r.typ }

// Get returns the current value of the named field.
func (r *Record) Get(name string) (any, error) {
	if _, ok := r.typ.index[name]; !ok {
		return nil, unknownField(r.typ, name)
	}
	return r.values[name], nil
}

// Set coerces raw to the field's type and stores it. Storing a value equal to
// the current one changes nothing; any other value marks the field dirty.
func (r *Record) Set(name string, raw any) error {
	f, ok := r.typ.Field(name)
	if !ok {
		return unknownField(r.typ, name)
	}
	r.set(f, f.coerce(raw))
	return nil
}

// SetValues sets several fields at once, in schema order. When any key names
// an unknown field nothing is changed.
func (r *Record) SetValues(data map[string]any) error {
	for name := range data {
		if _, ok := r.typ.index[name]; !ok {
			return unknownField(r.typ, name)
		}
	}
	for _, f := range r.typ.fields {
		if raw, ok := data[f.Name]; ok {
			r.set(f, f.coerce(raw))
		}
	}
	return nil
}

func (r *Record) set(f Field, v any) {
	cur := r.values[f.Name]
	if coerce.Equal(cur, v) {
		return
	}
	if !r.dirty[f.Name] {
		r.original[f.Name] = cur
		r.dirty[f.Name] = true
	}
	r.values[f.Name] = v
}

// ID returns the value of the identity field.
func (r *Record) ID() any { return r.values[r.typ.idProperty] }

// SetID sets the identity field.
func (r *Record) SetID(v any) error { return r.Set(r.typ.idProperty, v) }

// IsPhantom reports whether the record was constructed without an identity.
func (r *Record) IsPhantom() bool { return r.phantom }

// IsValid reports whether every rule of the record type passes against the
// current values. It has no side effects.
func (r *Record) IsValid() bool {
	for _, ru := range r.typ.rules {
		if !ru.check(r.values[ru.Field]) {
			return false
		}
	}
	return true
}

// IsDirty reports whether the named field changed since the last clean point.
func (r *Record) IsDirty(name string) bool { return r.dirty[name] }

// Dirty reports whether any field changed since the last clean point.
func (r *Record) Dirty() bool {
	for _, d := range r.dirty {
		if d {
			return true
		}
	}
	return false
}

// Modified returns the names of dirty fields in schema order.
func (r *Record) Modified() []string {
	var out []string
	for _, f := range r.typ.fields {
		if r.dirty[f.Name] {
			out = append(out, f.Name)
		}
	}
	return out
}

// Changes returns the current values of dirty fields.
func (r *Record) Changes() map[string]any {
	out := map[string]any{}
	for name, d := range r.dirty {
		if d {
			out[name] = r.values[name]
		}
	}
	return out
}

// MarkClean accepts the current values: all dirty flags are cleared.
func (r *Record) MarkClean() {
	for name := range r.dirty {
		r.dirty[name] = false
	}
	clear(r.original)
}

// Reject restores the values of dirty fields to those at the last clean
// point and clears all dirty flags.
func (r *Record) Reject() {
	for name, v := range r.original {
		r.values[name] = v
	}
	r.MarkClean()
}

// Data returns a copy of the current values keyed by field name.
func (r *Record) Data() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Copy returns a clean record of the same type holding copies of the current
// values.
func (r *Record) Copy() *Record {
	values := make(map[string]any, len(r.values))
	for k, v := range r.values {
		values[k] = coerce.Clone(v)
	}
	cp := &Record{
		typ:      r.typ,
		values:   values,
		dirty:    make(map[string]bool, len(r.dirty)),
		original: map[string]any{},
		phantom:  r.phantom,
	}
	for name := range r.dirty {
		cp.dirty[name] = false
	}
	return cp
}

// GetInt returns the named field as int64. ok is false when the field is
// unknown, absent or not an int field.
func (r *Record) GetInt(name string) (int64, bool) {
	v, ok := r.values[name].(int64)
	return v, ok
}

// GetFloat returns the named field as float64.
func (r *Record) GetFloat(name string) (float64, bool) {
	v, ok := r.values[name].(float64)
	return v, ok
}

// GetString returns the named field as a string.
func (r *Record) GetString(name string) (string, bool) {
	v, ok := r.values[name].(string)
	return v, ok
}

// GetBool returns the named field as a bool.
func (r *Record) GetBool(name string) (bool, bool) {
	v, ok := r.values[name].(bool)
	return v, ok
}

// GetTime returns the named field as a time.Time.
func (r *Record) GetTime(name string) (time.Time, bool) {
	v, ok := r.values[name].(time.Time)
	return v, ok
}
