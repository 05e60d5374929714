package gorecord

import "github.com/reoring/gorecord/internal/coerce"

// RecordType is the finalized definition of a declared type: inherited and own
// fields merged, inherited and own rules concatenated. It is immutable once
// the registry publishes it.
type RecordType struct {
	name       string
	parent     *RecordType
	idProperty string
	fields     []Field
	index      map[string]int
	rules      []Rule
}

// Name returns the name the type was declared under.
func (rt *RecordType) Name() string { return rt.name }

// Parent returns the type this one extends, or nil.
func (rt *RecordType) Parent() *RecordType { return rt.parent }

// IDProperty names the identity field.
func (rt *RecordType) IDProperty() string { return rt.idProperty }

// Fields returns the finalized fields in order: ancestor fields first, own
// fields appended, overrides kept at the ancestor's position.
func (rt *RecordType) Fields() []Field {
	out := make([]Field, len(rt.fields))
	for i, f := range rt.fields {
		f.Default = coerce.Clone(f.Default)
		out[i] = f
	}
	return out
}

// FieldNames returns the field names in schema order.
func (rt *RecordType) FieldNames() []string {
	out := make([]string, len(rt.fields))
	for i, f := range rt.fields {
		out[i] = f.Name
	}
	return out
}

// Field looks up a field by name.
func (rt *RecordType) Field(name string) (Field, bool) {
	i, ok := rt.index[name]
	if !ok {
		return Field{}, false
	}
	f := rt.fields[i]
	f.Default = coerce.Clone(f.Default)
	return f, true
}

// Rules returns copies of the finalized rules: ancestor rules first, in
// declaration order.
func (rt *RecordType) Rules() []Rule {
	out := make([]Rule, len(rt.rules))
	for i, r := range rt.rules {
		out[i] = r.clone()
	}
	return out
}

// IsA reports whether rt is the named type or extends it.
func (rt *RecordType) IsA(name string) bool {
	for t := rt; t != nil; t = t.parent {
		if t.name == name {
			return true
		}
	}
	return false
}

func (rt *RecordType) String() string { return rt.name }
