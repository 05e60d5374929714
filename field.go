package gorecord

// Field describes one named, typed attribute of a record type.
type Field struct {
	Name string
	Type FieldType
	// Default is used when raw input omits the field. nil means no default.
	Default any
	// DateFormat is a time layout tried first when coercing TypeDate input.
	DateFormat string
}

// F is shorthand for a Field without a default.
func F(name string, t FieldType) Field { return Field{Name: name, Type: t} }

// WithDefault returns a copy of f carrying v as its default.
func (f Field) WithDefault(v any) Field {
	f.Default = v
	return f
}

// mergeFields starts from inherited in its order and applies declared on top:
// a field whose name already exists replaces it in place, any other is appended.
func mergeFields(inherited, declared []Field) []Field {
	out := make([]Field, len(inherited), len(inherited)+len(declared))
	copy(out, inherited)
	pos := make(map[string]int, len(inherited)+len(declared))
	for i, f := range out {
		pos[f.Name] = i
	}
	for _, f := range declared {
		if i, ok := pos[f.Name]; ok {
			out[i] = f
			continue
		}
		pos[f.Name] = len(out)
		out = append(out, f)
	}
	return out
}
