package gorecord

// FieldType names the declared type of a field. Values read from a record are
// represented as:
//
//	TypeInt    int64
//	TypeFloat  float64
//	TypeString string
//	TypeBool   bool
//	TypeDate   time.Time
//	TypeAuto   the raw value, unchanged
//
// An absent value is always nil regardless of the type.
type FieldType string

const (
	TypeAuto   FieldType = "auto"
	TypeInt    FieldType = "int"
	TypeFloat  FieldType = "float"
	TypeString FieldType = "string"
	TypeBool   FieldType = "boolean"
	TypeDate   FieldType = "date"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case TypeAuto, TypeInt, TypeFloat, TypeString, TypeBool, TypeDate:
		return true
	}
	return false
}

// ParseFieldType maps a declared type name onto a FieldType. The empty name is
// TypeAuto; "integer", "number" and "bool" are accepted as aliases.
func ParseFieldType(s string) (FieldType, bool) {
	switch s {
	case "", "auto":
		return TypeAuto, true
	case "int", "integer":
		return TypeInt, true
	case "float", "number":
		return TypeFloat, true
	case "string":
		return TypeString, true
	case "boolean", "bool":
		return TypeBool, true
	case "date":
		return TypeDate, true
	}
	return FieldType(s), false
}

// RuleKind names a validation rule kind.
type RuleKind string

const (
	RulePresence  RuleKind = "presence"
	RuleLength    RuleKind = "length"
	RuleFormat    RuleKind = "format"
	RuleInclusion RuleKind = "inclusion"
	RuleExclusion RuleKind = "exclusion"
)

// Valid reports whether k is a supported rule kind.
func (k RuleKind) Valid() bool {
	switch k {
	case RulePresence, RuleLength, RuleFormat, RuleInclusion, RuleExclusion:
		return true
	}
	return false
}
