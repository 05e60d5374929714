package gorecord

import "github.com/reoring/gorecord/internal/coerce"

// Coerce converts raw into the representation of t (see FieldType). It never
// fails: input that cannot be converted yields nil, leaving it to a presence
// rule to flag the absence.
func Coerce(raw any, t FieldType) any {
	return coerceLayout(raw, t, "")
}

func (f Field) coerce(raw any) any {
	return coerceLayout(raw, f.Type, f.DateFormat)
}

func coerceLayout(raw any, t FieldType, layout string) any {
	switch t {
	case TypeInt:
		if v, ok := coerce.Int(raw); ok {
			return v
		}
	case TypeFloat:
		if v, ok := coerce.Float(raw); ok {
			return v
		}
	case TypeString:
		if v, ok := coerce.String(raw); ok {
			return v
		}
	case TypeBool:
		if v, ok := coerce.Bool(raw); ok {
			return v
		}
	case TypeDate:
		if v, ok := coerce.Time(raw, layout); ok {
			return v
		}
	default:
		return raw
	}
	return nil
}
