// Package gorecord provides:
//
// - Declarative record types: named, typed fields, validation rules and an identity field
// - Single-parent inheritance resolved once at declaration time (Registry.Declare)
// - Total type coercion of raw input (int, float, string, boolean, date, auto)
// - Live records with get/set, dirty tracking, commit/reject and a boolean IsValid
//
// Design policy:
// - Keep only public APIs in the root package; put coercion details under internal/.
// - Place the file loader under loader/, the JSON codec under codec/, and the CLI under cmd/gorecord.
// - Declarations fail fast: every problem is reported by Declare as a *ConfigError,
//   never later while records are used.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	reg := gorecord.NewRegistry()
//	reg.MustDeclare("Person.Troll", gorecord.Declaration{
//	    Fields: []gorecord.Field{
//	        gorecord.F("id", gorecord.TypeInt),
//	        gorecord.F("login", gorecord.TypeString),
//	    },
//	    Validations: []gorecord.Rule{
//	        gorecord.Presence("login"),
//	        gorecord.Length("login", 6, 32),
//	    },
//	})
//	rec, err := reg.Create("Person.Troll", map[string]any{"id": "7", "login": "billgates"})
//	rec.IsValid() // true
//	rec.ID()      // int64(7)
package gorecord
