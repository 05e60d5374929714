package gorecord

import (
	"fmt"
	"regexp"

	"github.com/reoring/gorecord/internal/coerce"
)

// Rule is a parameterized check against one field's current value.
// Build rules with Presence, Length, Format, Inclusion and Exclusion; a Rule
// is finalized (pattern compiled, list members coerced) when the type that
// owns it is declared.
type Rule struct {
	Kind  RuleKind
	Field string
	// Min and Max bound a length rule; nil means unbounded on that side.
	Min, Max *int
	// Matcher is the regular expression of a format rule.
	Matcher string
	// List holds the members of an inclusion or exclusion rule.
	List []any

	re      *regexp.Regexp
	members []any
}

// Presence fails when the field is absent or an empty string.
func Presence(field string) Rule { return Rule{Kind: RulePresence, Field: field} }

// Length fails when the length of the value lies outside [minLen, maxLen].
func Length(field string, minLen, maxLen int) Rule {
	return Rule{Kind: RuleLength, Field: field, Min: &minLen, Max: &maxLen}
}

// MinLength is a length rule bounded only from below.
func MinLength(field string, n int) Rule {
	return Rule{Kind: RuleLength, Field: field, Min: &n}
}

// MaxLength is a length rule bounded only from above.
func MaxLength(field string, n int) Rule {
	return Rule{Kind: RuleLength, Field: field, Max: &n}
}

// Format fails when a non-empty value does not match pattern. Empty values
// pass; presence owns that case.
func Format(field, pattern string) Rule {
	return Rule{Kind: RuleFormat, Field: field, Matcher: pattern}
}

// FormatRegexp is Format with an already compiled expression.
func FormatRegexp(field string, re *regexp.Regexp) Rule {
	return Rule{Kind: RuleFormat, Field: field, Matcher: re.String(), re: re}
}

// Inclusion fails when the value is not one of list.
func Inclusion(field string, list ...any) Rule {
	return Rule{Kind: RuleInclusion, Field: field, List: list}
}

// Exclusion fails when the value is one of list.
func Exclusion(field string, list ...any) Rule {
	return Rule{Kind: RuleExclusion, Field: field, List: list}
}

func (r Rule) String() string {
	switch r.Kind {
	case RuleLength:
		return fmt.Sprintf("length(%s,%s,%s)", r.Field, bound(r.Min), bound(r.Max))
	case RuleFormat:
		return fmt.Sprintf("format(%s,/%s/)", r.Field, r.Matcher)
	case RuleInclusion, RuleExclusion:
		return fmt.Sprintf("%s(%s,%v)", r.Kind, r.Field, r.List)
	}
	return fmt.Sprintf("%s(%s)", r.Kind, r.Field)
}

func bound(p *int) string {
	if p == nil {
		return "*"
	}
	return fmt.Sprint(*p)
}

// finalize checks r against the field it names and prepares its parameters.
// fields is the finalized schema of the owning type.
func (r Rule) finalize(fields map[string]Field, ref PathRef) (Rule, Issues) {
	r = r.clone()
	var iss Issues
	if !r.Kind.Valid() {
		return r, AppendIssues(iss, ref.Field("type").Issue(CodeUnknownRule, string(r.Kind), "kind", r.Kind))
	}
	f, ok := fields[r.Field]
	if !ok {
		return r, AppendIssues(iss, ref.Field("field").Issue(CodeUndeclaredField, r.Field, "field", r.Field))
	}
	switch r.Kind {
	case RuleLength, RuleFormat:
		if f.Type != TypeString && f.Type != TypeAuto {
			return r, AppendIssues(iss, ref.Issue(CodeIncompatibleRule, r.String(), "kind", r.Kind, "type", f.Type, "field", f.Name))
		}
	}
	switch r.Kind {
	case RuleLength:
		if (r.Min != nil && *r.Min < 0) || (r.Max != nil && *r.Max < 0) ||
			(r.Min != nil && r.Max != nil && *r.Min > *r.Max) {
			iss = AppendIssues(iss, ref.Issue(CodeInvalidBounds, r.String(), "field", f.Name))
		}
	case RuleFormat:
		if r.re == nil {
			re, err := regexp.Compile(r.Matcher)
			if err != nil || r.Matcher == "" {
				iss = AppendIssues(iss, ref.Field("matcher").Issue(CodeInvalidPattern, r.Matcher, "field", f.Name))
				break
			}
			r.re = re
		}
	case RuleInclusion, RuleExclusion:
		r.members = make([]any, 0, len(r.List))
		for i, m := range r.List {
			cv := coerce.Clone(f.coerce(m))
			if cv == nil && m != nil {
				iss = AppendIssues(iss, ref.Field("list").Index(i).Issue(CodeInvalidMember, fmt.Sprint(m), "field", f.Name, "type", f.Type))
				continue
			}
			r.members = append(r.members, cv)
		}
	}
	return r, iss
}

// clone returns a copy of r that shares no bounds, list or members with it.
// The compiled pattern is shared; a regexp.Regexp is immutable.
func (r Rule) clone() Rule {
	if r.Min != nil {
		n := *r.Min
		r.Min = &n
	}
	if r.Max != nil {
		n := *r.Max
		r.Max = &n
	}
	if r.List != nil {
		list := make([]any, len(r.List))
		for i, m := range r.List {
			list[i] = coerce.Clone(m)
		}
		r.List = list
	}
	if r.members != nil {
		members := make([]any, len(r.members))
		for i, m := range r.members {
			members[i] = coerce.Clone(m)
		}
		r.members = members
	}
	return r
}

// check evaluates a finalized rule against a coerced value.
func (r Rule) check(v any) bool {
	switch r.Kind {
	case RulePresence:
		return !isEmpty(v)
	case RuleLength:
		n := coerce.Len(v)
		if r.Min != nil && n < *r.Min {
			return false
		}
		if r.Max != nil && n > *r.Max {
			return false
		}
		return true
	case RuleFormat:
		if isEmpty(v) {
			return true
		}
		s, _ := coerce.String(v)
		return r.re != nil && r.re.MatchString(s)
	case RuleInclusion:
		return r.contains(v)
	case RuleExclusion:
		return !r.contains(v)
	}
	return false
}

func (r Rule) contains(v any) bool {
	for _, m := range r.members {
		if coerce.Equal(m, v) {
			return true
		}
	}
	return false
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
