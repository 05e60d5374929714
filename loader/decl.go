package loader

import (
	j "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	gorecord "github.com/reoring/gorecord"
)

// File is the on-disk form of one declaration. The keys follow the class
// definitions the loader reads:
//
//	extend: Person.Troll
//	idProperty: id
//	requires: [Person.Role]
//	fields:
//	  - {name: id, type: int}
//	  - {name: createdAt, type: date, dateFormat: "2006-01-02"}
//	validations:
//	  - {type: length, field: name, min: 3, max: 100}
//	  - {type: format, field: login, matcher: '^[a-z0-9_.-]+$'}
//	  - {type: inclusion, field: role, list: [user, admin]}
type File struct {
	Extend      string      `yaml:"extend" json:"extend"`
	IDProperty  string      `yaml:"idProperty" json:"idProperty"`
	Requires    []string    `yaml:"requires" json:"requires"`
	Fields      []FileField `yaml:"fields" json:"fields"`
	Validations []FileRule  `yaml:"validations" json:"validations"`
}

// FileField is one entry of File.Fields.
type FileField struct {
	Name         string `yaml:"name" json:"name"`
	Type         string `yaml:"type" json:"type"`
	DefaultValue any    `yaml:"defaultValue" json:"defaultValue"`
	DateFormat   string `yaml:"dateFormat" json:"dateFormat"`
}

// FileRule is one entry of File.Validations.
type FileRule struct {
	Type    string `yaml:"type" json:"type"`
	Field   string `yaml:"field" json:"field"`
	Min     *int   `yaml:"min" json:"min"`
	Max     *int   `yaml:"max" json:"max"`
	Matcher string `yaml:"matcher" json:"matcher"`
	List    []any  `yaml:"list" json:"list"`
}

// ParseYAML decodes a YAML declaration file.
func ParseYAML(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "loader: parse YAML declaration")
	}
	return &f, nil
}

// ParseJSON decodes a JSON declaration file.
func ParseJSON(data []byte) (*File, error) {
	var f File
	if err := j.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "loader: parse JSON declaration")
	}
	return &f, nil
}

// Declaration converts the file into a gorecord.Declaration. Type and kind
// names are passed through as written; Declare reports unknown ones.
func (f *File) Declaration() gorecord.Declaration {
	d := gorecord.Declaration{
		Extends:    f.Extend,
		IDProperty: f.IDProperty,
	}
	for _, ff := range f.Fields {
		d.Fields = append(d.Fields, gorecord.Field{
			Name:       ff.Name,
			Type:       gorecord.FieldType(ff.Type),
			Default:    yamlNormalizeValue(ff.DefaultValue),
			DateFormat: ff.DateFormat,
		})
	}
	for _, fr := range f.Validations {
		list := make([]any, len(fr.List))
		for i, v := range fr.List {
			list[i] = yamlNormalizeValue(v)
		}
		d.Validations = append(d.Validations, gorecord.Rule{
			Kind:    gorecord.RuleKind(fr.Type),
			Field:   fr.Field,
			Min:     fr.Min,
			Max:     fr.Max,
			Matcher: fr.Matcher,
			List:    list,
		})
	}
	return d
}

// Dependencies lists the names that must be declared before this file: the
// parent first, then the requires list.
func (f *File) Dependencies() []string {
	var out []string
	if f.Extend != "" {
		out = append(out, f.Extend)
	}
	return append(out, f.Requires...)
}
