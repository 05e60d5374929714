package gorecord

import (
	"fmt"
	"sort"
	"sync"

	"github.com/reoring/gorecord/internal/coerce"
	"github.com/reoring/gorecord/log"
)

// Declaration is the data-only body of a record type declaration.
type Declaration struct {
	// Extends names an already declared parent type.
	Extends string
	// IDProperty names the identity field. Empty inherits the parent's, or
	// falls back to the registry default ("id").
	IDProperty  string
	Fields      []Field
	Validations []Rule
}

// Registry maps type names to finalized record types. It is safe for
// concurrent use; a declaration is finalized completely before it becomes
// visible to Lookup.
type Registry struct {
	cfg config

	mu    sync.RWMutex
	types map[string]*RecordType
}

// NewRegistry constructs an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.defaultIDProperty == "" {
		cfg.defaultIDProperty = DefaultIDProperty
	}
	if cfg.logger == nil {
		cfg.logger = log.Root
	}
	return &Registry{cfg: cfg, types: map[string]*RecordType{}}
}

// Declare finalizes d and publishes it under name, replacing any previous
// definition. Records created from a replaced definition keep it.
//
// All problems found in d are reported together in a *ConfigError.
func (r *Registry) Declare(name string, d Declaration) (*RecordType, error) {
	rt, err := r.finalize(name, d)
	if err != nil {
		r.cfg.logger.Error("declaration rejected", "type", name, "err", err)
		return nil, err
	}

	r.mu.Lock()
	_, replaced := r.types[name]
	r.types[name] = rt
	r.mu.Unlock()

	lg := r.cfg.logger.With("type", name)
	if replaced {
		lg.Debug("record type replaced")
	}
	lg.Debug("record type declared", "extends", d.Extends, "fields", len(rt.fields), "rules", len(rt.rules))
	return rt, nil
}

// MustDeclare is like Declare but panics on error.
func (r *Registry) MustDeclare(name string, d Declaration) *RecordType {
	rt, err := r.Declare(name, d)
	if err != nil {
		panic(err)
	}
	return rt
}

// Lookup returns the record type declared under name.
func (r *Registry) Lookup(name string) (*RecordType, error) {
	r.mu.RLock()
	rt, ok := r.types[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
	}
	return rt, nil
}

// Has reports whether name is declared.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[name]
	return ok
}

// Names returns the declared type names in ascending order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.types))
	for k := range r.types {
		out = append(out, k)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Create looks up name and constructs a record from data.
func (r *Registry) Create(name string, data map[string]any) (*Record, error) {
	rt, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return New(rt, data), nil
}

func (r *Registry) finalize(name string, d Declaration) (*RecordType, error) {
	ref := RootRef()
	var iss Issues
	if name == "" {
		iss = AppendIssues(iss, ref.Issue(CodeEmptyName, ""))
	}

	var parent *RecordType
	if d.Extends != "" {
		p, err := r.Lookup(d.Extends)
		if err != nil {
			iss = AppendIssues(iss, ref.Field("extends").Issue(CodeUnknownParent, d.Extends, "parent", d.Extends))
			return nil, &ConfigError{TypeName: name, Issues: iss}
		}
		parent = p
	}

	own, fiss := finalizeFields(d.Fields, ref.Field("fields"))
	iss = AppendIssues(iss, fiss...)

	var inherited []Field
	var inheritedRules []Rule
	idProperty := d.IDProperty
	if parent != nil {
		inherited = parent.fields
		inheritedRules = parent.rules
		if idProperty == "" {
			idProperty = parent.idProperty
		}
	}
	if idProperty == "" {
		idProperty = r.cfg.defaultIDProperty
	}

	fields := mergeFields(inherited, own)
	index := make(map[string]int, len(fields)+1)
	for i, f := range fields {
		index[f.Name] = i
	}
	// the identity field always exists; an undeclared one is untyped
	if _, ok := index[idProperty]; !ok {
		index[idProperty] = len(fields)
		fields = append(fields, Field{Name: idProperty, Type: TypeAuto})
	}

	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
	rules := make([]Rule, 0, len(inheritedRules)+len(d.Validations))
	// inherited rules are checked again: an override may have changed the field type
	for _, ru := range inheritedRules {
		fr, riss := ru.finalize(byName, ref.Field("extends"))
		iss = AppendIssues(iss, riss...)
		rules = append(rules, fr)
	}
	vref := ref.Field("validations")
	for i, ru := range d.Validations {
		fr, riss := ru.finalize(byName, vref.Index(i))
		iss = AppendIssues(iss, riss...)
		rules = append(rules, fr)
	}

	if len(iss) > 0 {
		return nil, &ConfigError{TypeName: name, Issues: iss}
	}
	return &RecordType{
		name:       name,
		parent:     parent,
		idProperty: idProperty,
		fields:     fields,
		index:      index,
		rules:      rules,
	}, nil
}

// finalizeFields normalizes declared field types, coerces defaults and
// rejects duplicates within one declaration.
func finalizeFields(decl []Field, ref PathRef) ([]Field, Issues) {
	var iss Issues
	out := make([]Field, 0, len(decl))
	seen := make(map[string]struct{}, len(decl))
	for i, f := range decl {
		fref := ref.Index(i)
		if f.Name == "" {
			iss = AppendIssues(iss, fref.Field("name").Issue(CodeEmptyName, ""))
			continue
		}
		if _, dup := seen[f.Name]; dup {
			iss = AppendIssues(iss, fref.Field("name").Issue(CodeDuplicateField, f.Name, "field", f.Name))
			continue
		}
		seen[f.Name] = struct{}{}
		t, ok := ParseFieldType(string(f.Type))
		if !ok {
			iss = AppendIssues(iss, fref.Field("type").Issue(CodeUnknownType, string(f.Type), "field", f.Name, "type", f.Type))
			continue
		}
		f.Type = t
		if f.Default != nil {
			dv := f.coerce(f.Default)
			if dv == nil {
				iss = AppendIssues(iss, fref.Field("defaultValue").Issue(CodeInvalidDefault, fmt.Sprint(f.Default), "field", f.Name, "type", f.Type))
				continue
			}
			f.Default = coerce.Clone(dv)
		}
		out = append(out, f)
	}
	return out, iss
}
