// Package loader declares record types from files. A dotted type name is
// resolved against mounted prefixes ("Person" -> dir, so "Person.Troll" reads
// dir/Troll.yaml) and every type is declared only after its parent and the
// types it requires.
package loader

import (
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	gorecord "github.com/reoring/gorecord"
	"github.com/reoring/gorecord/log"
)

// Loader resolves type names to declaration files and declares them into a
// registry in dependency order.
type Loader struct {
	reg  *gorecord.Registry
	log  log.Logger
	exts []string

	mu     sync.Mutex
	mounts map[string]fs.FS
}

// New returns a Loader declaring into reg.
func New(reg *gorecord.Registry, opts ...Option) *Loader {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Loader{reg: reg, log: cfg.logger, exts: cfg.exts, mounts: map[string]fs.FS{}}
}

// Mount serves names below prefix from fsys.
func (l *Loader) Mount(prefix string, fsys fs.FS) {
	l.mu.Lock()
	l.mounts[prefix] = fsys
	l.mu.Unlock()
	l.log.Debug("mounted", "prefix", prefix)
}

// SetPath serves names below prefix from the directory dir.
func (l *Loader) SetPath(prefix, dir string) { l.Mount(prefix, os.DirFS(dir)) }

// Resolve returns the file system and the file path holding the declaration
// of name. The longest mounted prefix wins.
func (l *Loader) Resolve(name string) (fs.FS, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolve(name)
}

func (l *Loader) resolve(name string) (fs.FS, string, error) {
	prefixes := make([]string, 0, len(l.mounts))
	for p := range l.mounts {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(a, b int) bool { return len(prefixes[a]) > len(prefixes[b]) })
	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(name, p+".")
		if !ok || rest == "" {
			continue
		}
		fsys := l.mounts[p]
		base := strings.ReplaceAll(rest, ".", "/")
		for _, ext := range l.exts {
			file := base + ext
			if _, err := fs.Stat(fsys, file); err == nil {
				return fsys, file, nil
			}
		}
		return nil, "", &NotFoundError{Name: name, Prefix: p, Base: base}
	}
	return nil, "", &NotFoundError{Name: name}
}

// Require makes sure every named type is declared, loading it and its
// dependencies from the mounted files when it is not yet in the registry.
func (l *Loader) Require(names ...string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, name := range names {
		if err := l.require(name, nil); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) require(name string, stack []string) error {
	for i, s := range stack {
		if s == name {
			return &CycleError{Path: append(append([]string{}, stack[i:]...), name)}
		}
	}
	if l.reg.Has(name) {
		return nil
	}
	fsys, file, err := l.resolve(name)
	if err != nil {
		return err
	}
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return errors.Wrapf(err, "loader: read %s", file)
	}
	var f *File
	if path.Ext(file) == ".json" {
		f, err = ParseJSON(data)
	} else {
		f, err = ParseYAML(data)
	}
	if err != nil {
		return errors.Wrapf(err, "loader: %s", name)
	}

	lg := l.log.With("type", name)
	stack = append(stack, name)
	for _, dep := range f.Dependencies() {
		lg.Debug("requires", "dep", dep)
		if err := l.require(dep, stack); err != nil {
			return err
		}
	}
	if _, err := l.reg.Declare(name, f.Declaration()); err != nil {
		return errors.Wrapf(err, "loader: declare %s from %s", name, file)
	}
	lg.Debug("loaded", "file", file)
	return nil
}
