// Package log is the small key/value logger used by the registry, the loader
// and the CLI. The variadic arguments of every method are key value pairs; the
// key must be a string and the value should have a meaningful string form.
package log

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Root is the logger used when none is configured. It discards everything.
var Root Logger = Discard{}

// Logger writes a message followed by key value pairs. With returns a logger
// that appends the given pairs to every later message.
type Logger interface {
	Debug(string, ...any)
	Error(string, ...any)
	With(...any) Logger
}

// Default writes through a standard library logger.
type Default struct {
	Out  *log.Logger
	Tags []any
}

// New returns a Default logger writing to w with the given prefix.
func New(w io.Writer, prefix string) *Default {
	return &Default{Out: log.New(w, prefix, log.LstdFlags)}
}

func (l *Default) Debug(m string, s ...any) { l.print(tfmt("DEB ", m, s, l.Tags)) }
func (l *Default) Error(m string, s ...any) { l.print(tfmt("ERR ", m, s, l.Tags)) }
func (l *Default) With(tags ...any) Logger  { return l.with(tags) }

func (l *Default) with(tags []any) *Default {
	t := make([]any, 0, len(tags)+len(l.Tags))
	t = append(t, tags...)
	t = append(t, l.Tags...)
	return &Default{Out: l.Out, Tags: t}
}

func (l *Default) print(s string) {
	if l.Out == nil {
		log.Print(s)
		return
	}
	l.Out.Print(s)
}

// Discard drops every message.
type Discard struct{}

func (Discard) Debug(string, ...any) {}
func (Discard) Error(string, ...any) {}
func (Discard) With(...any) Logger   { return Discard{} }

func tfmt(lvl, msg string, all ...[]any) string {
	var b strings.Builder
	b.WriteString(lvl)
	b.WriteString(msg)
	for _, tags := range all {
		for i, v := range tags {
			if i%2 == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteByte('=')
			}
			b.WriteString(fmt.Sprint(v))
		}
	}
	return b.String()
}
