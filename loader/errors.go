package loader

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("loader: declaration not found")
	ErrCycle    = errors.New("loader: circular requirement")
)

// NotFoundError reports a name no mounted prefix could serve.
type NotFoundError struct {
	Name   string
	Prefix string // mounted prefix that matched, if any
	Base   string // file path tried without extension
}

func (e *NotFoundError) Error() string {
	if e.Prefix == "" {
		return fmt.Sprintf("%s: no path mounted for %s", ErrNotFound.Error(), e.Name)
	}
	return fmt.Sprintf("%s: %s (looked for %s under %s)", ErrNotFound.Error(), e.Name, e.Base, e.Prefix)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// CycleError carries the chain of names that requires itself.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCycle.Error(), strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }
