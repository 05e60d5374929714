package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	gorecord "github.com/reoring/gorecord"
	"github.com/reoring/gorecord/codec"
	"github.com/reoring/gorecord/loader"
	"github.com/reoring/gorecord/log"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "describe":
		return describeCmd(args[1:], stdout, stderr)
	case "check":
		return checkCmd(args[1:], stdin, stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "gorecord CLI\n\nUsage:\n  gorecord describe -path Prefix=dir [-path ...] -type T1[,T2,...] [-dump] [-v]\n  gorecord check -path Prefix=dir [-path ...] -type T -data record.yaml|record.json|- [-v]\n\nNotes:\n  - A type name Prefix.A.B is read from dir/A/B.yaml, .yml or .json.\n  - check prints the coerced record as JSON and exits 1 when it is invalid.")
}

// mounts collects repeated -path Prefix=dir flags.
type mounts [][2]string

func (m *mounts) String() string {
	parts := make([]string, len(*m))
	for i, p := range *m {
		parts[i] = p[0] + "=" + p[1]
	}
	return strings.Join(parts, ",")
}

func (m *mounts) Set(s string) error {
	prefix, dir, ok := strings.Cut(s, "=")
	if !ok || prefix == "" || dir == "" {
		return fmt.Errorf("want Prefix=dir, got %q", s)
	}
	*m = append(*m, [2]string{prefix, dir})
	return nil
}

type common struct {
	paths   mounts
	types   string
	verbose bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.Var(&c.paths, "path", "mount a declaration directory as Prefix=dir (repeatable)")
	fs.StringVar(&c.types, "type", "", "record type name(s), comma-separated")
	fs.BoolVar(&c.verbose, "v", false, "enable verbose logs")
}

func (c *common) registry(stderr io.Writer) (*gorecord.Registry, error) {
	lg := log.Root
	if c.verbose {
		lg = log.New(stderr, "gorecord: ")
	}
	reg := gorecord.NewRegistry(gorecord.WithLogger(lg))
	ld := loader.New(reg, loader.WithLogger(lg))
	for _, p := range c.paths {
		ld.SetPath(p[0], p[1])
	}
	if err := ld.Require(splitCSV(c.types)...); err != nil {
		return nil, err
	}
	return reg, nil
}

func describeCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	var dump bool
	c.register(fs)
	fs.BoolVar(&dump, "dump", false, "dump the resolved record type structure")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if c.types == "" || len(c.paths) == 0 {
		fs.Usage()
		return 2
	}
	reg, err := c.registry(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	for _, name := range splitCSV(c.types) {
		rt, err := reg.Lookup(name)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		if dump {
			dumper.Fdump(stdout, rt.Fields(), rt.Rules())
			continue
		}
		describe(stdout, rt)
	}
	return 0
}

var dumper = spew.ConfigState{Indent: "  ", MaxDepth: 3, DisablePointerAddresses: true, SortKeys: true}

func describe(w io.Writer, rt *gorecord.RecordType) {
	fmt.Fprintf(w, "%s", rt.Name())
	if p := rt.Parent(); p != nil {
		fmt.Fprintf(w, " extends %s", p.Name())
	}
	fmt.Fprintf(w, " (id: %s)\n", rt.IDProperty())
	for _, f := range rt.Fields() {
		fmt.Fprintf(w, "  %-16s %s", f.Name, f.Type)
		if f.Default != nil {
			fmt.Fprintf(w, " = %v", f.Default)
		}
		fmt.Fprintln(w)
	}
	for _, r := range rt.Rules() {
		fmt.Fprintf(w, "  %s\n", r)
	}
}

func checkCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	var dataPath string
	c.register(fs)
	fs.StringVar(&dataPath, "data", "", "record data file (YAML or JSON, - for stdin as YAML)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if c.types == "" || len(c.paths) == 0 || dataPath == "" || len(splitCSV(c.types)) != 1 {
		fs.Usage()
		return 2
	}
	reg, err := c.registry(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	raw, err := readData(dataPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	data, err := loader.DecodeData(dataPath, raw)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	rec, err := reg.Create(c.types, data)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	out, err := codec.JSON(rec.Type()).Encode(context.Background(), rec)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, string(out))
	if !rec.IsValid() {
		fmt.Fprintln(stdout, "invalid")
		return 1
	}
	fmt.Fprintln(stdout, "valid")
	return 0
}

func readData(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
