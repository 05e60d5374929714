package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trollYAML = `idProperty: id
fields:
  - {name: id, type: int}
  - {name: createdAt, type: date}
  - {name: name, type: string}
  - {name: login, type: string}
validations:
  - {type: presence, field: login}
  - {type: length, field: login, min: 6, max: 32}
`

func writeDefs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Troll.yaml"), []byte(trollYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Admin.yaml"), []byte("extend: Person.Troll\n"), 0o644))
	return dir
}

func TestDescribe(t *testing.T) {
	dir := writeDefs(t)
	var out, errb bytes.Buffer
	code := run([]string{"describe", "-path", "Person=" + dir, "-type", "Person.Admin"}, nil, &out, &errb)
	require.Equal(t, 0, code, errb.String())
	s := out.String()
	assert.Contains(t, s, "Person.Admin extends Person.Troll (id: id)")
	assert.Contains(t, s, "login")
	assert.Contains(t, s, "length(login,6,32)")
}

func TestDescribe_Dump(t *testing.T) {
	dir := writeDefs(t)
	var out, errb bytes.Buffer
	code := run([]string{"describe", "-dump", "-path", "Person=" + dir, "-type", "Person.Troll"}, nil, &out, &errb)
	require.Equal(t, 0, code, errb.String())
	assert.Contains(t, out.String(), "createdAt")
}

func TestCheck(t *testing.T) {
	dir := writeDefs(t)
	valid := filepath.Join(dir, "ok.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"id": "7", "name": "Steve Jobs", "login": "billgates"}`), 0o644))

	var out, errb bytes.Buffer
	code := run([]string{"check", "-path", "Person=" + dir, "-type", "Person.Troll", "-data", valid}, nil, &out, &errb)
	require.Equal(t, 0, code, errb.String())
	assert.Equal(t, `{"id":7,"createdAt":null,"name":"Steve Jobs","login":"billgates"}`+"\nvalid\n", out.String())

	out.Reset()
	code = run([]string{"check", "-path", "Person=" + dir, "-type", "Person.Troll", "-data", "-"}, strings.NewReader("name: x\nlogin: AB\n"), &out, &errb)
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasSuffix(out.String(), "invalid\n"))
}

func TestCheck_Errors(t *testing.T) {
	dir := writeDefs(t)
	var out, errb bytes.Buffer
	assert.Equal(t, 2, run(nil, nil, &out, &errb))
	assert.Equal(t, 2, run([]string{"check", "-type", "Person.Troll"}, nil, &out, &errb))
	assert.Equal(t, 2, run([]string{"describe", "-path", "bad"}, nil, &out, &errb))

	errb.Reset()
	code := run([]string{"describe", "-path", "Person=" + dir, "-type", "Person.Ghost"}, nil, &out, &errb)
	assert.Equal(t, 1, code)
	assert.Contains(t, errb.String(), "not found")
}
