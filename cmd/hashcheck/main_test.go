package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const md5Hello = "5d41402abc4b2a76b9719d911017c592"

type fixture struct {
	dir    string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{dir: t.TempDir()}
	require.NoError(t, os.MkdirAll(filepath.Join(f.dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "data", "hello.txt"), []byte("hello"), 0o600))
	t.Setenv("HOME", t.TempDir())
	return f
}

func (f *fixture) manifest(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func (f *fixture) run(args ...string) int {
	return run(args, &f.stdout, &f.stderr)
}

func TestRun_AllMatch(t *testing.T) {
	f := newFixture(t)
	m := f.manifest(t, "list.json", `{"files": [
		{"path": "data/hello.txt", "hash_type": "md5", "hash": "`+md5Hello+`"},
		{"path": "data/hello.txt", "hash_type": "crc32", "hash": "3610a686"}
	]}`)

	code := f.run("--workdir", f.dir, "--color", "never", m)

	assert.Equal(t, 0, code, f.stderr.String())
	assert.Equal(t, "OK total=2 ok=2 mismatched=0 read_errors=0\n", f.stdout.String())
	assert.Empty(t, f.stderr.String(), "progress is off when stderr is not a terminal")
}

func TestRun_MismatchAndReadErrorExitOne(t *testing.T) {
	f := newFixture(t)
	m := f.manifest(t, "list.xml", `<files>
  <file><path>data/hello.txt</path><hash_type>md5</hash_type><hash>`+md5Hello+`</hash></file>
  <file><path>data/hello.txt</path><hash_type>crc32</hash_type><hash>1</hash></file>
  <file><path>data/missing.bin</path><hash_type>sha256</hash_type><hash>`+strings.Repeat("0", 64)+`</hash></file>
</files>`)

	code := f.run("-w", f.dir, "--color", "never", m)

	assert.Equal(t, 1, code)
	out := f.stdout.String()
	assert.Contains(t, out, "MISMATCH "+filepath.Join(f.dir, "data", "hello.txt")+" (crc32)")
	assert.Contains(t, out, "  expected: 00000001\n  actual:   3610a686\n")
	assert.Contains(t, out, "READ ERROR "+filepath.Join(f.dir, "data", "missing.bin")+" (sha256): file not found")
	assert.Contains(t, out, "FAILED total=3 ok=1 mismatched=1 read_errors=1")
}

func TestRun_ManifestProblemsExitTwo(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantErr  string
		noCreate bool
	}{
		{name: "invalid json", file: "bad.json", content: `{"files": [`, wantErr: "manifest error:"},
		{name: "validation error", file: "bad.json", content: `{"files": [{"path": "a", "hash_type": "md5", "hash": "abc"}]}`, wantErr: "invalid manifest: files[1]: hash: invalid checksum"},
		{name: "empty xml list", file: "empty.xml", content: `<files/>`, wantErr: "invalid manifest:"},
		{name: "unsupported extension", file: "list.txt", content: `files`, wantErr: "unsupported manifest format"},
		{name: "manifest missing", file: "absent.json", noCreate: true, wantErr: "manifest error:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p := filepath.Join(f.dir, tt.file)
			if !tt.noCreate {
				p = f.manifest(t, tt.file, tt.content)
			}

			code := f.run("--color", "never", p)

			assert.Equal(t, 2, code)
			assert.Contains(t, f.stderr.String(), tt.wantErr)
			assert.Empty(t, f.stdout.String())
		})
	}
}

func TestRun_EmptyJSONListSucceeds(t *testing.T) {
	f := newFixture(t)
	m := f.manifest(t, "empty.json", `{"files": []}`)

	assert.Equal(t, 0, f.run("--color", "never", m))
	assert.Equal(t, "OK total=0 ok=0 mismatched=0 read_errors=0\n", f.stdout.String())
}

func TestRun_UsageErrorExitTwo(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, 2, f.run())
	assert.Contains(t, f.stderr.String(), "error:")
}

func TestRun_ProgressOnTerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func(w io.Writer) bool { return true }
	t.Cleanup(func() { isTerminal = orig })

	f := newFixture(t)
	m := f.manifest(t, "list.json", `{"files": [{"path": "data/hello.txt", "hash_type": "md5", "hash": "`+md5Hello+`"}]}`)

	code := f.run("--workdir", f.dir, "--color", "never", m)
	require.Equal(t, 0, code)
	assert.True(t, strings.HasSuffix(f.stderr.String(), "\rchecked 1 of 1\n"), "%q", f.stderr.String())

	f.stderr.Reset()
	f.stdout.Reset()
	code = f.run("--workdir", f.dir, "--color", "never", "--no-progress", "--stats", m)
	require.Equal(t, 0, code)
	assert.Empty(t, f.stderr.String())
	assert.Contains(t, f.stdout.String(), "--- stats ---")
	assert.Contains(t, f.stdout.String(), "bytes_hashed: 5 (5 B)")
}
