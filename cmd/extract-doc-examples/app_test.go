package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const doc = `Example
=======

.. code:: c
   :name: test-hello

   int main(void) { return 0; }

.. code:: c
   :name: skip-me

   int skipped;
`

func runApp(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{appName}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExtractFiles(t *testing.T) {
	src := filepath.Join(t.TempDir(), "doc.rst")
	require.NoError(t, os.WriteFile(src, []byte(doc), 0o644))
	out := filepath.Join(t.TempDir(), "examples")

	code, stdout, stderr := runApp(t, "--out-dir", out, src, filepath.Join(t.TempDir(), "missing.rst"))
	require.Equal(t, 0, code, stderr)

	want := filepath.Join(out, "test-hello.c")
	require.Equal(t, "Wrote "+want+"\n", stdout)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	require.Equal(t, "\nint main(void) { return 0; }", string(data))
	require.NoFileExists(t, filepath.Join(out, "skip-me.c"))
}

func TestExtractCustomPrefix(t *testing.T) {
	src := filepath.Join(t.TempDir(), "doc.rst")
	require.NoError(t, os.WriteFile(src, []byte(doc), 0o644))
	out := t.TempDir()

	code, _, stderr := runApp(t, "--out-dir", out, "--prefix", "skip-", "--ext", ".h", src)
	require.Equal(t, 0, code, stderr)
	require.FileExists(t, filepath.Join(out, "skip-me.h"))
}

func TestExtractUsage(t *testing.T) {
	code, _, stderr := runApp(t)
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "no input files")

	code, _, _ = runApp(t, "--nope", "x.rst")
	require.Equal(t, 2, code)
}

func TestExtractEmptyLanguage(t *testing.T) {
	src := filepath.Join(t.TempDir(), "doc.rst")
	require.NoError(t, os.WriteFile(src, []byte(doc), 0o644))

	code, _, stderr := runApp(t, "--language", "", src)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "empty language")
}
