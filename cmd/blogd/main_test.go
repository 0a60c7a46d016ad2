package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKB(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

const sampleKB = `[
  {"id": "reset", "title": "Password Reset", "content": "Use the reset link on the login page."},
  {"id": "posts", "title": "Creating posts", "content": "Sign in and open the editor."}
]`

func TestKBList(t *testing.T) {
	path := writeKB(t, sampleKB)

	out, err := run(t, "kb", "list", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "reset")
	assert.Contains(t, out, "Creating posts")
}

func TestKBListEmpty(t *testing.T) {
	path := writeKB(t, `[]`)

	out, err := run(t, "kb", "list", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Knowledge base is empty.")
}

func TestKBSearch(t *testing.T) {
	path := writeKB(t, sampleKB)

	t.Run("accepted match", func(t *testing.T) {
		out, err := run(t, "kb", "search", "--path", path, "how", "do", "I", "reset", "my", "password")
		require.NoError(t, err)
		assert.Contains(t, out, "best:     reset (Password Reset)")
		assert.Contains(t, out, "accepted: true")
	})

	t.Run("no match", func(t *testing.T) {
		out, err := run(t, "kb", "search", "--path", path, "xyzzy")
		require.NoError(t, err)
		assert.Contains(t, out, "No matching entry.")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "kb", "search", "--path", filepath.Join(t.TempDir(), "absent.json"), "reset")
		assert.Error(t, err)
	})

	t.Run("requires a question", func(t *testing.T) {
		_, err := run(t, "kb", "search", "--path", path)
		assert.Error(t, err)
	})
}
