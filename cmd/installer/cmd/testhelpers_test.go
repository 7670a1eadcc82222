package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bjyadmin/installer/internal/config"
)

// newProject writes an .installer.yaml pinning the interpreter version and
// creates every checked directory under a temp root.
func newProject(t *testing.T, interpreterVersion string) string {
	t.Helper()
	dir := t.TempDir()
	yaml := "version: 1\nruntime:\n  version: \"" + interpreterVersion + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(yaml), 0o644))
	for _, sub := range []string{
		config.DefaultUploadDir,
		config.DefaultRuntimeDir,
		config.DefaultInstallDir,
		config.DefaultConfDir,
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}
	return dir
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return buf.String(), err
}
