package readiness

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/bjyadmin/installer/internal/errors"
)

// fakeInterpreter writes an executable shell script printing out.
func fakeInterpreter(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "php")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func TestStaticVersion(t *testing.T) {
	v, err := StaticVersion("7.4.3").Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "7.4.3", v)
}

func TestInterpreterVersion_ReadsStdout(t *testing.T) {
	// Given: an interpreter that prints its version
	bin := fakeInterpreter(t, `printf '7.4.3\n'`)

	// When: asking for the version
	v, err := InterpreterVersion{Binary: bin, Args: []string{}}.Version(context.Background())

	// Then: the trimmed output is returned
	require.NoError(t, err)
	assert.Equal(t, "7.4.3", v)
}

func TestInterpreterVersion_NotFound(t *testing.T) {
	_, err := InterpreterVersion{Binary: filepath.Join(t.TempDir(), "missing-php")}.Version(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInterpreterNotFound, apperrors.GetCode(err))
}

func TestInterpreterVersion_Failure(t *testing.T) {
	bin := fakeInterpreter(t, `echo "broken ini" >&2; exit 3`)

	_, err := InterpreterVersion{Binary: bin, Args: []string{}}.Version(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInterpreterFailed, apperrors.GetCode(err))
	assert.Contains(t, err.Error(), "broken ini")
}

func TestInterpreterVersion_Timeout(t *testing.T) {
	bin := fakeInterpreter(t, `exec sleep 5`)

	start := time.Now()
	_, err := InterpreterVersion{Binary: bin, Args: []string{}, Timeout: 100 * time.Millisecond}.Version(context.Background())

	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
}
