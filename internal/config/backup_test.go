package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupFile_NoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	backup, err := BackupFile(path)

	require.NoError(t, err)
	assert.Empty(t, backup)
}

func TestBackupFile_CopiesContent(t *testing.T) {
	// Given: an existing config file
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  language: en\n"), 0o644))

	// When: backing it up
	backup, err := BackupFile(path)

	// Then: the backup holds the same bytes
	require.NoError(t, err)
	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "ui:\n  language: en\n", string(data))
}

func TestBackupFile_KeepsMaxBackups(t *testing.T) {
	// Given: several older backups
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o644))

	old := time.Now().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		b := fmt.Sprintf("%s%s.2020010%d-000000.000", path, BackupSuffix, i)
		require.NoError(t, os.WriteFile(b, []byte("old"), 0o644))
		ts := old.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(b, ts, ts))
	}

	// When: creating a new backup
	newest, err := BackupFile(path)
	require.NoError(t, err)

	// Then: only MaxBackups remain, newest first
	backups, err := ListBackups(path)
	require.NoError(t, err)
	assert.Len(t, backups, MaxBackups)
	assert.Equal(t, newest, backups[0])
}
