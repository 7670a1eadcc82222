package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/bjyadmin/installer/internal/errors"
)

func TestNewConfig_ReturnsDefaults(t *testing.T) {
	// Given: no configuration file exists
	cfg := NewConfig()

	// Then: all defaults should be applied
	require.NotNil(t, cfg)
	assert.Equal(t, 1, cfg.Version)
	assert.NotEmpty(t, cfg.Paths.Base)
	assert.Equal(t, "5.3", cfg.Requirements.MinVersion)
	assert.Equal(t, "php", cfg.Runtime.Binary)
	assert.Equal(t, "", cfg.Runtime.Version)
	assert.Equal(t, "5s", cfg.Runtime.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "zh", cfg.UI.Language)
}

func TestLoad_NoFile_DerivesPathsFromBase(t *testing.T) {
	// Given: an empty project directory
	dir := t.TempDir()
	t.Setenv("INSTALLER_BASE_PATH", dir)

	// When: loading configuration
	cfg, err := Load(dir)

	// Then: every checked path is derived from the base
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Paths.Base)
	assert.Equal(t, filepath.Join(dir, "Public", "Upload"), cfg.Paths.Upload)
	assert.Equal(t, filepath.Join(dir, "Runtime"), cfg.Paths.Runtime)
	assert.Equal(t, filepath.Join(dir, "Public", "install"), cfg.Paths.Install)
	assert.Equal(t, filepath.Join(dir, "Admin", "Common", "Conf"), cfg.Paths.Conf)
	assert.Equal(t, 5*time.Second, cfg.RuntimeTimeout())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	// Given: a project config file
	dir := t.TempDir()
	content := `
paths:
  base: site
  conf: Application/Common/Conf
  upload: /var/uploads
requirements:
  min_version: "7.1"
runtime:
  version: "7.4.3"
server:
  addr: 127.0.0.1:9000
  log_level: debug
ui:
  language: en
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	// When: loading configuration
	cfg, err := Load(dir)

	// Then: file values win, relative paths resolve against the base
	require.NoError(t, err)
	base := filepath.Join(dir, "site")
	assert.Equal(t, base, cfg.Paths.Base)
	assert.Equal(t, filepath.Join(base, "Application", "Common", "Conf"), cfg.Paths.Conf)
	assert.Equal(t, "/var/uploads", cfg.Paths.Upload)
	assert.Equal(t, filepath.Join(base, "Runtime"), cfg.Paths.Runtime)
	assert.Equal(t, "7.1", cfg.Requirements.MinVersion)
	assert.Equal(t, "7.4.3", cfg.Runtime.Version)
	assert.Equal(t, "php", cfg.Runtime.Binary)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "en", cfg.UI.Language)
}

func TestLoad_YMLFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".installer.yml"), []byte("ui:\n  language: en\n"), 0o644))

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "en", cfg.UI.Language)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	// Given: a file and an env var setting the same field
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("runtime:\n  version: \"5.6.0\"\n"), 0o644))
	t.Setenv("INSTALLER_RUNTIME_VERSION", "8.2.1")
	t.Setenv("INSTALLER_LANGUAGE", "en")

	// When: loading
	cfg, err := Load(dir)

	// Then: env wins
	require.NoError(t, err)
	assert.Equal(t, "8.2.1", cfg.Runtime.Version)
	assert.Equal(t, "en", cfg.UI.Language)
}

func TestLoad_DotEnv(t *testing.T) {
	// Given: a .env file and a conflicting process variable
	dir := t.TempDir()
	dotenv := "INSTALLER_RUNTIME_VERSION=7.0.1\nINSTALLER_ADDR=127.0.0.1:9000\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DotEnvFile), []byte(dotenv), 0o644))
	t.Setenv("INSTALLER_ADDR", ":7000")

	// When: loading
	cfg, err := Load(dir)

	// Then: .env fills gaps and the process environment wins
	require.NoError(t, err)
	assert.Equal(t, "7.0.1", cfg.Runtime.Version)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	_, set := os.LookupEnv("INSTALLER_RUNTIME_VERSION")
	assert.False(t, set, ".env must not leak into the process environment")
}

func TestLoad_InvalidDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DotEnvFile), []byte("INSTALLER_ADDR='unterminated\n"), 0o644))

	_, err := Load(dir)

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConfigInvalid, apperrors.GetCode(err))
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("paths: [unclosed"), 0o644))

	_, err := Load(dir)

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConfigInvalid, apperrors.GetCode(err))
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad min version", "requirements:\n  min_version: five\n"},
		{"bad timeout", "runtime:\n  timeout: soon\n"},
		{"bad log level", "server:\n  log_level: loud\n"},
		{"bad language", "ui:\n  language: fr\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(tt.content), 0o644))

			_, err := Load(dir)

			require.Error(t, err)
			assert.True(t, apperrors.IsFatal(err))
		})
	}
}

func TestValidate_BinaryRequiredWithoutVersion(t *testing.T) {
	cfg := NewConfig()
	cfg.Runtime.Binary = ""
	assert.Error(t, cfg.Validate())

	cfg.Runtime.Version = "7.0.0"
	assert.NoError(t, cfg.Validate())
}

func TestValidMinVersion(t *testing.T) {
	assert.True(t, validMinVersion("5"))
	assert.True(t, validMinVersion("5.3"))
	assert.True(t, validMinVersion("5.3.29"))
	assert.False(t, validMinVersion(""))
	assert.False(t, validMinVersion("5."))
	assert.False(t, validMinVersion("v5.3"))
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	// Given: a customized config
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.Paths.Base = dir
	cfg.UI.Language = "en"
	path := filepath.Join(dir, FileName)

	// When: writing and loading it back
	require.NoError(t, cfg.WriteYAML(path))
	loaded, err := Load(dir)

	// Then: values survive
	require.NoError(t, err)
	assert.Equal(t, dir, loaded.Paths.Base)
	assert.Equal(t, "en", loaded.UI.Language)
}

func TestPathsConfig_Directories(t *testing.T) {
	// Given: resolved default paths
	cfg := NewConfig()
	cfg.Paths.Base = "/srv/app"
	cfg.Paths.Upload = "/data/upload"
	cfg.resolvePaths("/")

	// When: listing directories
	dirs := cfg.Paths.Directories()

	// Then: five entries in display order, labelled relative to the base
	require.Len(t, dirs, 5)
	assert.Equal(t, Directory{Label: "./", Path: "/srv/app"}, dirs[0])
	assert.Equal(t, "/data/upload", dirs[1].Label)
	assert.Equal(t, "./Runtime", dirs[2].Label)
	assert.Equal(t, "./Public/install", dirs[3].Label)
	assert.Equal(t, "./Admin/Common/Conf", dirs[4].Label)
	assert.Equal(t, "/srv/app/Admin/Common/Conf", dirs[4].Path)
}
