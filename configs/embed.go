// Package configs provides the embedded configuration template for the installer.
//
// The template is written by `installer config init` as .installer.yaml in
// the target directory. Configuration hierarchy (see internal/config Load()):
//  1. Hardcoded defaults (internal/config NewConfig())
//  2. Project config (.installer.yaml)
//  3. .env in the same directory
//  4. Environment variables (INSTALLER_*)
package configs

import _ "embed"

// ProjectConfigTemplate is the commented example project configuration.
//
//go:embed installer.example.yaml
var ProjectConfigTemplate string
