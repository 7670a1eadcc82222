// Package logging configures structured slog output for the installer.
// With --debug, JSON logs are also written to a size-rotated file under
// ~/.bjyadmin-installer/logs/.
package logging
