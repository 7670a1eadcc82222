// Package main provides the entry point for the installer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/bjyadmin/installer/cmd/installer/cmd"
	apperrors "github.com/bjyadmin/installer/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, apperrors.FormatForCLI(err))
		os.Exit(1)
	}
}
