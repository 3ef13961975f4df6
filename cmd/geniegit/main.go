// Package main is the entry point for the genie-git CLI.
// genie-git suggests commit messages for staged changes using a language model.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/geniegit/geniegit/internal/cmd"
	apperrors "github.com/geniegit/geniegit/internal/pkg/errors"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cmd.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		msg := apperrors.FormatError(err)
		if apperrors.IsVerbose() {
			msg = apperrors.FormatErrorVerbose(err)
		}
		fmt.Fprintln(os.Stderr, strings.TrimRight(msg, "\n"))
		os.Exit(1)
	}
}
