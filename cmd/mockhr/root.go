package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	errFileAccess = errors.New("file access")
	errEncoding   = errors.New("encoding")
	errUserInput  = errors.New("user input")
)

func newRootCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "mockhr",
		Short: "Fabricate and inspect mock manager datasets",
	}

	command.AddCommand(newGenerateCommand())
	command.AddCommand(newStatsCommand())

	return command
}
