package main

import (
	"fmt"

	"github.com/aretw0/trailhead"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of trailhead",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "trailhead version %s\n", trailhead.Version)
		},
	}
}
