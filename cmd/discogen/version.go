package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sdboyer/discogen"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the discogen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "discogen %s (%s)\n", discogen.Version(), runtime.Version())
		},
	}
}
