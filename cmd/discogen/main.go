// Command discogen generates a Go client library and a Go CLI from an API
// discovery document.
//
// Usage:
//
//	discogen generate --spec foo.json --out ./foo
//	discogen generate --spec foo.json --out ./foo --check
//	discogen version
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "discogen:", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	verbose bool
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	var rf rootFlags
	root := &cobra.Command{
		Use:           "discogen",
		Short:         "Generate Go client libraries and CLIs from API discovery documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&rf.verbose, "verbose", "v", false, "log every generated file")

	logger := func() *slog.Logger {
		level := slog.LevelInfo
		if rf.verbose {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	}

	root.AddCommand(newGenerateCmd(logger), newVersionCmd())
	return root
}
