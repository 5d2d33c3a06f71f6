package main

import (
	"fmt"
	"os"

	"github.com/osa911/contactform/internal/logging"

	"github.com/spf13/cobra"
)

var logger = logging.NewWriterLogger(os.Stderr)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "contactctl",
		Short: "Operator tooling for the contact form API",
		Long: `contactctl runs the contact form checks locally and talks to a running
contact API. Use it to tune spam rules, check payloads and smoke-test a deploy.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newSubmitCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
