package main

import (
	"encoding/json"
	"fmt"

	"github.com/osa911/contactform/internal/spam"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var in spam.Input
	var rulesFile string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a message with the spam detector",
		Long: `Score a message with the spam detector and print the verdict as JSON.

Example:
  contactctl score --email jane@acme.com --message "Hello" --user-agent curl/8.4.0
  contactctl score --rules ./rules.yaml --message "BUY NOW"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := spam.LoadRules(rulesFile)
			if err != nil {
				return err
			}

			verdict := spam.NewDetector(rules).Detect(in)
			out, err := json.MarshalIndent(verdict, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Submitter email")
	cmd.Flags().StringVar(&in.Message, "message", "", "Message body")
	cmd.Flags().StringVar(&in.UserAgent, "user-agent", "", "User-Agent header")
	cmd.Flags().StringVar(&in.Referer, "referer", "", "Referer header")
	cmd.Flags().StringVar(&in.Origin, "origin", "", "Origin header")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "YAML rules file overlaying the built-in lists")

	return cmd
}
