package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/osa911/contactform/internal/api/validation"

	"github.com/spf13/cobra"
)

var errInvalidPayload = errors.New("payload is invalid")

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Run the form validator over a JSON payload",
		Long: `Run the form validator over a JSON payload read from a file, or from
stdin when the file is "-" or omitted. Prints the validation result and exits
non-zero when the payload is invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			var raw any
			if err := json.NewDecoder(r).Decode(&raw); err != nil {
				return fmt.Errorf("decode payload: %w", err)
			}

			result := validation.Validate(raw)
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if !result.Valid {
				return errInvalidPayload
			}
			return nil
		},
	}
}
