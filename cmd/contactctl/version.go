package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/osa911/contactform/internal/version"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "contactctl %s\n", version.Info())
			if serverURL == "" {
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			info, err := version.FetchServerInfo(ctx, http.DefaultClient, serverURL)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "server %s (%s, %s)\n", info.Version, info.Platform, info.GoVersion)

			switch version.CompareVersions(version.Version, info.Version) {
			case -1:
				fmt.Fprintln(cmd.OutOrStdout(), "server is newer than this CLI")
			case 1:
				fmt.Fprintln(cmd.OutOrStdout(), "server is older than this CLI")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "Also query the version of a running contact API")
	return cmd
}
