package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kostyay/docsee/internal/release"
)

// version is set at build time with -ldflags "-X main.version=v1.2.3".
var version = "dev"

var (
	versionCheck bool
	releaseAPI   = release.DefaultAPI
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the docsee version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "docsee %s\n", version)
		if !versionCheck {
			return nil
		}
		c := release.Checker{API: releaseAPI, Owner: "kostyay", Repo: "docsee"}
		latest, err := c.CheckLatest(cmd.Context(), version)
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if latest == "" {
			fmt.Fprintln(out, "Up to date")
			return nil
		}
		fmt.Fprintf(out, "Update available: %s\n", latest)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}
