package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kostyay/docsee/internal/config"
	"github.com/kostyay/docsee/internal/output"
	"github.com/kostyay/docsee/internal/store"
)

var settingsOutput string

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show, export, import or reset the saved settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a summary of the saved settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSettings(func(s *store.SettingsStore) error {
			sum := s.Summary()
			if jsonOutput {
				return output.RenderJSON(cmd.OutOrStdout(), sum)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Docker host:    %s\n", sum.DockerHost)
			fmt.Fprintf(out, "Theme:          %s\n", sum.Theme)
			fmt.Fprintf(out, "Auto refresh:   %dms\n", sum.AutoRefresh)
			fmt.Fprintf(out, "Notifications:  %t\n", sum.Notifications)
			fmt.Fprintf(out, "Audit logging:  %t\n", sum.AuditLogging)
			fmt.Fprintf(out, "Last modified:  %s\n", sum.LastModified)
			if problems := s.Validate(); len(problems) > 0 {
				fmt.Fprintf(out, "\nProblems:\n  %s\n", strings.Join(problems, "\n  "))
			}
			return nil
		})
	},
}

var settingsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the settings as JSON to stdout or --output",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSettings(func(s *store.SettingsStore) error {
			data, err := s.Export()
			if err != nil {
				return err
			}
			if settingsOutput == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), data)
				return err
			}
			return os.WriteFile(settingsOutput, []byte(data+"\n"), 0600)
		})
	},
}

var settingsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the settings with a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// #nosec G304 - path given on the command line
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		return withSettings(func(s *store.SettingsStore) error {
			if err := s.Import(data); err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			if problems := s.Validate(); len(problems) > 0 {
				return fmt.Errorf("import %s: %s", args[0], strings.Join(problems, "; "))
			}
			return save(cmd, s, "Settings imported")
		})
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSettings(func(s *store.SettingsStore) error {
			s.ResetToDefaults()
			return save(cmd, s, "Settings reset to defaults")
		})
	},
}

func save(cmd *cobra.Command, s *store.SettingsStore, done string) error {
	if !s.Save(time.Now()) {
		return errors.New(s.Error())
	}
	fmt.Fprintln(cmd.ErrOrStderr(), done)
	return nil
}

// withSettings opens the settings database of the configured data dir.
func withSettings(fn func(s *store.SettingsStore) error) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	kv, err := config.OpenKV(cfg.DataDir)
	if err != nil {
		return err
	}
	defer kv.Close()

	s := store.NewSettingsStore(kv, nil, store.Options{})
	s.Load()
	return fn(s)
}

func init() {
	settingsExportCmd.Flags().StringVarP(&settingsOutput, "output", "o", "", "Write to file instead of stdout")
	settingsCmd.AddCommand(settingsShowCmd, settingsExportCmd, settingsImportCmd, settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}
