package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/kostyay/docsee/internal/bridge"
	"github.com/kostyay/docsee/internal/output"
	"github.com/kostyay/docsee/internal/store"
)

var (
	psAll          bool
	psSort         string
	logsTail       string
	logsTimestamps bool
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List containers",
	Long: `List containers the way the Containers tab shows them.

Examples:
  docsee ps
  docsee ps -a --sort created
  docsee ps --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCommands(cmd, func(ctx context.Context, c *bridge.Commands) error {
			items, err := c.ListContainers(ctx, psAll, false)
			if err != nil {
				return err
			}
			items = store.FilterContainers(items, store.ContainerFilterAll, "", psSort)
			now := time.Now()
			if jsonOutput {
				return output.RenderList(cmd.OutOrStdout(), "containers", items, now)
			}
			return output.RenderContainers(cmd.OutOrStdout(), items, now)
		})
	},
}

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "List images",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCommands(cmd, func(ctx context.Context, c *bridge.Commands) error {
			items, err := c.ListImages(ctx, false)
			if err != nil {
				return err
			}
			now := time.Now()
			if jsonOutput {
				return output.RenderList(cmd.OutOrStdout(), "images", items, now)
			}
			return output.RenderImages(cmd.OutOrStdout(), items, now)
		})
	},
}

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List networks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCommands(cmd, func(ctx context.Context, c *bridge.Commands) error {
			items, err := c.ListNetworks(ctx)
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.RenderList(cmd.OutOrStdout(), "networks", items, time.Now())
			}
			return output.RenderNetworks(cmd.OutOrStdout(), items)
		})
	},
}

var volumesCmd = &cobra.Command{
	Use:   "volumes",
	Short: "List volumes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCommands(cmd, func(ctx context.Context, c *bridge.Commands) error {
			items, err := c.ListVolumes(ctx)
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.RenderList(cmd.OutOrStdout(), "volumes", items, time.Now())
			}
			return output.RenderVolumes(cmd.OutOrStdout(), items)
		})
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs <container>",
	Short: "Print the logs of a container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCommands(cmd, func(ctx context.Context, c *bridge.Commands) error {
			lines, err := c.ContainerLogs(ctx, args[0], bridge.LogOptions{Tail: logsTail})
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.RenderList(cmd.OutOrStdout(), "logs", lines, time.Now())
			}
			return output.RenderLogs(cmd.OutOrStdout(), lines, logsTimestamps)
		})
	},
}

func init() {
	psCmd.Flags().BoolVarP(&psAll, "all", "a", false, "Show stopped containers too")
	psCmd.Flags().StringVar(&psSort, "sort", store.ContainerSortName, "Sort by name, status, created or image")
	logsCmd.Flags().StringVar(&logsTail, "tail", "100", `Number of lines from the end, or "all"`)
	logsCmd.Flags().BoolVarP(&logsTimestamps, "timestamps", "t", false, "Show timestamps")

	rootCmd.AddCommand(psCmd, imagesCmd, networksCmd, volumesCmd, logsCmd)
}
