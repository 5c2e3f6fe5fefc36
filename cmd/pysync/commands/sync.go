package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Install, reinstall and remove packages until the environment matches the lockfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Sync(cmd.Context(), syncOptions(cmd))
			if err != nil {
				return err
			}
			return RenderReport(cmd.OutOrStdout(), report)
		},
	}
}

func (c *CLI) newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show what sync would change without touching the environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Plan(cmd.Context(), syncOptions(cmd))
			if err != nil {
				return err
			}
			return RenderReport(cmd.OutOrStdout(), report)
		},
	}
}
