package main

import (
	"github.com/spf13/cobra"
)

var (
	longFormat  bool
	changedOnly bool
	baseBranch  string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"roles"},
	Short:   "List roles with tests and their resolved CI configuration",
	Long:    "List the roles that would get a workflow. Use -l for the full resolved configuration of each role.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("base") {
			settings.BaseBranch = baseBranch
		}
		return listRoles(settings, cmd.OutOrStdout(), longFormat, changedOnly)
	},
}

func registerListCommand(root *cobra.Command) {
	root.AddCommand(listCmd)

	listCmd.Flags().BoolVarP(&longFormat, "long", "l", false, "Show detailed information")
	listCmd.Flags().BoolVar(&changedOnly, "changed", false, "Show only roles with changed files (requires git)")
	listCmd.Flags().StringVar(&baseBranch, "base", "main", "Base branch for change detection")
}
