package main

import "github.com/spf13/cobra"

var showTree bool

var showCmd = &cobra.Command{
	Use:   "show <role>",
	Short: "Print the workflow generated for a role",
	Long:  "Render the workflow for a role to stdout without writing any file. Use --tree for a step summary.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showRole(settings, cmd.OutOrStdout(), args[0], showTree)
	},
}

func registerShowCommand(root *cobra.Command) {
	root.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showTree, "tree", false, "Show the job and steps as a tree")
}
