package main

import "github.com/spf13/cobra"

var checkOnly bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a workflow file for every role with tests",
	Long: "Scan the roles directory and overwrite <workflows-dir>/<role>-ci.yml for every role that has a tests/ directory.\n" +
		"With --check nothing is written; the command fails if any file is missing or out of date.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateWorkflows(settings, cmd.OutOrStdout(), checkOnly)
	},
}

func registerGenerateCommand(root *cobra.Command) {
	root.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(&checkOnly, "check", false, "Report stale workflow files instead of writing them")
}
