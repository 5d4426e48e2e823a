package main

import "github.com/spf13/cobra"

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the role overrides file",
	Long:  "Check the file named by --roles-file against the role overrides schema.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateRolesFile(settings, cmd.OutOrStdout())
	},
}

func registerValidateCommand(root *cobra.Command) {
	root.AddCommand(validateCmd)
}
