package main

import (
	"fmt"

	"github.com/sourceplane/roleci/internal/config"
	"github.com/sourceplane/roleci/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configFile   string
	rootDir      string
	rolesDir     string
	workflowsDir string
	rolesFile    string
	debugMode    bool
)

var (
	settingsLoader = config.NewLoader()
	settings       = config.DefaultSettings()
)

var rootCmd = &cobra.Command{
	Use:   "roleci",
	Short: "Generate GitHub Actions workflows for Ansible roles",
	Long: "roleci scans the roles directory and writes one CI workflow per role that has a tests/ directory.\n" +
		"Run without a subcommand it behaves like 'roleci generate'.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateWorkflows(settings, cmd.OutOrStdout(), false)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	defaults := config.DefaultSettings()

	flags.StringVar(&configFile, "config", "", "Settings file (also ROLECI_CONFIG)")
	flags.StringVar(&rootDir, "root", defaults.Root, "Repository root the other paths are relative to")
	flags.StringVar(&rolesDir, "roles-dir", defaults.RolesDir, "Directory containing one subdirectory per role")
	flags.StringVar(&workflowsDir, "workflows-dir", defaults.WorkflowsDir, "Directory that receives <role>-ci.yml files")
	flags.StringVar(&rolesFile, "roles-file", defaults.RolesFile, "YAML file with role configuration overrides")
	flags.BoolVar(&debugMode, "debug", defaults.Debug, "Enable debug output")

	v := settingsLoader.Viper()
	_ = v.BindPFlag("root", flags.Lookup("root"))
	_ = v.BindPFlag("roles_dir", flags.Lookup("roles-dir"))
	_ = v.BindPFlag("workflows_dir", flags.Lookup("workflows-dir"))
	_ = v.BindPFlag("roles_file", flags.Lookup("roles-file"))
	_ = v.BindPFlag("debug", flags.Lookup("debug"))

	registerGenerateCommand(rootCmd)
	registerListCommand(rootCmd)
	registerShowCommand(rootCmd)
	registerValidateCommand(rootCmd)
}

func loadSettings() error {
	loaded, err := settingsLoader.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	settings = loaded

	if settings.Debug {
		logger.SetPattern("roleci:*")
	}
	log.Printf("Settings: %+v", *settings)
	return nil
}
