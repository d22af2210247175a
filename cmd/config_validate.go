package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kimaijira/config"
)

var configValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a configuration file without loading it.",
	Long: `Check that a configuration file parses, carries Jira credentials, and that
its task regex and timezone are usable. The active environment is not consulted.`,
	Example: `
  # Validate a config file before putting it in place
  kimaijira config validate ./kimaijira.yaml
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read config file %s: %w", args[0], err)
		}

		if _, err := config.ValidateYAMLContent(content); err != nil {
			return fmt.Errorf("config file %s is invalid: %w", args[0], err)
		}

		fmt.Printf("Config file is valid: %s\n", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}
