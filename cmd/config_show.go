package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kimaijira/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. The API token
is masked.`,
	Example: `
  # Show active configuration
  kimaijira config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		}
		fmt.Println("Configuration:")
		fmt.Printf("jira.url: %s\n", cfg.Jira.URL)
		fmt.Printf("jira.username: %s\n", cfg.Jira.Username)
		fmt.Printf("jira.api_token: %s\n", maskToken(cfg.Jira.APIToken))
		fmt.Printf("timezone: %s\n", cfg.Timezone)
		fmt.Printf("columns.description: %s\n", cfg.Columns.Description)
		fmt.Printf("columns.duration: %s\n", cfg.Columns.Duration)
		fmt.Printf("columns.date: %s\n", cfg.Columns.Date)
		fmt.Printf("columns.time: %s\n", cfg.Columns.Time)
		fmt.Printf("task_regex: %s\n", cfg.TaskRegex)
	},
}

func maskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-4)
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
