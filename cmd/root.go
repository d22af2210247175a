package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kimaijira/config"
	"kimaijira/importer"
	"kimaijira/internal/logging"
	"kimaijira/jira"
	"kimaijira/submitter"
)

var (
	cfgFile        string
	rootLogLevel   string
	rootFormat     string
	rootDryRun     bool
	rootVisibility string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kimaijira <file>",
	Short: "Upload time-tracking CSV exports as Jira worklogs.",
	Long: `
**********************************************
*               KIMAI -> JIRA                *
**********************************************

This CLI reads a time-tracking export (Kimai CSV, or Excel), extracts one
worklog record per row whose description starts with a task key, and posts
each record sequentially to the Jira REST API v3 worklog endpoint.

Rows whose description does not match the task pattern are skipped. Per-record
submission failures are reported and the batch continues; the process exits
nonzero when any record failed.

Jira URL and credentials come from JIRA_URL, JIRA_USERNAME and JIRA_API_TOKEN
(environment, .env file, or config file).`,
	Example: `
  # Upload a Kimai CSV export
  kimaijira timesheet.csv

  # Preview what would be submitted without touching Jira
  kimaijira timesheet.csv --dry-run

  # Restrict worklog visibility to a group
  kimaijira timesheet.csv --visibility 8e5f88c2-...

  # Upload an Excel export, forcing the input format
  kimaijira timesheet.xlsx --format excel

  # Create configuration file
  kimaijira config create
`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.kimaijira.yaml, then ./.kimaijira.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "info", "Log level: debug|info|warn|error")

	rootCmd.Flags().BoolVar(&rootDryRun, "dry-run", false, "Report the worklogs that would be added without contacting Jira")
	rootCmd.Flags().StringVar(&rootVisibility, "visibility", "", "Optional visibility group identifier attached to each worklog")
	rootCmd.Flags().StringVarP(&rootFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from file extension when omitted)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return err
	}
	cfg.DryRun = rootDryRun
	cfg.VisibilityGroup = rootVisibility

	result, err := importer.Run(args, rootFormat, "kimai", *cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Extraction completed. Rows read: %d, Matched: %d, Skipped: %d\n",
		result.RowsRead,
		result.RowsMatched,
		result.RowsSkipped,
	)

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	client, err := jira.NewClient(jira.ClientConfig{
		BaseURL:   cfg.Jira.URL,
		Username:  cfg.Jira.Username,
		APIToken:  cfg.Jira.APIToken,
		UserAgent: "kimaijira/1.0",
	})
	if err != nil {
		return err
	}

	log := logging.New(os.Stderr, rootLogLevel)
	summary, err := submitter.Run(context.Background(), client, result.Records, location, submitter.Options{
		DryRun:          cfg.DryRun,
		VisibilityGroup: cfg.VisibilityGroup,
	}, log)
	if err != nil {
		return err
	}

	fmt.Printf("Upload completed. Records: %d, Submitted: %d, Failed: %d, Dry run: %t\n",
		summary.Total,
		summary.Submitted,
		summary.Failed,
		summary.DryRun,
	)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d worklog submissions failed", summary.Failed, summary.Total)
	}
	return nil
}

// initConfig reads in the .env file, config file and ENV variables if set.
func initConfig() {
	// .env values become process environment before viper resolves its
	// env bindings.
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".kimaijira" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".kimaijira")
	}

	viper.AutomaticEnv() // read in environment variables that match
	config.BindEnv()

	// The config file is optional; environment variables alone are enough.
	_ = viper.ReadInConfig()
}
