package config

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyJiraURL           = "jira.url"
	KeyJiraUsername      = "jira.username"
	KeyJiraAPIToken      = "jira.api_token"
	KeyTimezone          = "timezone"
	KeyColumnDescription = "columns.description"
	KeyColumnDuration    = "columns.duration"
	KeyColumnDate        = "columns.date"
	KeyColumnTime        = "columns.time"
	KeyTaskRegex         = "task_regex"
)

// Default Kimai export column names and the default task extraction pattern.
const (
	DefaultTimezone          = "GMT"
	DefaultColumnDescription = "Popis"
	DefaultColumnDuration    = "Doba trvání"
	DefaultColumnDate        = "Datum"
	DefaultColumnTime        = "Od"
	DefaultTaskRegex         = `([A-Z]+-\d+)(:?\s+)(.*)`
)

// minTaskRegexGroups is the capture-group contract of the task regex:
// group 1 is the task id, group 2 a discarded separator, group 3 the
// description. Downstream formatting relies on this layout.
const minTaskRegexGroups = 3

type Config struct {
	Jira      JiraConfig `mapstructure:"jira" validate:"required"`
	Timezone  string     `mapstructure:"timezone" validate:"required"`
	Columns   ColumnMap  `mapstructure:"columns"`
	TaskRegex string     `mapstructure:"task_regex" validate:"required"`

	// Runtime-only values resolved from CLI flags (not loaded from config).
	DryRun          bool   `mapstructure:"-"`
	VisibilityGroup string `mapstructure:"-"`
}

type JiraConfig struct {
	URL      string `mapstructure:"url" validate:"required,url"`
	Username string `mapstructure:"username" validate:"required"`
	APIToken string `mapstructure:"api_token" validate:"required"`
}

type ColumnMap struct {
	Description string `mapstructure:"description" validate:"required"`
	Duration    string `mapstructure:"duration" validate:"required"`
	Date        string `mapstructure:"date" validate:"required"`
	Time        string `mapstructure:"time" validate:"required"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// BindEnv wires the flat environment variable names used by Kimai export
// setups (JIRA_URL, COLUMN_DESCRIPTION, ...) to the nested config keys.
func BindEnv() {
	bindEnv(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// LoadExtraction loads the subset of configuration needed to extract
// records from source files. Jira credentials are not required here, so an
// extraction-only run works without them.
func LoadExtraction() (*Config, error) {
	var cfg Config
	if err := viper.GetViper().Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg.Columns); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if _, err := cfg.TaskPattern(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# kimaijira configuration
jira:
  url: "https://your-domain.atlassian.net"
  username: "you@example.com"
  api_token: "your-api-token"

timezone: "GMT"

columns:
  description: "Popis"
  duration: "Doba trvání"
  date: "Datum"
  time: "Od"

task_regex: '([A-Z]+-\d+)(:?\s+)(.*)'
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if _, err := cfg.TaskPattern(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

// TaskPattern compiles the task regex anchored at the start of the
// description, matching the extraction semantics of Kimai exports.
func (c Config) TaskPattern() (*regexp.Regexp, error) {
	pattern, err := regexp.Compile("^(?:" + c.TaskRegex + ")")
	if err != nil {
		return nil, fmt.Errorf("task regex %q does not compile: %w", c.TaskRegex, err)
	}
	if pattern.NumSubexp() < minTaskRegexGroups {
		return nil, fmt.Errorf(
			"task regex %q must expose at least %d capture groups (task id, separator, description), got %d",
			c.TaskRegex,
			minTaskRegexGroups,
			pattern.NumSubexp(),
		)
	}
	return pattern, nil
}

// Location resolves the configured timezone name.
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return location, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyTimezone, DefaultTimezone)
	v.SetDefault(KeyColumnDescription, DefaultColumnDescription)
	v.SetDefault(KeyColumnDuration, DefaultColumnDuration)
	v.SetDefault(KeyColumnDate, DefaultColumnDate)
	v.SetDefault(KeyColumnTime, DefaultColumnTime)
	v.SetDefault(KeyTaskRegex, DefaultTaskRegex)
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv(KeyJiraURL, "JIRA_URL")
	_ = v.BindEnv(KeyJiraUsername, "JIRA_USERNAME")
	_ = v.BindEnv(KeyJiraAPIToken, "JIRA_API_TOKEN")
	_ = v.BindEnv(KeyTimezone, "TIMEZONE")
	_ = v.BindEnv(KeyColumnDescription, "COLUMN_DESCRIPTION")
	_ = v.BindEnv(KeyColumnDuration, "COLUMN_DURATION")
	_ = v.BindEnv(KeyColumnDate, "COLUMN_DATE")
	_ = v.BindEnv(KeyColumnTime, "COLUMN_TIME")
	_ = v.BindEnv(KeyTaskRegex, "TASK_REGEX")
}
