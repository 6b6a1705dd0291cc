package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig
	Logger      LoggerConfig

	// Calendar sync specifics
	GoogleCalendar GoogleCalendarConfig
	Schedule       ScheduleConfig
	Agendas        []AgendaConfig
}

type EnvironmentConfig struct {
	Name string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type GoogleCalendarConfig struct {
	CredentialsPath string
}

// ScheduleConfig drives the schedule document parser.
type ScheduleConfig struct {
	Timezone string
	// SchoolYear is the calendar year the school year starts in,
	// e.g. 2024 for the 2024-2025 school year. Zero means "infer from
	// the current date".
	SchoolYear   int
	DefaultColor string
	Colors       []ColorRuleConfig
}

// ColorRuleConfig maps a calendar color id to the summary keywords that
// select it. Rules apply in config order, first match wins.
type ColorRuleConfig struct {
	ColorID  string   `yaml:"color_id"`
	Keywords []string `yaml:"keywords"`
}

// AgendaConfig describes one syncable calendar and the directory tree its
// schedule documents live in.
type AgendaConfig struct {
	ShortName    string `yaml:"shortname"`
	LongName     string `yaml:"longname"`
	CalendarID   string `yaml:"calendar_id"`
	RootPath     string `yaml:"root_path"`
	DefaultColor string `yaml:"default_color"`
	Default      bool   `yaml:"default"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.GoogleCalendar.CredentialsPath = expandEnvVar(viper.GetString("google_calendar.credentials_path"))
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	cfg.Schedule.Timezone = viper.GetString("schedule.timezone")
	cfg.Schedule.SchoolYear = viper.GetInt("schedule.school_year")
	cfg.Schedule.DefaultColor = viper.GetString("schedule.default_color")
	cfg.Schedule.Colors = loadColorRules()

	// Agendas are loaded from the raw tree: viper lowercases map keys but
	// keeps list order, which the color rules above also rely on.
	if viper.IsSet("agendas") {
		agendasRaw := viper.Get("agendas")
		if agendasList, ok := agendasRaw.([]interface{}); ok {
			for _, a := range agendasList {
				if agendaMap, ok := a.(map[string]interface{}); ok {
					agenda := AgendaConfig{
						ShortName:    getStringFromMap(agendaMap, "shortname"),
						LongName:     getStringFromMap(agendaMap, "longname"),
						CalendarID:   getStringFromMap(agendaMap, "calendar_id"),
						RootPath:     expandEnvVar(getStringFromMap(agendaMap, "root_path")),
						DefaultColor: getStringFromMap(agendaMap, "default_color"),
						Default:      getBoolFromMap(agendaMap, "default"),
					}
					cfg.Agendas = append(cfg.Agendas, agenda)
				}
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadColorRules() []ColorRuleConfig {
	if !viper.IsSet("schedule.colors") {
		return nil
	}
	rulesRaw := viper.Get("schedule.colors")
	rulesList, ok := rulesRaw.([]interface{})
	if !ok {
		return nil
	}

	var rules []ColorRuleConfig
	for _, r := range rulesList {
		ruleMap, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		rule := ColorRuleConfig{
			ColorID: getStringFromMap(ruleMap, "color_id"),
		}
		if keywordsRaw, ok := ruleMap["keywords"].([]interface{}); ok {
			for _, k := range keywordsRaw {
				if keyword, ok := k.(string); ok {
					rule.Keywords = append(rule.Keywords, keyword)
				}
			}
		}
		rules = append(rules, rule)
	}
	return rules
}

func validate(cfg *Config) error {
	if len(cfg.Agendas) == 0 {
		return fmt.Errorf("no agendas configured - please add an agendas section to config.yaml")
	}

	seen := make(map[string]bool)
	defaults := 0
	for i, agenda := range cfg.Agendas {
		if agenda.ShortName == "" {
			return fmt.Errorf("agenda %d: shortname is required", i)
		}
		if agenda.CalendarID == "" {
			return fmt.Errorf("agenda %s: calendar_id is required", agenda.ShortName)
		}
		if seen[agenda.ShortName] {
			return fmt.Errorf("agenda %s: duplicate shortname", agenda.ShortName)
		}
		seen[agenda.ShortName] = true
		if agenda.Default {
			defaults++
		}
	}
	if defaults > 1 {
		return fmt.Errorf("only one agenda may be marked as default, got %d", defaults)
	}

	if cfg.Schedule.Timezone == "" {
		return fmt.Errorf("schedule.timezone is required")
	}
	if cfg.Schedule.DefaultColor == "" {
		return fmt.Errorf("schedule.default_color is required")
	}

	return nil
}

// DefaultAgenda returns the agenda marked default, falling back to the
// first one.
func (c *Config) DefaultAgenda() AgendaConfig {
	for _, agenda := range c.Agendas {
		if agenda.Default {
			return agenda
		}
	}
	return c.Agendas[0]
}

// Agenda looks up an agenda by its short name.
func (c *Config) Agenda(shortName string) (AgendaConfig, bool) {
	for _, agenda := range c.Agendas {
		if agenda.ShortName == shortName {
			return agenda, true
		}
	}
	return AgendaConfig{}, false
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "production")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("schedule.timezone", "Europe/Paris")
	viper.SetDefault("schedule.default_color", "11")
	viper.SetDefault("google_calendar.credentials_path", "credentials.json")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}
