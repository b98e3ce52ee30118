/*
Package config manages the TOML config for WordSolve.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/bastiangx/wordsolve/pkg/constraint"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
)

// FileName is the config file name inside the config dir.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Solver SolverConfig `toml:"solver"`
	Dict   DictConfig   `toml:"dict"`
	Rank   RankConfig   `toml:"rank"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// SolverConfig has parsing and filtering options.
type SolverConfig struct {
	WordLength      int    `toml:"word_length" validate:"min=1,max=32"`
	Delimiter       string `toml:"delimiter" validate:"required,delimiter"`
	ExclusionPolicy string `toml:"exclusion_policy" validate:"oneof=accept ignore reject"`
	DuplicatePolicy string `toml:"duplicate_policy" validate:"oneof=overwrite reject"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path string `toml:"path"`
}

// RankConfig holds the ranking endpoint options.
type RankConfig struct {
	Model          string `toml:"model" validate:"required"`
	BaseURL        string `toml:"base_url" validate:"required,url"`
	TimeoutSeconds int    `toml:"timeout_seconds" validate:"min=1,max=600"`
	MinAttempt     int    `toml:"min_attempt" validate:"min=1"`
	TopN           int    `toml:"top_n" validate:"min=1,max=50"`
	APIKeyEnv      string `toml:"api_key_env"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	// MaxWords caps the words returned per solve response, 0 for all.
	MaxWords int `toml:"max_words" validate:"min=0"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	Color bool `toml:"color"`
}

var validate = newValidator()

// newValidator adds the "delimiter" tag for inclusion token separators.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("delimiter", func(fl validator.FieldLevel) bool {
		return constraint.ValidateDelimiter(fl.Field().String()) == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Timeout returns the ranking timeout as a duration.
func (r RankConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// APIKey reads the credential from the configured env var.
func (r RankConfig) APIKey() string {
	if r.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(r.APIKeyEnv)
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			WordLength:      5,
			Delimiter:       ",",
			ExclusionPolicy: "accept",
			DuplicatePolicy: "overwrite",
		},
		Dict: DictConfig{
			Path: "words.txt",
		},
		Rank: RankConfig{
			Model:          "gpt-3.5-turbo",
			BaseURL:        "https://api.openai.com/v1",
			TimeoutSeconds: 30,
			MinAttempt:     3,
			TopN:           5,
			APIKeyEnv:      "OPENAI_API_KEY",
		},
		Server: ServerConfig{
			MaxWords: 0,
		},
		CLI: CliConfig{
			Color: true,
		},
	}
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordsolve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	resolver, err := utils.NewPathResolver()
	if err != nil {
		log.Warnf("Failed to resolve config dir: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	defaultPath, err := resolver.GetConfigPath(FileName)
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file over the defaults and validates the result.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config = tryPartialParse(configPath)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// tryPartialParse keeps every key of a broken file that still has the
// right type. The rest stay at their defaults.
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	doc, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	doc.Int("solver.word_length", &config.Solver.WordLength)
	doc.String("solver.delimiter", &config.Solver.Delimiter)
	doc.String("solver.exclusion_policy", &config.Solver.ExclusionPolicy)
	doc.String("solver.duplicate_policy", &config.Solver.DuplicatePolicy)

	doc.String("dict.path", &config.Dict.Path)

	doc.String("rank.model", &config.Rank.Model)
	doc.String("rank.base_url", &config.Rank.BaseURL)
	doc.Int("rank.timeout_seconds", &config.Rank.TimeoutSeconds)
	doc.Int("rank.min_attempt", &config.Rank.MinAttempt)
	doc.Int("rank.top_n", &config.Rank.TopN)
	doc.String("rank.api_key_env", &config.Rank.APIKeyEnv)

	doc.Int("server.max_words", &config.Server.MaxWords)

	doc.Bool("cli.color", &config.CLI.Color)

	log.Infof("Salvaged %d settings from %s", doc.Recovered, configPath)
	return config
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
