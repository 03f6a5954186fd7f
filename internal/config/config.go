package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level usagelens configuration.
type Config struct {
	DataPath       string             `mapstructure:"data_path"`
	ClaudeHome     string             `mapstructure:"claude_home"`
	HistoryLimit   int                `mapstructure:"history_limit"`
	ToolWeights    map[string]float64 `mapstructure:"tool_weights"`
	ToolBaseScores map[string]float64 `mapstructure:"tool_base_scores"`
	EditTools      []string           `mapstructure:"edit_tools"`
	Thresholds     Thresholds         `mapstructure:"thresholds"`
	Output         Output             `mapstructure:"output"`
}

// Thresholds defines the trigger points for cost optimization hints.
type Thresholds struct {
	CostPerHour     float64 `mapstructure:"cost_per_hour"`
	CostPerLine     float64 `mapstructure:"cost_per_line"`
	ReadToEditRatio float64 `mapstructure:"read_to_edit_ratio"`
	SessionCount    int     `mapstructure:"session_count"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("data_path", DefaultDataPath)
	v.SetDefault("claude_home", DefaultClaudeHome)
	v.SetDefault("history_limit", DefaultHistoryLimit)
	v.SetDefault("thresholds.cost_per_hour", DefaultThresholds.CostPerHour)
	v.SetDefault("thresholds.cost_per_line", DefaultThresholds.CostPerLine)
	v.SetDefault("thresholds.read_to_edit_ratio", DefaultThresholds.ReadToEditRatio)
	v.SetDefault("thresholds.session_count", DefaultThresholds.SessionCount)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Apply table defaults if none configured. User-provided tables replace
	// the defaults wholesale so removing an entry is possible.
	if len(cfg.ToolWeights) == 0 {
		cfg.ToolWeights = DefaultToolWeights
	}
	if len(cfg.ToolBaseScores) == 0 {
		cfg.ToolBaseScores = DefaultToolBaseScores
	}
	if len(cfg.EditTools) == 0 {
		cfg.EditTools = DefaultEditTools
	}

	// Expand paths.
	cfg.DataPath = expandPath(cfg.DataPath)
	cfg.ClaudeHome = expandPath(cfg.ClaudeHome)

	return &cfg, nil
}

// DBPath returns the full path to the SQLite history database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
