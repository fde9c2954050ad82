package config

// Config represents the complete configuration structure
type Config struct {
	RTBHouse RTBHouseConfig `mapstructure:"rtbhouse"`
	Presets  PresetConfig   `mapstructure:"presets"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// RTBHouseConfig holds API connection details. Either Token or the
// Username/Password pair must be set.
type RTBHouseConfig struct {
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	Token          string `mapstructure:"token"`
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// PresetConfig maps preset names to filter expressions
type PresetConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
