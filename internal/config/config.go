// Package config handles loader configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Level   LevelConfig   `yaml:"level"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig holds game data file paths.
type DataConfig struct {
	WADPaths []string `yaml:"wad_paths"` // IWAD first, then PWADs; later files override earlier lumps
}

// LevelConfig holds level loading settings.
type LevelConfig struct {
	Map string `yaml:"map"` // marker lump name, e.g. E1M1 or MAP01

	// RejectPadWithFF fills the part of an undersized REJECT lump that the
	// fixed pad pattern does not cover with 0xFF instead of 0x00.
	RejectPadWithFF bool `yaml:"reject_pad_with_ff"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			WADPaths: []string{"doom.wad"},
		},
		Level: LevelConfig{
			Map:             "E1M1",
			RejectPadWithFF: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
