package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test data defaults
	if len(cfg.Data.WADPaths) != 1 || cfg.Data.WADPaths[0] != "doom.wad" {
		t.Errorf("expected wad paths [doom.wad], got %v", cfg.Data.WADPaths)
	}

	// Test level defaults
	if cfg.Level.Map != "E1M1" {
		t.Errorf("expected map E1M1, got %s", cfg.Level.Map)
	}
	if cfg.Level.RejectPadWithFF {
		t.Error("expected reject_pad_with_ff to be false by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
data:
  wad_paths:
    - "strife1.wad"
    - "patch.wad"

level:
  map: "MAP02"
  reject_pad_with_ff: true

logging:
  level: "debug"
  log_file: "levelgeo.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if len(cfg.Data.WADPaths) != 2 {
		t.Fatalf("expected 2 wad paths, got %v", cfg.Data.WADPaths)
	}
	if cfg.Data.WADPaths[0] != "strife1.wad" || cfg.Data.WADPaths[1] != "patch.wad" {
		t.Errorf("unexpected wad paths %v", cfg.Data.WADPaths)
	}
	if cfg.Level.Map != "MAP02" {
		t.Errorf("expected map MAP02, got %s", cfg.Level.Map)
	}
	if !cfg.Level.RejectPadWithFF {
		t.Error("expected reject_pad_with_ff to be true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "levelgeo.log" {
		t.Errorf("expected log file 'levelgeo.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
level:
  reject_pad_with_ff: not a bool
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("level:\n  map: E2M1\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "wad flag",
			setup: func() { *flagWAD = "doom2.wad, mymap.wad,," },
			verify: func(t *testing.T, cfg *Config) {
				if len(cfg.Data.WADPaths) != 2 {
					t.Fatalf("expected 2 wad paths, got %v", cfg.Data.WADPaths)
				}
				if cfg.Data.WADPaths[0] != "doom2.wad" || cfg.Data.WADPaths[1] != "mymap.wad" {
					t.Errorf("unexpected wad paths %v", cfg.Data.WADPaths)
				}
			},
			teardown: func() { *flagWAD = "" },
		},
		{
			name:  "map flag",
			setup: func() { *flagMap = "map07" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Level.Map != "MAP07" {
					t.Errorf("expected map MAP07, got %s", cfg.Level.Map)
				}
			},
			teardown: func() { *flagMap = "" },
		},
		{
			name:  "reject pad flag",
			setup: func() { *flagRejectPadWithFF = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Level.RejectPadWithFF {
					t.Error("expected reject_pad_with_ff to be true with flag")
				}
			},
			teardown: func() { *flagRejectPadWithFF = false },
		},
		{
			name:  "log file flag",
			setup: func() { *flagLogFile = "out.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "out.log" {
					t.Errorf("expected log file out.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() { *flagLogFile = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
level:
  map: "e3m1"
  reject_pad_with_ff: true
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWAD = "heretic.wad"
	defer func() {
		*flagConfig = ""
		*flagWAD = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// WAD list from flag, map from file
	if len(cfg.Data.WADPaths) != 1 || cfg.Data.WADPaths[0] != "heretic.wad" {
		t.Errorf("expected wad paths [heretic.wad] from flag, got %v", cfg.Data.WADPaths)
	}
	if cfg.Level.Map != "E3M1" {
		t.Errorf("expected map E3M1 from file, got %s", cfg.Level.Map)
	}
	if !cfg.Level.RejectPadWithFF {
		t.Error("expected reject_pad_with_ff from file")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.Data.WADPaths = nil
	if err := cfg.Validate(); err == nil {
		t.Error("expected error with no wad paths")
	}

	cfg = Default()
	cfg.Level.Map = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error with no map")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Level.Map = "MAP30"
	cfg.Data.WADPaths = []string{"doom2.wad"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Level.Map != "MAP30" {
		t.Errorf("expected map MAP30, got %s", loaded.Level.Map)
	}
	if len(loaded.Data.WADPaths) != 1 || loaded.Data.WADPaths[0] != "doom2.wad" {
		t.Errorf("unexpected wad paths %v", loaded.Data.WADPaths)
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)
	t.Setenv("APPDATA", tmpDir)

	cfg := Default()
	cfg.Level.Map = "E2M8"
	cfg.Level.RejectPadWithFF = true
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != UserConfigPath() {
		t.Errorf("Save wrote %s, want %s", path, UserConfigPath())
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Level.Map != "E2M8" || !loaded.Level.RejectPadWithFF {
		t.Errorf("unexpected level settings %+v", loaded.Level)
	}
}
