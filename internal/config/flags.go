package config

import (
	"flag"
	"strings"
)

var (
	flagConfig          = flag.String("config", "", "Path to config file")
	flagDebug           = flag.Bool("debug", false, "Enable debug logging")
	flagWAD             = flag.String("wad", "", "Comma separated WAD files, IWAD first")
	flagMap             = flag.String("map", "", "Level marker lump name (E1M1, MAP01)")
	flagRejectPadWithFF = flag.Bool("reject-pad-with-ff", false, "Pad undersized REJECT lumps with 0xFF")
	flagLogFile         = flag.String("log-file", "", "Also write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWAD != "" {
		cfg.Data.WADPaths = splitList(*flagWAD)
	}
	if *flagMap != "" {
		cfg.Level.Map = strings.ToUpper(*flagMap)
	}
	if *flagRejectPadWithFF {
		cfg.Level.RejectPadWithFF = true
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
