package config

import "flag"

var (
	flagConfig        = flag.String("config", "", "Path to config file")
	flagDebug         = flag.Bool("debug", false, "Enable debug logging")
	flagMaxBones      = flag.Int("max-bones", 0, "Bone slots per transform set")
	flagLoop          = flag.Bool("loop", false, "Loop clips")
	flagNoLoop        = flag.Bool("no-loop", false, "Clamp frames instead of looping")
	flagNoConstraints = flag.Bool("no-constraints", false, "Skip helper bone constraints")
	flagLogFile       = flag.String("log-file", "", "Write logs to file")
	flagLogFormat     = flag.String("log-format", "", "Log format: console or json")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments remaining after flag parsing.
func Args() []string {
	return flag.Args()
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
	if *flagMaxBones > 0 {
		cfg.Animation.MaxBones = *flagMaxBones
	}
	if *flagLoop {
		cfg.Animation.Loop = true
	}
	if *flagNoLoop {
		cfg.Animation.Loop = false
	}
	if *flagNoConstraints {
		cfg.Animation.ApplyConstraints = false
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagLogFormat != "" {
		cfg.Logging.Format = *flagLogFormat
	}
}
