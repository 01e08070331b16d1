package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagTolerance = flag.Float64("tolerance", 0, "Vertex deduplication tolerance")
	flagSolid     = flag.String("solid", "", "Solid kind: box, sphere or cylinder")
	flagCells     = flag.Int("cells", 0, "Marching cubes resolution")
	flagOut       = flag.String("out", "", "Snapshot output path")
	flagLogFile   = flag.String("log-file", "", "Write logs to this file as well")
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
	if *flagTolerance > 0 {
		cfg.Mesh.Tolerance = *flagTolerance
	}
	if *flagSolid != "" {
		cfg.Generator.Solid = *flagSolid
	}
	if *flagCells > 0 {
		cfg.Generator.Cells = *flagCells
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
