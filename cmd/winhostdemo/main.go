// Command winhostdemo opens a native window and logs every normalized event
// the adapter emits. It is the smoke-test harness for the window package.
package main

import (
	"flag"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const configFilename = "winhostdemo.yml"

// demoConfig can be placed next to the binary to override the defaults.
type demoConfig struct {
	Title    string `yaml:"title"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	LogLevel string `yaml:"log_level"`
}

func defaultConfig() demoConfig {
	return demoConfig{Title: "winhost demo", Width: 800, Height: 600, LogLevel: "info"}
}

func loadConfig(path string) demoConfig {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read config", "path", path, "error", err)
		}
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		slog.Warn("failed to parse config, using defaults", "path", path, "error", err)
		return defaultConfig()
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		slog.Warn("window size must be positive, using defaults",
			"width", cfg.Width, "height", cfg.Height)
		def := defaultConfig()
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	return cfg
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	configPath := flag.String("config", configFilename, "path to the demo config file")
	flag.Parse()

	cfg := loadConfig(*configPath)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	})))

	if err := run(cfg); err != nil {
		slog.Error("demo failed", "error", err)
		os.Exit(1)
	}
}
