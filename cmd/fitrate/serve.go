package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fitrate/fitrate/internal/config"
	"github.com/fitrate/fitrate/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that renders share cards and tracks client state and scan quotas.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig(serveConfigPath)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:        servePort,
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.SQLitePath,
		TokenSecret: cfg.TokenSecret,
		FreePerDay:  cfg.FreePerDay,
	})
	if err != nil {
		return err
	}

	return srv.Start()
}

// loadCLIConfig merges the optional config file over environment defaults.
func loadCLIConfig(path string) (config.Config, error) {
	envDefaults := config.Config{
		APIBase:     os.Getenv("FITRATE_API_BASE"),
		UserID:      os.Getenv("FITRATE_USER_ID"),
		SQLitePath:  os.Getenv("FITRATE_SQLITE_PATH"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		TokenSecret: os.Getenv("FITRATE_TOKEN_SECRET"),
	}
	if v := os.Getenv("FITRATE_FREE_PER_DAY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			envDefaults.FreePerDay = n
		}
	}

	if path == "" {
		return envDefaults, nil
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	merged := fileCfg.MergeWithDefaults(envDefaults)
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}
