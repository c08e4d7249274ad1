package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/liavyona/covid-overview/pkg"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "covid-overview",
	Short:         "Korean COVID-19 case overview by region",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before the environment is read")
	rootCmd.AddCommand(showCmd, serveCmd)
}

// loadConfig reads envFile, if present, then the environment.
func loadConfig() (*pkg.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	cfg, err := pkg.LoadConfig()
	if err != nil {
		return nil, err
	}
	pkg.ConfigureLogger(cfg.LogLevel)
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("covid-overview failed")
		os.Exit(1)
	}
}
