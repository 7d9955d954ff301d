package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/notekeeper/notesweb/internal/config"
)

// loadConfig reads the --config file, or ./notesweb.json when it exists,
// and applies environment overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.LoadOptional(config.ConfigFileName)
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}
