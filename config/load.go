package config

import (
	"lendflow/core"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file, environment variables prefixed LENDFLOW override it
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("LENDFLOW")
	if configFile != "" {
		if err := configUtil.LoadYaml(configFile, config); err != nil {
			return err
		}
	}

	defaults(config)
	return nil
}
