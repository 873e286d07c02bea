package config

import (
	"marketkeys/core"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file and fill in defaults
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("MARKETKEYS")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaults(config)
	return nil
}

func defaults(cfg *core.Config) {
	if cfg.Horizon.PoolSize <= 0 {
		cfg.Horizon.PoolSize = 20
	}

	if cfg.MarketKey.SignerWeight <= 0 {
		cfg.MarketKey.SignerWeight = 1
	}

	if cfg.MarketKey.Threshold <= 0 {
		cfg.MarketKey.Threshold = 10
	}

	if cfg.MarketKey.PageLimit <= 0 {
		cfg.MarketKey.PageLimit = 200
	}

	if cfg.Ban.ChunkSize <= 0 {
		cfg.Ban.ChunkSize = 50
	}

	if cfg.Ban.GraceDays <= 0 {
		cfg.Ban.GraceDays = 7
	}
}
