package config

import (
	"github.com/lintang-b-s/navigatorx-transit/pkg/traverse"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
	"github.com/spf13/viper"
)

// Config. everything the engine reads from the config file.
type Config struct {
	Search   *traverse.SearchOptions
	Routing  RoutingConfig
	LogLevel string
}

// Load. reads <name>.{yaml,json,toml,...} (default path ./data/) into the global viper instance.
// env vars NAVIGATORX_<KEY> override file values.
func Load(name string, paths ...string) (Config, error) {
	if err := util.ReadConfig(name, paths...); err != nil {
		return Config{}, err
	}
	return FromViper(viper.GetViper())
}

func FromViper(v *viper.Viper) (Config, error) {
	search, err := LoadSearchOptions(v)
	if err != nil {
		return Config{}, err
	}
	routingCfg, err := LoadRoutingConfig(v)
	if err != nil {
		return Config{}, err
	}
	v.SetDefault("log.level", "info")
	return Config{
		Search:   search,
		Routing:  routingCfg,
		LogLevel: v.GetString("log.level"),
	}, nil
}
