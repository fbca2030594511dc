package util

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ReadConfig reads <name>.{yaml,json,toml,...} into the global viper instance.
// Default search path is ./data/.
func ReadConfig(name string, paths ...string) error {
	viper.SetConfigName(name)
	if len(paths) == 0 {
		paths = []string{"./data/"}
	}
	for _, p := range paths {
		viper.AddConfigPath(p)
	}
	viper.SetEnvPrefix("NAVIGATORX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
