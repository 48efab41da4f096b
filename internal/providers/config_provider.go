package providers

import (
	"fmt"
	"gatewatch/internal/structures"
	"github.com/spf13/viper"
	"path/filepath"
	"strings"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "GW_LOG_LEVEL")
	viper.BindEnv("watch.dir", "GW_WATCH_DIR")
	viper.BindEnv("watch.pollInterval", "GW_POLL_INTERVAL")
	viper.BindEnv("tracker.sweepInterval", "GW_SWEEP_INTERVAL")
	viper.BindEnv("tracker.staleThreshold", "GW_STALE_THRESHOLD")
	viper.BindEnv("cache.enabled", "GW_CACHE_ENABLED")
	viper.BindEnv("cache.size", "GW_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "GateWatchDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
