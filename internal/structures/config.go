package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type WatchConfig struct {
	Dir          string        `yaml:"dir" validate:"required|unixPath"`
	PollInterval time.Duration `yaml:"pollInterval" validate:"required|min:1"`
}

type SinksConfig struct {
	AlertsPath   string `yaml:"alertsPath" validate:"required|unixPath"`
	VehiclesPath string `yaml:"vehiclesPath" validate:"required|unixPath"`
}

type TrackerConfig struct {
	SweepInterval  time.Duration `yaml:"sweepInterval" validate:"required|min:1"`
	StaleThreshold time.Duration `yaml:"staleThreshold" validate:"required|min:1"`
}

type Persistence struct {
	Enabled      bool          `yaml:"enabled"`
	FilePath     string        `yaml:"filePath"`
	SaveInterval time.Duration `yaml:"saveInterval"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Watch       WatchConfig   `yaml:"watch"`
	Sinks       SinksConfig   `yaml:"sinks"`
	Tracker     TrackerConfig `yaml:"tracker"`
	WebServer   Server        `yaml:"webServer"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
}
