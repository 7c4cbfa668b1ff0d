package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cyverse-ops/atmoctl/constants"
	"github.com/cyverse-ops/atmoctl/lib/console"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type BatchConfig struct {
	// Workerpool size for the launch and poll phases.
	PoolSize int `yaml:"pool_size"`
	// Seconds between instance status polls.
	PollIntervalSecs int `yaml:"poll_interval_secs"`
	// Seconds to wait for a launched instance to become active.
	ActiveTimeoutSecs int `yaml:"active_timeout_secs"`
	// Seconds to wait for a volume to detach during cleanup.
	DetachTimeoutSecs int `yaml:"detach_timeout_secs"`
}

type Config struct {
	// Whether or not to print verbose output.
	Verbose bool
	Batch   BatchConfig
	// Rate limiter shared by all API calls of a run. Required to stay under
	// the platform's request rate limits.
	RateLimiter *rate.Limiter `yaml:"-"`
}

// Singleton CLI config instance.
var I Config

func (b BatchConfig) PollInterval() time.Duration {
	return time.Duration(b.PollIntervalSecs) * time.Second
}

func (b BatchConfig) ActiveTimeout() time.Duration {
	return time.Duration(b.ActiveTimeoutSecs) * time.Second
}

func (b BatchConfig) DetachTimeout() time.Duration {
	return time.Duration(b.DetachTimeoutSecs) * time.Second
}

// Returns path to the atmoctl config file.
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatal(err)
	}

	return filepath.Join(homeDir, constants.ConfigFileName)
}

func defaultConfig() Config {
	return Config{
		Batch: BatchConfig{
			PoolSize:          4,
			PollIntervalSecs:  5,
			ActiveTimeoutSecs: 1800,
			DetachTimeoutSecs: 600,
		},
	}
}

// Initialize the CLI config.
func InitConfig() Config {
	cpath := GetConfigPath()

	// Create default config file if it doesn't exist yet
	if _, err := os.Stat(cpath); errors.Is(err, os.ErrNotExist) {
		// Create directories if they don't exist
		err := os.MkdirAll(filepath.Dir(cpath), 0755)
		if err != nil {
			log.Fatal(err)
		}

		I = defaultConfig()

		// Write default config to file
		cYaml, err := yaml.Marshal(I)
		if err != nil {
			log.Fatal(err)
		}

		err = os.WriteFile(cpath, cYaml, 0644)
		if err != nil {
			log.Fatal(err)
		}

		SetInternalConfigFields(&I)
	} else {
		// Open file
		cBytes, err := os.ReadFile(cpath)
		if err != nil {
			log.Fatal(err)
		}

		// Decode file contents
		var config Config
		err = yaml.Unmarshal(cBytes, &config)
		if err != nil {
			log.Fatal(err)
		}

		// Set internal and default config fields
		SetInternalConfigFields(&config)

		// Set config instance
		I = config
	}

	// Validate config
	if I.Batch.PoolSize < 1 {
		log.Fatal("\"batch.pool_size\" must be at least 1")
	}
	if I.Batch.PollIntervalSecs < 1 {
		log.Fatal("\"batch.poll_interval_secs\" must be at least 1")
	}
	if I.Batch.ActiveTimeoutSecs < 1 {
		log.Fatal("\"batch.active_timeout_secs\" must be at least 1")
	}

	if I.Verbose {
		// Print config as JSON
		cfgJson, err := json.MarshalIndent(I, "", "  ")
		if err != nil {
			log.Fatal(err)
		}

		console.Verbose("Config:")
		console.Verbose(string(cfgJson))
	}

	return I
}

// Set internal config fields.
func SetInternalConfigFields(config *Config) {
	// Set defaults for missing fields
	def := defaultConfig()
	if config.Batch.PoolSize == 0 {
		config.Batch.PoolSize = def.Batch.PoolSize
	}
	if config.Batch.PollIntervalSecs == 0 {
		config.Batch.PollIntervalSecs = def.Batch.PollIntervalSecs
	}
	if config.Batch.ActiveTimeoutSecs == 0 {
		config.Batch.ActiveTimeoutSecs = def.Batch.ActiveTimeoutSecs
	}
	if config.Batch.DetachTimeoutSecs == 0 {
		config.Batch.DetachTimeoutSecs = def.Batch.DetachTimeoutSecs
	}

	// Set internal config fields
	config.RateLimiter = rate.NewLimiter(rate.Every(time.Second/10), 1)
}
