package bootstrap

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort          string        `mapstructure:"SERVER_PORT"`
	GrpcPort            string        `mapstructure:"GRPC_PORT"`
	DeciderAddr         string        `mapstructure:"DECIDER_ADDR"`
	RedisUrl            string        `mapstructure:"REDIS_URL"`
	MongoUri            string        `mapstructure:"MONGO_URI"`
	MongoDatabase       string        `mapstructure:"MONGO_DATABASE"`
	IsLocalCors         bool          `mapstructure:"LOCAL_CORS"`
	DefaultIntelligence int           `mapstructure:"DEFAULT_INTELLIGENCE"`
	MaxIntelligence     int           `mapstructure:"MAX_INTELLIGENCE"`
	DecisionCacheTTL    time.Duration `mapstructure:"DECISION_CACHE_TTL"`
	RequestTimeout      time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

var defaults = map[string]any{
	"SERVER_PORT":          "8080",
	"GRPC_PORT":            "8082",
	"DECIDER_ADDR":         "",
	"REDIS_URL":            "",
	"MONGO_URI":            "",
	"MONGO_DATABASE":       "desdemona",
	"LOCAL_CORS":           true,
	"DEFAULT_INTELLIGENCE": 3,
	"MAX_INTELLIGENCE":     8,
	"DECISION_CACHE_TTL":   time.Hour,
	"REQUEST_TIMEOUT":      30 * time.Second,
}

// Setup reads the dotenv file at cfgPath. Environment variables override the
// file and a missing file leaves the defaults in place.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgPath)
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	err := v.ReadInConfig()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if cfg.DefaultIntelligence > cfg.MaxIntelligence {
		cfg.DefaultIntelligence = cfg.MaxIntelligence
	}

	return &cfg, nil
}
