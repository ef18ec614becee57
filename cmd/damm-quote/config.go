package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/krazyTry/dynamic-amm-go/sampler"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL      string
	Commitment  string
	Pool        string
	SlippageBps uint64
	LogLevel    string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// Load merges config file, environment variables (DAMM_*), and flags.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DAMM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("commitment", "confirmed")
	v.SetDefault("slippage-bps", uint64(50))
	v.SetDefault("log-level", "info")
	v.SetDefault("db-port", 5432)
	v.SetDefault("db-sslmode", "disable")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return Config{
		RPCURL:      v.GetString("rpc"),
		Commitment:  v.GetString("commitment"),
		Pool:        v.GetString("pool"),
		SlippageBps: v.GetUint64("slippage-bps"),
		LogLevel:    v.GetString("log-level"),
		DBHost:      v.GetString("db-host"),
		DBPort:      v.GetInt("db-port"),
		DBUser:      v.GetString("db-user"),
		DBPassword:  v.GetString("db-password"),
		DBName:      v.GetString("db-name"),
		DBSSLMode:   v.GetString("db-sslmode"),
	}, nil
}

func (c Config) dbConfig() sampler.DBConfig {
	return sampler.DBConfig{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		SSLMode:  c.DBSSLMode,
	}
}
