package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port int
	}
	Scan struct {
		Timeout           string
		UserAgent         string
		MaxSitemapFetches int
		MaxDepth          int
		Concurrency       int
	}
	Models struct {
		EmbeddingEndpoint string
		WordVectorsPath   string
	}
	Static struct {
		Dir string
	}
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("scan.timeout", "30s")
	viper.SetDefault("scan.useragent", "Sitemap Prioritizer Bot v1.0")
	viper.SetDefault("scan.maxsitemapfetches", 500)
	viper.SetDefault("scan.maxdepth", 10)
	viper.SetDefault("scan.concurrency", 5)
	viper.SetDefault("static.dir", "static")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// The service runs fine on defaults alone; only a malformed file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) GetScanTimeout() time.Duration {
	duration, err := time.ParseDuration(c.Scan.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return duration
}
