package config

import (
	"fmt"
	"strings"
	"time"
)

type DatabaseConfig struct {
	URL     string        `koanf:"url"`
	Name    string        `koanf:"name"`
	Timeout time.Duration `koanf:"timeout"`
}

func (c *DatabaseConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("database URL is not configured")
	}
	if !isValidMongoURL(c.URL) {
		return fmt.Errorf("database URL must start with 'mongodb://': %s", c.URL)
	}
	if c.Name == "" {
		return fmt.Errorf("database name is not configured")
	}
	return nil
}

// isValidMongoURL checks if the provided URL is a valid MongoDB URL
func isValidMongoURL(url string) bool {
	return strings.HasPrefix(url, "mongodb://") ||
		strings.HasPrefix(url, "mongodb+srv://")
}
