// internal/workers/fax/transmit-fax/config.go
package transmitfax

import "time"

type Config struct {
	Timeout       time.Duration
	MaxJobsActive int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       60 * time.Second,
		MaxJobsActive: 3,
	}
}
