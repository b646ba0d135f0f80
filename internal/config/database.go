package config

import (
	"fmt"
	"time"

	"library-catalog/internal/infrastructure/database"
)

// LoadDatabaseConfig turns the database section plus the pool/retry knobs into a DBConfig.
func (c *Config) LoadDatabaseConfig() (*database.DBConfig, error) {
	if c.Database.MaxConns < c.Database.MinConns {
		return nil, fmt.Errorf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)", c.Database.MaxConns, c.Database.MinConns)
	}

	maxRetries := getEnvInt("DB_MAX_RETRIES", 5)
	if maxRetries < 1 {
		return nil, fmt.Errorf("invalid DB_MAX_RETRIES: %d", maxRetries)
	}

	return &database.DBConfig{
		Host:              c.Database.Host,
		Port:              c.Database.Port,
		Username:          c.Database.User,
		Password:          c.Database.Password,
		DBName:            c.Database.Database,
		SSLMode:           c.Database.SSLMode,
		MaxConns:          int32(c.Database.MaxConns),
		MinConns:          int32(c.Database.MinConns),
		MaxConnLifetime:   getEnvDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		MaxConnIdleTime:   getEnvDuration("DB_MAX_CONN_IDLE_TIME", time.Minute),
		HealthCheckPeriod: getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
		MaxRetries:        maxRetries,
		RetryDelay:        getEnvDuration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout:    getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}, nil
}
