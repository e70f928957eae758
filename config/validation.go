package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that every required setting is present before the
// server starts. Optional subsystems (redis, S3) are only validated when
// partially configured.
func ValidateConfig(cfg *Config) error {
	var missing []string

	if cfg.DBHost == "" {
		missing = append(missing, "DB_HOST")
	}
	if cfg.DBUser == "" {
		missing = append(missing, "DB_USER")
	}
	if cfg.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if cfg.JWTSecret == "" && !IsTest() {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if cfg.S3Bucket != "" && cfg.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION is required when S3_BUCKET_NAME is set")
	}

	return nil
}
