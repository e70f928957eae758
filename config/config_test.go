package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfig(t *testing.T) {
	t.Setenv("ENV", "test")

	valid := &Config{
		DBHost: "localhost",
		DBUser: "postgres",
		DBName: "foodgram",
	}
	assert.NoError(t, ValidateConfig(valid))

	missing := &Config{DBHost: "localhost"}
	err := ValidateConfig(missing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "DB_NAME")

	s3Partial := &Config{
		DBHost:   "localhost",
		DBUser:   "postgres",
		DBName:   "foodgram",
		S3Bucket: "recipe-images",
	}
	err = ValidateConfig(s3Partial)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "AWS_REGION")
}

func TestRedisEnabled(t *testing.T) {
	assert.False(t, (&Config{}).RedisEnabled())
	assert.True(t, (&Config{RedisHost: "localhost"}).RedisEnabled())
	assert.True(t, (&Config{RedisURL: "redis://localhost:6379"}).RedisEnabled())
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5432", DBUser: "postgres",
		DBPassword: "secret", DBName: "foodgram", DBSSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=postgres password=secret dbname=foodgram sslmode=disable",
		cfg.DSN())
}
