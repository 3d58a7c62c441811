package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		MySQL: MySQLConfig{DSN: "user:pass@tcp(127.0.0.1:3306)/analytics"},
		Engine: EngineConfig{
			PythonBin: "/usr/bin/python3",
			ScriptDir: "/opt/engine",
			Timeout:   30 * time.Second,
		},
	}
}

func TestValidateAllowsMissingRedis(t *testing.T) {
	cfg := validConfig()
	cfg.Redis = RedisConfig{}

	// Redis 未配置只关闭完成通知，不阻止启动
	require.NoError(t, cfg.Validate())
}

func TestValidateRequiresCoreFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing mysql dsn", func(c *Config) { c.MySQL.DSN = "" }},
		{"missing python bin", func(c *Config) { c.Engine.PythonBin = "" }},
		{"missing script dir", func(c *Config) { c.Engine.ScriptDir = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
