package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string `mapstructure:"name"`
		Env  string `mapstructure:"env"` // development / production
	} `mapstructure:"app"`

	HTTP struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"http"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
		PoolSize int    `mapstructure:"pool_size"`
	} `mapstructure:"redis"`

	Ranking struct {
		Gravity  float64 `mapstructure:"gravity"`
		PageSize int     `mapstructure:"page_size"`
	} `mapstructure:"ranking"`

	Vote struct {
		// MinKarma 投票门槛，0 表示不启用（与线上行为一致）
		MinKarma int64 `mapstructure:"min_karma"`
	} `mapstructure:"vote"`

	Signup struct {
		IntervalSeconds int `mapstructure:"interval_seconds"`
		Burst           int `mapstructure:"burst"`
	} `mapstructure:"signup"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Sentry struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"sentry"`

	Otel struct {
		Endpoint string `mapstructure:"endpoint"`
	} `mapstructure:"otel"`
}

// SignupInterval 两次注册之间的最小间隔
func (c *Config) SignupInterval() time.Duration {
	return time.Duration(c.Signup.IntervalSeconds) * time.Second
}

// Load 读取 config.yaml（可缺省），环境变量 LINKRANK_* 覆盖
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("LINKRANK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.name", "linkrank")
	v.SetDefault("app.env", "development")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 50)
	v.SetDefault("ranking.gravity", 1.8)
	v.SetDefault("ranking.page_size", 30)
	v.SetDefault("vote.min_karma", 0)
	v.SetDefault("signup.interval_seconds", 60)
	v.SetDefault("signup.burst", 1)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
