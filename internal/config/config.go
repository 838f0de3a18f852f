package config

import (
	"net"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Host string
	Port string

	StaticDir    string
	MaxBodyBytes int64

	SessionBackend string
	SessionTTL     time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel  string
	LogFormat string
}

// Addr is the listen address in host:port form.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// NewViper returns a viper instance with defaults applied and the
// environment bound. A .env file in the working directory is loaded
// first; variables already set in the environment win.
func NewViper() *viper.Viper {
	_ = godotenv.Load() // .env is optional

	v := viper.New()

	v.SetDefault("host", "localhost")
	v.SetDefault("port", "3000")
	v.SetDefault("static_dir", "public")
	v.SetDefault("max_body_bytes", int64(1<<20))
	v.SetDefault("session_backend", BackendMemory)
	v.SetDefault("session_ttl", time.Duration(0))
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.AutomaticEnv()

	return v
}

// FromViper reads a Config out of v.
func FromViper(v *viper.Viper) Config {

	cfg := Config{

		Host: v.GetString("host"),
		Port: v.GetString("port"),

		StaticDir:    v.GetString("static_dir"),
		MaxBodyBytes: v.GetInt64("max_body_bytes"),

		SessionBackend: v.GetString("session_backend"),
		SessionTTL:     v.GetDuration("session_ttl"),

		RedisAddr:     v.GetString("redis_addr"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}

	return cfg

}

func Load() Config {
	return FromViper(NewViper())
}
