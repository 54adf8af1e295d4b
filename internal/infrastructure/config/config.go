package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const section = "hotel"

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Memcached   MemcachedConfig   `mapstructure:"memcached"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Reservation ReservationConfig `mapstructure:"reservation"`
	RabbitMQ    RabbitMQConfig    `mapstructure:"rabbitmq"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

type ServerConfig struct {
	Host         string          `mapstructure:"host"`
	Port         int             `mapstructure:"port"`
	ReadTimeout  time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout time.Duration   `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration   `mapstructure:"idle_timeout"`
	EnableCORS   bool            `mapstructure:"enable_cors"`
	RateLimit    RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type DatabaseConfig struct {
	Driver             string        `mapstructure:"driver"`
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	Database           string        `mapstructure:"database"`
	SSLMode            string        `mapstructure:"ssl_mode"`
	Path               string        `mapstructure:"path"`
	MaxOpenConnections int           `mapstructure:"max_open_connections"`
	MaxIdleConnections int           `mapstructure:"max_idle_connections"`
	ConnMaxLife        time.Duration `mapstructure:"conn_max_life"`
	AutoMigrate        bool          `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type MemcachedConfig struct {
	Servers []string `mapstructure:"servers"`
}

type CacheConfig struct {
	Driver            string        `mapstructure:"driver"` // memory, redis or memcached
	RoomsTTL          time.Duration `mapstructure:"rooms_ttl"`
	AvailableRoomsTTL time.Duration `mapstructure:"available_rooms_ttl"`
	LocalMaxSize      int64         `mapstructure:"local_max_size"`
}

type ReservationConfig struct {
	CancellationWindow time.Duration `mapstructure:"cancellation_window"`
	CancellationMode   string        `mapstructure:"cancellation_mode"` // intended or literal
	LockDriver         string        `mapstructure:"lock_driver"`       // memory or redis
	LockTTL            time.Duration `mapstructure:"lock_ttl"`
	LockWait           time.Duration `mapstructure:"lock_wait"`
}

type RabbitMQConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	Exchange       string        `mapstructure:"exchange"`
	RoutingKey     string        `mapstructure:"routing_key"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
	Breaker        BreakerConfig `mapstructure:"breaker"`
}

type BreakerConfig struct {
	MaxRequests         uint32        `mapstructure:"max_requests"`
	Interval            time.Duration `mapstructure:"interval"`
	Timeout             time.Duration `mapstructure:"timeout"`
	ConsecutiveFailures uint32        `mapstructure:"consecutive_failures"`
}

type SchedulerConfig struct {
	IntervalInMinutes uint64        `mapstructure:"interval_in_minutes"`
	LockTTL           time.Duration `mapstructure:"lock_ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

func LoadConfig() (*Config, error) {
	var err error
	if err = gotenv.Load("../.env"); err != nil {
		_ = gotenv.Load()
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("..")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return FromViper(viper.GetViper())
}

// FromViper decodes the hotel section of an already loaded viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	if !v.IsSet(section) {
		return nil, fmt.Errorf("%s section not found in config", section)
	}

	var config Config
	if err := v.UnmarshalKey(section, &config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// applyDefaults fills unset values. UnmarshalKey ignores viper defaults for
// nested keys, so they are applied on the decoded struct.
func applyDefaults(c *Config) {
	setIfEmpty(&c.Server.Host, "0.0.0.0")
	setIfZero(&c.Server.Port, 8080)
	setIfZero(&c.Server.ReadTimeout, 15*time.Second)
	setIfZero(&c.Server.WriteTimeout, 15*time.Second)
	setIfZero(&c.Server.IdleTimeout, 60*time.Second)
	setIfZero(&c.Server.RateLimit.RequestsPerSecond, 10)
	setIfZero(&c.Server.RateLimit.Burst, 20)

	setIfEmpty(&c.Database.Driver, "postgres")
	setIfEmpty(&c.Database.SSLMode, "disable")
	setIfEmpty(&c.Database.Path, "hotel.db")

	setIfEmpty(&c.Cache.Driver, "memory")
	setIfZero(&c.Cache.RoomsTTL, 20*time.Minute)
	setIfZero(&c.Cache.AvailableRoomsTTL, 15*time.Minute)
	setIfZero(&c.Cache.LocalMaxSize, 10000)

	setIfZero(&c.Reservation.CancellationWindow, 48*time.Hour)
	setIfEmpty(&c.Reservation.CancellationMode, "intended")
	setIfEmpty(&c.Reservation.LockDriver, "memory")
	setIfZero(&c.Reservation.LockTTL, 10*time.Second)
	setIfZero(&c.Reservation.LockWait, 2*time.Second)

	setIfZero(&c.RabbitMQ.Port, 5672)
	setIfEmpty(&c.RabbitMQ.RoutingKey, "reservation.room_booked")
	setIfZero(&c.RabbitMQ.PublishTimeout, 5*time.Second)
	setIfZero(&c.RabbitMQ.Breaker.Timeout, 30*time.Second)
	setIfZero(&c.RabbitMQ.Breaker.ConsecutiveFailures, 5)

	setIfZero(&c.Scheduler.IntervalInMinutes, 10)
	setIfZero(&c.Scheduler.LockTTL, 5*time.Minute)

	setIfEmpty(&c.Logging.Level, "info")
	setIfEmpty(&c.Logging.Format, "json")
}

func setIfEmpty(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

func setIfZero[T int | int64 | uint32 | uint64 | float64 | time.Duration](field *T, value T) {
	if *field == 0 {
		*field = value
	}
}

func expandConfigEnvVars(config *Config) {
	config.Server.Host = os.ExpandEnv(config.Server.Host)

	config.Database.Host = os.ExpandEnv(config.Database.Host)
	config.Database.Username = os.ExpandEnv(config.Database.Username)
	config.Database.Password = os.ExpandEnv(config.Database.Password)
	config.Database.Database = os.ExpandEnv(config.Database.Database)
	config.Database.SSLMode = os.ExpandEnv(config.Database.SSLMode)
	config.Database.Path = os.ExpandEnv(config.Database.Path)

	config.Redis.Host = os.ExpandEnv(config.Redis.Host)
	config.Redis.Password = os.ExpandEnv(config.Redis.Password)

	for i, server := range config.Memcached.Servers {
		config.Memcached.Servers[i] = os.ExpandEnv(server)
	}

	config.RabbitMQ.Host = os.ExpandEnv(config.RabbitMQ.Host)
	config.RabbitMQ.User = os.ExpandEnv(config.RabbitMQ.User)
	config.RabbitMQ.Password = os.ExpandEnv(config.RabbitMQ.Password)
}

func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.Username, c.Password, c.Host, c.Port, c.Database)
	case "sqlite":
		return c.Path
	default:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode)
	}
}

func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.User, c.Password, c.Host, c.Port)
}

// UsesRedis reports whether any component needs a Redis client.
func (c *Config) UsesRedis() bool {
	return c.Cache.Driver == "redis" || c.Reservation.LockDriver == "redis"
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql":
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Cache.Driver {
	case "memory", "redis":
	case "memcached":
		if len(c.Memcached.Servers) == 0 {
			return fmt.Errorf("memcached servers are required when cache driver is memcached")
		}
	default:
		return fmt.Errorf("unsupported cache driver: %q", c.Cache.Driver)
	}

	switch c.Reservation.LockDriver {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported lock driver: %q", c.Reservation.LockDriver)
	}

	switch c.Reservation.CancellationMode {
	case "intended", "literal":
	default:
		return fmt.Errorf("unsupported cancellation mode: %q", c.Reservation.CancellationMode)
	}

	if c.UsesRedis() && c.Redis.Host == "" {
		return fmt.Errorf("redis host is required when redis is used for cache or locks")
	}

	if c.RabbitMQ.Enabled && c.RabbitMQ.Host == "" {
		return fmt.Errorf("rabbitmq host is required when the feed is enabled")
	}

	if c.Scheduler.IntervalInMinutes == 0 {
		return fmt.Errorf("scheduler interval must be at least one minute")
	}
	return nil
}
