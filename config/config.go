package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Provider     ProviderConfig     `mapstructure:"provider"`
	Contracts    ContractsConfig    `mapstructure:"contracts"`
	Confirmation ConfirmationConfig `mapstructure:"confirmation"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	RateLimit    RateLimitConfig    `mapstructure:"ratelimit"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Log          LogConfig          `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// ProviderConfig advertises the wallet provider. An empty URL means none is installed.
type ProviderConfig struct {
	URL         string        `mapstructure:"url"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

type ContractsConfig struct {
	ATM     ContractConfig `mapstructure:"atm"`
	Lottery ContractConfig `mapstructure:"lottery"`
}

// ContractConfig locates one deployed contract. A contract with no address is not served.
type ContractConfig struct {
	Address     string `mapstructure:"address"`
	ABIPath     string `mapstructure:"abi_path"` // empty = embedded artifact
	Decimals    int32  `mapstructure:"decimals"`
	TicketPrice string `mapstructure:"ticket_price"` // lottery only, decimal string
}

// Enabled reports whether the contract should get a session.
func (c ContractConfig) Enabled() bool {
	return strings.TrimSpace(c.Address) != ""
}

type ConfirmationConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Password       string        `mapstructure:"password"`
	DB             int           `mapstructure:"db"`
	LockTTL        time.Duration `mapstructure:"lock_ttl"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// RateLimitConfig sets per-minute limits for the API route groups.
type RateLimitConfig struct {
	Reads      int64 `mapstructure:"reads"`
	Operations int64 `mapstructure:"operations"`
	Auth       int64 `mapstructure:"auth"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"` // empty = session routes are unauthenticated
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type AuthConfig struct {
	OperatorHash string `mapstructure:"operator_hash"` // argon2id encoded passphrase hash
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: WSG_ (Wallet Session Gateway).
// Nested keys use underscore: WSG_PROVIDER_URL, WSG_CONTRACTS_ATM_ADDRESS, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("provider.url", "")
	v.SetDefault("provider.dial_timeout", "5s")
	v.SetDefault("contracts.atm.address", "0x5FbDB2315678afecb367f032d93F642f64180aa3")
	v.SetDefault("contracts.atm.abi_path", "")
	v.SetDefault("contracts.atm.decimals", 18)
	v.SetDefault("contracts.atm.ticket_price", "")
	v.SetDefault("contracts.lottery.address", "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	v.SetDefault("contracts.lottery.abi_path", "")
	v.SetDefault("contracts.lottery.decimals", 18)
	v.SetDefault("contracts.lottery.ticket_price", "0.01")
	v.SetDefault("confirmation.poll_interval", "2s")
	v.SetDefault("confirmation.timeout", "2m")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "wallet_sessions")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.lock_ttl", "3m")
	v.SetDefault("redis.idempotency_ttl", "24h")
	v.SetDefault("ratelimit.reads", 120)
	v.SetDefault("ratelimit.operations", 20)
	v.SetDefault("ratelimit.auth", 10)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "8h")
	v.SetDefault("jwt.issuer", "wallet-session-gateway")
	v.SetDefault("auth.operator_hash", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: WSG_CONTRACTS_ATM_ADDRESS -> contracts.atm.address
	v.SetEnvPrefix("WSG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings that would make the confirmation wait or JWT issuance meaningless.
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be one of debug|release|test")
	}
	if c.Confirmation.PollInterval <= 0 {
		return fmt.Errorf("confirmation.poll_interval must be positive")
	}
	if c.Confirmation.Timeout < c.Confirmation.PollInterval {
		return fmt.Errorf("confirmation.timeout must be at least confirmation.poll_interval")
	}
	if c.JWT.Secret != "" && c.JWT.Expiry <= 0 {
		return fmt.Errorf("jwt.expiry must be positive when jwt.secret is set")
	}
	if c.Contracts.Lottery.Enabled() && strings.TrimSpace(c.Contracts.Lottery.TicketPrice) == "" {
		return fmt.Errorf("contracts.lottery.ticket_price is required")
	}
	return nil
}
