package storefront

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

const (
	defaultBaseURL     = "http://localhost:8080"
	defaultVaultPrefix = "storefront"
	defaultVaultKey    = "auth_token"
)

func defaultVaultFilePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "storefront", "credentials")
	}
	return filepath.Join(os.TempDir(), "storefront-credentials")
}

// Config controls how a Client is constructed. Zero values are filled in by
// withDefaults, so construction never fails on an empty Config.
type Config struct {
	// BaseURL is the root of the remote e-commerce API.
	BaseURL string `env:"STOREFRONT_BASE_URL"`

	// Vault selects and configures durable credential storage.
	Vault VaultConfig
}

// VaultConfig controls how the credential vault is constructed.
type VaultConfig struct {
	Driver VaultDriver `env:"STOREFRONT_VAULT_DRIVER"`

	// Key is the single durable key holding the bearer token.
	Key string `env:"STOREFRONT_VAULT_KEY"`

	// Prefix namespaces the key on shared backends (redis, sql, nats, dynamo).
	Prefix string `env:"STOREFRONT_VAULT_PREFIX"`

	// FilePath is where the file driver persists the token.
	FilePath string `env:"STOREFRONT_VAULT_FILE"`

	// RedisClient is required when VaultRedis is used.
	RedisClient RedisClient

	// SQL driver settings; SQLDriverName is one of sqlite, mysql, pgx.
	SQLDriverName string `env:"STOREFRONT_VAULT_SQL_DRIVER"`
	SQLDSN        string `env:"STOREFRONT_VAULT_SQL_DSN"`
	SQLTable      string `env:"STOREFRONT_VAULT_SQL_TABLE"`

	// NATSKeyValue is required when VaultNATS is used.
	NATSKeyValue NATSKeyValue

	// Dynamo settings; when DynamoClient is nil a default client is built
	// from region/endpoint.
	DynamoClient   DynamoAPI
	DynamoTable    string `env:"STOREFRONT_VAULT_DYNAMO_TABLE"`
	DynamoRegion   string `env:"STOREFRONT_VAULT_DYNAMO_REGION"`
	DynamoEndpoint string `env:"STOREFRONT_VAULT_DYNAMO_ENDPOINT"`
}

// LoadConfig reads configuration from the environment.
//
// Example: configure from env
//
//	os.Setenv("STOREFRONT_BASE_URL", "https://shop.example.com")
//	cfg, _ := storefront.LoadConfig()
//	fmt.Println(cfg.BaseURL) // https://shop.example.com
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	c.Vault = c.Vault.withDefaults()
	return c
}

func (c VaultConfig) withDefaults() VaultConfig {
	if c.Driver == "" {
		c.Driver = VaultFile
	}
	if c.Key == "" {
		c.Key = defaultVaultKey
	}
	if c.Prefix == "" {
		c.Prefix = defaultVaultPrefix
	}
	if c.FilePath == "" {
		c.FilePath = defaultVaultFilePath()
	}
	if c.SQLTable == "" {
		c.SQLTable = "credential_entries"
	}
	if c.DynamoTable == "" {
		c.DynamoTable = "storefront_credentials"
	}
	if c.DynamoRegion == "" {
		c.DynamoRegion = "us-east-1"
	}
	return c
}
