package storefront

import "context"

// VaultDriver identifies a credential vault backend.
type VaultDriver string

const (
	VaultNull   VaultDriver = "null"
	VaultFile   VaultDriver = "file"
	VaultMemory VaultDriver = "memory"
	VaultRedis  VaultDriver = "redis"
	VaultSQL    VaultDriver = "sql"
	VaultNATS   VaultDriver = "nats"
	VaultDynamo VaultDriver = "dynamodb"
)

// Vault persists the single bearer-token credential outside the cache's
// ownership. Implementations hold exactly one durable key.
type Vault interface {
	Driver() VaultDriver
	Load(ctx context.Context) (string, bool, error)
	Store(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// NewVault returns a concrete vault for the requested driver. Caller is
// responsible for providing any driver-specific dependencies. Construction
// failures are preserved in an error vault so the driver identity survives.
//
// Example: file vault
//
//	ctx := context.Background()
//	v := storefront.NewVault(ctx, storefront.VaultConfig{Driver: storefront.VaultFile})
//	fmt.Println(v.Driver()) // file
func NewVault(ctx context.Context, cfg VaultConfig) Vault {
	cfg = cfg.withDefaults()
	switch cfg.Driver {
	case VaultNull:
		return newNullVault()
	case VaultMemory:
		return newMemoryVault(cfg.Key)
	case VaultRedis:
		return newRedisVault(cfg.RedisClient, cfg.Prefix, cfg.Key)
	case VaultSQL:
		v, err := newSQLVault(cfg)
		if err != nil {
			return &errorVault{driver: VaultSQL, err: err}
		}
		return v
	case VaultNATS:
		return newNATSVault(cfg.NATSKeyValue, cfg.Prefix, cfg.Key)
	case VaultDynamo:
		v, err := newDynamoVault(ctx, cfg)
		if err != nil {
			return &errorVault{driver: VaultDynamo, err: err}
		}
		return v
	default:
		return newFileVault(cfg.FilePath)
	}
}

// NewVaultWith builds a vault using a driver and a set of functional options.
func NewVaultWith(ctx context.Context, driver VaultDriver, opts ...VaultOption) Vault {
	cfg := VaultConfig{Driver: driver}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	return NewVault(ctx, cfg)
}

// VaultOption mutates VaultConfig when constructing a vault.
type VaultOption func(VaultConfig) VaultConfig

// WithVaultKey overrides the durable key name.
func WithVaultKey(key string) VaultOption {
	return func(cfg VaultConfig) VaultConfig {
		cfg.Key = key
		return cfg
	}
}

// WithVaultPrefix sets the key prefix for shared backends.
func WithVaultPrefix(prefix string) VaultOption {
	return func(cfg VaultConfig) VaultConfig {
		cfg.Prefix = prefix
		return cfg
	}
}

// WithVaultFilePath sets where the file driver persists the token.
func WithVaultFilePath(path string) VaultOption {
	return func(cfg VaultConfig) VaultConfig {
		cfg.FilePath = path
		return cfg
	}
}

// WithVaultRedisClient sets the redis client; required for VaultRedis.
func WithVaultRedisClient(client RedisClient) VaultOption {
	return func(cfg VaultConfig) VaultConfig {
		cfg.RedisClient = client
		return cfg
	}
}

// WithVaultSQL sets the database/sql driver name and DSN; required for VaultSQL.
func WithVaultSQL(driverName, dsn string) VaultOption {
	return func(cfg VaultConfig) VaultConfig {
		cfg.SQLDriverName = driverName
		cfg.SQLDSN = dsn
		return cfg
	}
}

// WithVaultSQLTable overrides the table used by the sql driver.
func WithVaultSQLTable(table string) VaultOption {
	return func(cfg VaultConfig) VaultConfig {
		cfg.SQLTable = table
		return cfg
	}
}

// WithVaultNATSKeyValue sets the JetStream bucket; required for VaultNATS.
func WithVaultNATSKeyValue(kv NATSKeyValue) VaultOption {
	return func(cfg VaultConfig) VaultConfig {
		cfg.NATSKeyValue = kv
		return cfg
	}
}

// WithVaultDynamoClient sets the DynamoDB client for VaultDynamo.
func WithVaultDynamoClient(client DynamoAPI) VaultOption {
	return func(cfg VaultConfig) VaultConfig {
		cfg.DynamoClient = client
		return cfg
	}
}

// WithVaultDynamoTable overrides the DynamoDB table name.
func WithVaultDynamoTable(table string) VaultOption {
	return func(cfg VaultConfig) VaultConfig {
		cfg.DynamoTable = table
		return cfg
	}
}

// WithVaultDynamoEndpoint points the default DynamoDB client at a local
// endpoint (dynamodb-local or similar).
func WithVaultDynamoEndpoint(region, endpoint string) VaultOption {
	return func(cfg VaultConfig) VaultConfig {
		cfg.DynamoRegion = region
		cfg.DynamoEndpoint = endpoint
		return cfg
	}
}

// errorVault is returned when a driver fails to initialize; it preserves the
// driver identity while surfacing the construction error on every call.
type errorVault struct {
	driver VaultDriver
	err    error
}

func (e *errorVault) Driver() VaultDriver { return e.driver }

func (e *errorVault) Load(context.Context) (string, bool, error) { return "", false, e.err }

func (e *errorVault) Store(context.Context, string) error { return e.err }

func (e *errorVault) Clear(context.Context) error { return e.err }
