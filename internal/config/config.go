package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	SlowQuery       time.Duration `mapstructure:"slow_query"`
}

// ChainConfig holds the node endpoints
type ChainConfig struct {
	// RPCWSSURL is the tendermint websocket endpoint used for subscriptions
	RPCWSSURL string `mapstructure:"rpc_wss_url"`
	// RESTURL is the cosmos REST gateway used for contract queries, blocks and txs
	RESTURL              string        `mapstructure:"rest_url"`
	QueryTimeout         time.Duration `mapstructure:"query_timeout"`
	RequestsPerSecond    float64       `mapstructure:"requests_per_second"`
	Burst                int           `mapstructure:"burst"`
	BlockHeadTTL         time.Duration `mapstructure:"block_head_ttl"`
	BlockHeadStaleWindow time.Duration `mapstructure:"block_head_stale_window"`
	BlockTimeCacheSize   int           `mapstructure:"block_time_cache_size"`
}

// ContractsConfig holds the marketplace contract addresses
type ContractsConfig struct {
	Mrkt   string `mapstructure:"mrkt"`
	Pallet string `mapstructure:"pallet"`
}

// MetadataConfig holds off-chain metadata fetching configuration
type MetadataConfig struct {
	PalletAPIURL      string        `mapstructure:"pallet_api_url"`
	IPFSGateways      []string      `mapstructure:"ipfs_gateways"`
	ArweaveGateways   []string      `mapstructure:"arweave_gateways"`
	MaxAttempts       uint64        `mapstructure:"max_attempts"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// StreamConfig holds the websocket supervisor configuration
type StreamConfig struct {
	Families       []string      `mapstructure:"families"`
	ReconnectDelay time.Duration `mapstructure:"reconnect_delay"`
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
}

// NATSConfig holds NATS JetStream configuration for handled-event notifications.
// An empty URL disables publishing.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// OpsConfig holds the health and metrics server configuration
type OpsConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	PoolSize  int `mapstructure:"pool_size"`
	QueueSize int `mapstructure:"queue_size"`
}

// BlockSweeperConfig holds the reconciliation sweep configuration
type BlockSweeperConfig struct {
	StartHeight    uint64        `mapstructure:"start_height"`
	LookbackBlocks uint64        `mapstructure:"lookback_blocks"`
	BatchBlocks    uint64        `mapstructure:"batch_blocks"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	GapBatchSize   int           `mapstructure:"gap_batch_size"`
	Worker         WorkerConfig  `mapstructure:"worker"`
}

// StreamServiceConfig holds configuration for the stream binary
type StreamServiceConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Chain      ChainConfig     `mapstructure:"chain"`
	Contracts  ContractsConfig `mapstructure:"contracts"`
	Metadata   MetadataConfig  `mapstructure:"metadata"`
	Stream     StreamConfig    `mapstructure:"stream"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Ops        OpsConfig       `mapstructure:"ops"`
}

// SweeperConfig holds configuration for the sweeper binary
type SweeperConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig     `mapstructure:"database"`
	Chain      ChainConfig        `mapstructure:"chain"`
	Contracts  ContractsConfig    `mapstructure:"contracts"`
	Metadata   MetadataConfig     `mapstructure:"metadata"`
	NATS       NATSConfig         `mapstructure:"nats"`
	Ops        OpsConfig          `mapstructure:"ops"`
	Sweeper    BlockSweeperConfig `mapstructure:"sweeper"`
}

// LoadStreamConfig loads configuration for the stream binary
func LoadStreamConfig(configFile string, envPath string) (*StreamServiceConfig, error) {
	v := configureViper("stream", configFile, envPath)
	setSharedDefaults(v)
	v.SetDefault("stream.families", []string{
		string(domain.ContextCwr721),
		string(domain.ContextMrkt),
		string(domain.ContextPallet),
	})
	v.SetDefault("stream.reconnect_delay", "0s")
	v.SetDefault("stream.ping_interval", "20s")
	v.SetDefault("stream.read_timeout", "90s")
	v.SetDefault("stream.write_timeout", "10s")
	v.SetDefault("ops.listen_addr", ":9090")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg StreamServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateShared(cfg.Database, cfg.Chain, cfg.Contracts); err != nil {
		return nil, err
	}
	if cfg.Chain.RPCWSSURL == "" {
		return nil, errors.New("chain.rpc_wss_url is required")
	}
	for _, family := range cfg.Stream.Families {
		if !domain.StreamContext(family).Valid() {
			return nil, fmt.Errorf("unknown stream family: %s", family)
		}
	}

	return &cfg, nil
}

// LoadSweeperConfig loads configuration for the sweeper binary
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)
	setSharedDefaults(v)
	v.SetDefault("sweeper.lookback_blocks", 20)
	v.SetDefault("sweeper.batch_blocks", 50)
	v.SetDefault("sweeper.poll_interval", "5s")
	v.SetDefault("sweeper.gap_batch_size", 10)
	v.SetDefault("sweeper.worker.pool_size", 8)
	v.SetDefault("sweeper.worker.queue_size", 100)
	v.SetDefault("ops.listen_addr", ":9091")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateShared(cfg.Database, cfg.Chain, cfg.Contracts); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setSharedDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("database.slow_query", "500ms")
	v.SetDefault("chain.query_timeout", "15s")
	v.SetDefault("chain.requests_per_second", 20)
	v.SetDefault("chain.burst", 20)
	v.SetDefault("chain.block_head_ttl", "2s")
	v.SetDefault("chain.block_head_stale_window", "1m")
	v.SetDefault("chain.block_time_cache_size", 10000)
	v.SetDefault("metadata.ipfs_gateways", []string{"https://ipfs.io", "https://cloudflare-ipfs.com"})
	v.SetDefault("metadata.arweave_gateways", []string{"https://arweave.net"})
	v.SetDefault("metadata.max_attempts", 6)
	v.SetDefault("metadata.retry_delay", "200ms")
	v.SetDefault("metadata.timeout", "12s")
	v.SetDefault("metadata.requests_per_second", 10)
	v.SetDefault("metadata.burst", 10)
	v.SetDefault("nats.stream_name", "MARKETPLACE")
	v.SetDefault("nats.subject_prefix", "marketplace")
	v.SetDefault("nats.max_reconnects", -1)
	v.SetDefault("nats.reconnect_wait", "2s")
}

// readConfig reads the config file; a missing file is fine when everything comes from env
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

func validateShared(db DatabaseConfig, chain ChainConfig, contracts ContractsConfig) error {
	if db.Host == "" {
		return errors.New("database.host is required")
	}
	if db.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if chain.RESTURL == "" {
		return errors.New("chain.rest_url is required")
	}
	if contracts.Mrkt == "" {
		return errors.New("contracts.mrkt is required")
	}
	if contracts.Pallet == "" {
		return errors.New("contracts.pallet is required")
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("SEI_INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars binds every key so env-only deployments unmarshal into the structs
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		"database.slow_query",
		// Chain
		"chain.rpc_wss_url",
		"chain.rest_url",
		"chain.query_timeout",
		"chain.requests_per_second",
		"chain.burst",
		"chain.block_head_ttl",
		"chain.block_head_stale_window",
		"chain.block_time_cache_size",
		// Contracts
		"contracts.mrkt",
		"contracts.pallet",
		// Metadata
		"metadata.pallet_api_url",
		"metadata.ipfs_gateways",
		"metadata.arweave_gateways",
		"metadata.max_attempts",
		"metadata.retry_delay",
		"metadata.timeout",
		"metadata.requests_per_second",
		"metadata.burst",
		// Stream
		"stream.families",
		"stream.reconnect_delay",
		"stream.ping_interval",
		"stream.read_timeout",
		"stream.write_timeout",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Ops
		"ops.listen_addr",
		// Sweeper
		"sweeper.start_height",
		"sweeper.lookback_blocks",
		"sweeper.batch_blocks",
		"sweeper.poll_interval",
		"sweeper.gap_batch_size",
		"sweeper.worker.pool_size",
		"sweeper.worker.queue_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads .env, .env.local and .env.<service>.local, later files overriding earlier ones
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile))
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// StreamFamilies returns the configured families as stream contexts
func (c *StreamConfig) StreamFamilies() []domain.StreamContext {
	families := make([]domain.StreamContext, 0, len(c.Families))
	for _, f := range c.Families {
		families = append(families, domain.StreamContext(f))
	}
	return families
}
