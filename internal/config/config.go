package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
)

// Config is loaded from an optional TOML file, then overridden by LFSYNC_*
// environment variables.
type Config struct {
	SourceRegion string `toml:"source_region"` // LFSYNC_SOURCE_REGION (default "us-east-1")
	TargetRegion string `toml:"target_region"` // LFSYNC_TARGET_REGION (required)
	DatabaseURL  string `toml:"database_url"`  // LFSYNC_DATABASE_URL (required by ingest, replay, serve)

	// Databases is the allow-list of catalog databases. "ALL_DATABASE"
	// selects every database.
	Databases     []string          `toml:"databases"`      // LFSYNC_DATABASES (comma separated)
	BucketMapping map[string]string `toml:"bucket_mapping"` // LFSYNC_BUCKET_MAPPING ("src=dst,src2=dst2")
	LookbackHours int               `toml:"lookback_hours"` // LFSYNC_LOOKBACK_HOURS (default 24)

	SnapshotLocation    string `toml:"snapshot_location"`    // LFSYNC_SNAPSHOT_LOCATION (s3://bucket/key or file path)
	PermissionsLocation string `toml:"permissions_location"` // LFSYNC_PERMISSIONS_LOCATION (prefix)
	S3Endpoint          string `toml:"s3_endpoint"`          // LFSYNC_S3_ENDPOINT (custom endpoint for MinIO)

	NATSURL   string `toml:"nats_url"`   // LFSYNC_NATS_URL (optional, empty = no events)
	GRPCAddr  string `toml:"grpc_addr"`  // LFSYNC_GRPC_ADDR (default ":9090")
	AuthToken string `toml:"auth_token"` // LFSYNC_AUTH_TOKEN (optional, empty = auth disabled)
	LogLevel  string `toml:"log_level"`  // LFSYNC_LOG_LEVEL (default "info")

	// Schedule settings for serve. Zero disables the unit.
	IngestInterval   time.Duration `toml:"ingest_interval"`   // LFSYNC_INGEST_INTERVAL (default 5m)
	ReplayInterval   time.Duration `toml:"replay_interval"`   // LFSYNC_REPLAY_INTERVAL (default 5m)
	SnapshotInterval time.Duration `toml:"snapshot_interval"` // LFSYNC_SNAPSHOT_INTERVAL (default 0)
	SnapshotSchedule string        `toml:"snapshot_schedule"` // LFSYNC_SNAPSHOT_SCHEDULE (cron expression, replaces the interval)

	// TargetRateLimit caps calls per second against the target catalog.
	// Zero means unlimited.
	TargetRateLimit float64 `toml:"target_rate_limit"` // LFSYNC_TARGET_RATE_LIMIT

	SyncCatalog         bool `toml:"sync_catalog"`          // LFSYNC_SYNC_CATALOG (default true)
	SyncPermissions     bool `toml:"sync_permissions"`      // LFSYNC_SYNC_PERMISSIONS
	UpdateTableLocation bool `toml:"update_table_location"` // LFSYNC_UPDATE_TABLE_LOCATION
	IncludePartitions   bool `toml:"include_partitions"`    // LFSYNC_INCLUDE_PARTITIONS
	DeleteTargetObjects bool `toml:"delete_target_objects"` // LFSYNC_DELETE_TARGET_OBJECTS
}

// Default returns the configuration used when neither a file nor the
// environment sets a value.
func Default() *Config {
	return &Config{
		SourceRegion:     "us-east-1",
		Databases:        []string{catalog.AllDatabases},
		LookbackHours:    24,
		GRPCAddr:         ":9090",
		LogLevel:         "info",
		IngestInterval:   5 * time.Minute,
		ReplayInterval:   5 * time.Minute,
		SyncCatalog:      true,
		BucketMapping:    map[string]string{},
	}
}

// Load reads the TOML file at path (LFSYNC_CONFIG when path is empty; no file
// when both are empty), applies environment overrides and validates the
// result.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		path = os.Getenv("LFSYNC_CONFIG")
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	c.SourceRegion = envOrDefault("LFSYNC_SOURCE_REGION", c.SourceRegion)
	c.TargetRegion = envOrDefault("LFSYNC_TARGET_REGION", c.TargetRegion)
	c.DatabaseURL = envOrDefault("LFSYNC_DATABASE_URL", c.DatabaseURL)
	c.SnapshotLocation = envOrDefault("LFSYNC_SNAPSHOT_LOCATION", c.SnapshotLocation)
	c.PermissionsLocation = envOrDefault("LFSYNC_PERMISSIONS_LOCATION", c.PermissionsLocation)
	c.S3Endpoint = envOrDefault("LFSYNC_S3_ENDPOINT", c.S3Endpoint)
	c.NATSURL = envOrDefault("LFSYNC_NATS_URL", c.NATSURL)
	c.GRPCAddr = envOrDefault("LFSYNC_GRPC_ADDR", c.GRPCAddr)
	c.AuthToken = envOrDefault("LFSYNC_AUTH_TOKEN", c.AuthToken)
	c.LogLevel = envOrDefault("LFSYNC_LOG_LEVEL", c.LogLevel)
	c.SnapshotSchedule = envOrDefault("LFSYNC_SNAPSHOT_SCHEDULE", c.SnapshotSchedule)

	if v := os.Getenv("LFSYNC_DATABASES"); v != "" {
		c.Databases = splitList(v)
	}
	if v := os.Getenv("LFSYNC_BUCKET_MAPPING"); v != "" {
		m, err := parseMapping(v)
		if err != nil {
			return fmt.Errorf("LFSYNC_BUCKET_MAPPING: %w", err)
		}
		c.BucketMapping = m
	}
	if v := os.Getenv("LFSYNC_LOOKBACK_HOURS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LFSYNC_LOOKBACK_HOURS: %w", err)
		}
		c.LookbackHours = n
	}
	if v := os.Getenv("LFSYNC_TARGET_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("LFSYNC_TARGET_RATE_LIMIT: %w", err)
		}
		c.TargetRateLimit = f
	}

	for key, dst := range map[string]*time.Duration{
		"LFSYNC_INGEST_INTERVAL":   &c.IngestInterval,
		"LFSYNC_REPLAY_INTERVAL":   &c.ReplayInterval,
		"LFSYNC_SNAPSHOT_INTERVAL": &c.SnapshotInterval,
	} {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}

	for key, dst := range map[string]*bool{
		"LFSYNC_SYNC_CATALOG":          &c.SyncCatalog,
		"LFSYNC_SYNC_PERMISSIONS":      &c.SyncPermissions,
		"LFSYNC_UPDATE_TABLE_LOCATION": &c.UpdateTableLocation,
		"LFSYNC_INCLUDE_PARTITIONS":    &c.IncludePartitions,
		"LFSYNC_DELETE_TARGET_OBJECTS": &c.DeleteTargetObjects,
	} {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}
	return nil
}

// Validate checks the settings every command relies on. Settings needed by a
// single command (the database URL, the snapshot location) are checked with
// the Require* helpers.
func (c *Config) Validate() error {
	var errs []error
	if c.SourceRegion == "" {
		errs = append(errs, errors.New("source_region is required"))
	}
	if c.TargetRegion == "" {
		errs = append(errs, errors.New("target_region is required"))
	}
	if len(c.Databases) == 0 {
		errs = append(errs, errors.New("databases must name at least one database or ALL_DATABASE"))
	}
	if c.LookbackHours <= 0 {
		errs = append(errs, fmt.Errorf("lookback_hours must be positive, got %d", c.LookbackHours))
	}
	if c.IngestInterval < 0 || c.ReplayInterval < 0 || c.SnapshotInterval < 0 {
		errs = append(errs, errors.New("intervals must not be negative"))
	}
	if c.SnapshotSchedule != "" {
		if c.SnapshotInterval > 0 {
			errs = append(errs, errors.New("set snapshot_interval or snapshot_schedule, not both"))
		}
		if _, err := cron.ParseStandard(c.SnapshotSchedule); err != nil {
			errs = append(errs, fmt.Errorf("snapshot_schedule %q: %w", c.SnapshotSchedule, err))
		}
	}
	if c.TargetRateLimit < 0 {
		errs = append(errs, fmt.Errorf("target_rate_limit must not be negative, got %g", c.TargetRateLimit))
	}
	for src, dst := range c.BucketMapping {
		if src == "" || dst == "" {
			errs = append(errs, fmt.Errorf("bucket_mapping entry %q = %q: bucket names must not be empty", src, dst))
		}
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// RequireDatabase returns an error when no event store is configured.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return errors.New("LFSYNC_DATABASE_URL (database_url) is required")
	}
	return nil
}

// RequireSnapshot returns an error when no snapshot location is configured.
func (c *Config) RequireSnapshot() error {
	if c.SnapshotLocation == "" {
		return errors.New("LFSYNC_SNAPSHOT_LOCATION (snapshot_location) is required")
	}
	return nil
}

// Lookback is the ingest window.
func (c *Config) Lookback() time.Duration {
	return time.Duration(c.LookbackHours) * time.Hour
}

// Buckets returns the bucket mapping as a catalog remapper.
func (c *Config) Buckets() catalog.BucketMapping {
	return catalog.BucketMapping(c.BucketMapping)
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseMapping parses "src=dst,src2=dst2".
func parseMapping(s string) (map[string]string, error) {
	m := make(map[string]string)
	for _, pair := range splitList(s) {
		src, dst, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("entry %q: want src=dst", pair)
		}
		m[strings.TrimSpace(src)] = strings.TrimSpace(dst)
	}
	return m, nil
}
