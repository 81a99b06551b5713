// Package config contains utilities for loading configs
package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/matt-dz/recipehub/internal/log"
)

const (
	defaultConfigFilePath = "/data/recipehub.yaml"
	appSecretBytes        = 32
	appSecretFilePerms    = 0o600
)

const (
	EnvProd = "PROD"
	EnvDev  = "DEV"
)

const (
	defaultAddr          = ":8080"
	defaultHostOrigin    = "http://localhost:8080"
	defaultSecretPath    = "/data/secret"
	defaultStorageDir    = "/data/kv"
	defaultSQLitePath    = "/data/recipehub.db"
	defaultQuotaBytes    = 5 << 20
	defaultSpoonacular   = "https://api.spoonacular.com"
	defaultAPITimeout    = 15 * time.Second
	defaultAPIRetryMax   = 3
	defaultDraftTTL      = 48 * time.Hour
	defaultPostgresPort  = 5432
	defaultSyncChannel   = "recipehub:changes"
	defaultS3Bucket      = "recipehub"
	defaultRedisKeyspace = "recipehub"
)

// StorageBackend names where collections and drafts are persisted.
type StorageBackend string

const (
	StorageMemory   StorageBackend = "memory"
	StorageFile     StorageBackend = "file"
	StorageSQLite   StorageBackend = "sqlite"
	StoragePostgres StorageBackend = "postgres"
	StorageRedis    StorageBackend = "redis"
	StorageS3       StorageBackend = "s3"
)

func (s StorageBackend) Validate() error {
	switch s {
	case StorageMemory, StorageFile, StorageSQLite, StoragePostgres, StorageRedis, StorageS3:
		return nil
	}
	return fmt.Errorf("unknown storage backend: %q", s)
}

// SyncBackend names how change notifications travel.
type SyncBackend string

const (
	SyncMemory SyncBackend = "memory"
	SyncRedis  SyncBackend = "redis"
)

func (s SyncBackend) Validate() error {
	switch s {
	case SyncMemory, SyncRedis:
		return nil
	}
	return fmt.Errorf("unknown sync backend: %q", s)
}

type LogLevel string

func (l LogLevel) Validate() error {
	_, err := log.ParseLevel(string(l))
	return err
}

type AppSecretValue string

func (a *AppSecretValue) Validate() error {
	if a == nil {
		return errors.New("secret should not be nil")
	}
	if len([]byte(*a)) < appSecretBytes {
		return errors.New("secret should be at least 32 bytes")
	}
	return nil
}

func splitFieldList(param string) []string {
	// "A,B,C" or "A B C"
	param = strings.ReplaceAll(param, " ", ",")
	parts := strings.Split(param, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// allOrNothing implements a cross-field validator for go-playground/validator.
//
// It succeeds only if every field listed in the tag parameter is zero, or
// every one is non-zero. It must be attached to a placeholder field and
// inspects the parent struct. Field names are a comma- or space-separated
// list (e.g. `validate:"allOrNothing=A,B,C"`). Nil pointers and interfaces
// count as zero; non-nil ones are dereferenced first.
//
// A parent that is not a struct, an unknown field name, or an empty list
// fails validation to signal misconfiguration.
func allOrNothing(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	if parent.Kind() == reflect.Pointer {
		if parent.IsNil() {
			return true // nothing to validate
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return false
	}

	names := splitFieldList(fl.Param())
	if len(names) == 0 {
		return false
	}

	hasZero := false
	hasNonZero := false

	for _, name := range names {
		f := parent.FieldByName(name)
		if !f.IsValid() {
			return false // field name typo / not found
		}

		// Treat pointers/interfaces as zero if nil, otherwise unwrap
		for (f.Kind() == reflect.Pointer || f.Kind() == reflect.Interface) && !f.IsNil() {
			f = f.Elem()
		}

		if f.IsZero() {
			hasZero = true
		} else {
			hasNonZero = true
		}

		if hasZero && hasNonZero {
			return false
		}
	}

	return true
}

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("allOrNothing", allOrNothing)
	return validate
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors) //nolint:errorlint
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		if e.Tag() == "allOrNothing" {
			// e.g., "Config.Postgres.Validate" -> "Postgres"
			namespace := e.Namespace()
			parts := strings.Split(namespace, ".")
			var structName string
			//nolint:mnd
			if len(parts) >= 2 {
				structName = parts[len(parts)-2]
			}

			var fields string
			switch structName {
			case "Postgres":
				fields = "Database, User, and Password"
			case "S3":
				fields = "Endpoint, AccessKey, and SecretKey"
			default:
				fields = "all related fields"
			}

			return fmt.Errorf(
				"%s configuration is incomplete: either all fields must be set (%s) or all must be empty",
				structName, fields)
		}
	}

	return err
}

type AppSecret struct {
	Value   *AppSecretValue `yaml:"value" validate:"omitempty,validateFn"`
	Path    string          `yaml:"path" validate:"omitempty,filepath"`
	Version string          `yaml:"version"`
}

type Server struct {
	Addr       string `yaml:"addr" validate:"required,hostname_port"`
	HostOrigin string `yaml:"host_origin" validate:"url"`
}

type Log struct {
	Level LogLevel `yaml:"level" validate:"validateFn"`
	File  string   `yaml:"file" validate:"omitempty,filepath"`
}

type Storage struct {
	Backend    StorageBackend `yaml:"backend" validate:"validateFn"`
	Dir        string         `yaml:"dir"`
	SQLitePath string         `yaml:"sqlite_path"`
	// QuotaBytes caps the bytes stored per profile. Zero disables it.
	QuotaBytes int64 `yaml:"quota_bytes" validate:"gte=0"`
}

type Postgres struct {
	Port     uint16 `yaml:"port"`
	Host     string `yaml:"host" validate:"omitempty,hostname_rfc1123"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=Database User Password"`
}

// URL returns the connection string, or "" when Postgres is not configured.
func (p Postgres) URL() string {
	if p.Database == "" {
		return ""
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   net.JoinHostPort(p.Host, strconv.Itoa(int(p.Port))),
		Path:   "/" + p.Database,
	}
	return u.String()
}

type Redis struct {
	Addr     string `yaml:"addr" validate:"omitempty,hostname_port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
	// Keyspace prefixes every stored key.
	Keyspace string `yaml:"keyspace"`
}

type S3 struct {
	Endpoint  string `yaml:"endpoint" validate:"omitempty,hostname_port|hostname_rfc1123"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=Endpoint AccessKey SecretKey"`
}

type Sync struct {
	Backend SyncBackend `yaml:"backend" validate:"validateFn"`
	Channel string      `yaml:"channel"`
}

type Spoonacular struct {
	APIKey   string        `yaml:"api_key"`
	BaseURL  string        `yaml:"base_url" validate:"url"`
	Timeout  time.Duration `yaml:"timeout" validate:"gt=0"`
	RetryMax int           `yaml:"retry_max" validate:"gte=0"`
}

type Draft struct {
	TTL time.Duration `yaml:"ttl" validate:"gt=0"`
}

type Config struct {
	AppSecret   AppSecret   `yaml:"app_secret"`
	Server      Server      `yaml:"server"`
	Log         Log         `yaml:"log"`
	Storage     Storage     `yaml:"storage"`
	Postgres    Postgres    `yaml:"postgres"`
	Redis       Redis       `yaml:"redis"`
	S3          S3          `yaml:"s3"`
	Sync        Sync        `yaml:"sync"`
	Spoonacular Spoonacular `yaml:"spoonacular"`
	Draft       Draft       `yaml:"draft"`
	Env         string      `yaml:"env" validate:"omitempty,oneof=DEV PROD"`
}

var (
	ErrBackendNotConfigured = errors.New("backend not configured")
)

// checkBackends verifies the selected backends have their settings.
func checkBackends(c Config) error {
	switch c.Storage.Backend {
	case StorageFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("%w: file storage needs a directory", ErrBackendNotConfigured)
		}
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite storage needs a path", ErrBackendNotConfigured)
		}
	case StoragePostgres:
		if c.Postgres.Database == "" {
			return fmt.Errorf("%w: postgres storage needs a database", ErrBackendNotConfigured)
		}
	case StorageRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis storage needs an address", ErrBackendNotConfigured)
		}
	case StorageS3:
		if c.S3.Endpoint == "" {
			return fmt.Errorf("%w: s3 storage needs an endpoint", ErrBackendNotConfigured)
		}
	}
	if c.Sync.Backend == SyncRedis && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis sync needs an address", ErrBackendNotConfigured)
	}
	return nil
}

func validate(config Config) error {
	if err := newValidator().Struct(config); err != nil {
		return formatValidationError(err)
	}
	return checkBackends(config)
}

func newAppSecret() (string, error) {
	token := make([]byte, appSecretBytes)
	if _, err := rand.Reader.Read(token); err != nil {
		return "", fmt.Errorf("creating app secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(token), nil
}

func loadAppSecret(config *Config) error {
	if config.AppSecret.Value != nil {
		return nil
	}

	var secret string
	if f1, err := os.Lstat(config.AppSecret.Path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking secret path: %w", err)
		}

		file, err := os.OpenFile(config.AppSecret.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, appSecretFilePerms)
		if err != nil {
			return fmt.Errorf("creating secret file: %w", err)
		}
		defer func() { _ = file.Close() }()

		secret, err = newAppSecret()
		if err != nil {
			return fmt.Errorf("generating new app secret: %w", err)
		}

		if _, err := file.WriteString(secret); err != nil {
			return fmt.Errorf("writing secret file: %w", err)
		}
	} else {
		if f1.IsDir() {
			return fmt.Errorf("expected file, got directory at %q", config.AppSecret.Path)
		}
		data, err := os.ReadFile(config.AppSecret.Path)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		secret = strings.TrimSpace(string(data))
	}
	val := AppSecretValue(secret)
	config.AppSecret.Value = &val
	return nil
}

func loadWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func setDefaults(c *Config) {
	if c.Env == "" {
		c.Env = EnvDev
	}
	if c.AppSecret.Path == "" {
		c.AppSecret.Path = defaultSecretPath
	}
	if c.AppSecret.Version == "" {
		c.AppSecret.Version = "1"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Server.HostOrigin == "" {
		c.Server.HostOrigin = defaultHostOrigin
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageSQLite
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = defaultStorageDir
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = defaultSQLitePath
	}
	if c.Postgres.Host == "" {
		c.Postgres.Host = "localhost"
	}
	if c.Postgres.Port == 0 {
		c.Postgres.Port = defaultPostgresPort
	}
	if c.Redis.Keyspace == "" {
		c.Redis.Keyspace = defaultRedisKeyspace
	}
	if c.S3.Bucket == "" {
		c.S3.Bucket = defaultS3Bucket
	}
	if c.Sync.Backend == "" {
		c.Sync.Backend = SyncMemory
	}
	if c.Sync.Channel == "" {
		c.Sync.Channel = defaultSyncChannel
	}
	if c.Spoonacular.BaseURL == "" {
		c.Spoonacular.BaseURL = defaultSpoonacular
	}
	if c.Spoonacular.Timeout == 0 {
		c.Spoonacular.Timeout = defaultAPITimeout
	}
	if c.Draft.TTL == 0 {
		c.Draft.TTL = defaultDraftTTL
	}
}

func parseEnvUint16(key string, dst *uint16) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return fmt.Errorf("invalid %s (%q): %w", key, raw, err)
	}
	*dst = uint16(v)
	return nil
}

func parseEnvInt(key string, dst *int) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s (%q): %w", key, raw, err)
	}
	*dst = v
	return nil
}

func parseEnvInt64(key string, dst *int64) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s (%q): %w", key, raw, err)
	}
	*dst = v
	return nil
}

func parseEnvBool(key string, dst *bool) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("invalid %s (%q): %w", key, raw, err)
	}
	*dst = v
	return nil
}

func parseEnvDuration(key string, dst *time.Duration) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid %s (%q): %w", key, raw, err)
	}
	*dst = v
	return nil
}

func loadConfigFromEnv() (Config, error) {
	conf := Config{
		Env: os.Getenv("ENV"),
		AppSecret: AppSecret{
			Path:    os.Getenv("APP_SECRET_PATH"),
			Version: os.Getenv("APP_SECRET_VERSION"),
		},
		Server: Server{
			Addr:       os.Getenv("ADDR"),
			HostOrigin: os.Getenv("HOST_ORIGIN"),
		},
		Log: Log{
			Level: LogLevel(os.Getenv("LOG_LEVEL")),
			File:  os.Getenv("LOG_FILE"),
		},
		Storage: Storage{
			Backend:    StorageBackend(os.Getenv("STORAGE_BACKEND")),
			Dir:        os.Getenv("STORAGE_DIR"),
			SQLitePath: os.Getenv("SQLITE_PATH"),
			QuotaBytes: defaultQuotaBytes,
		},
		Postgres: Postgres{
			Host:     os.Getenv("DATABASE_HOST"),
			Database: os.Getenv("DATABASE"),
			User:     os.Getenv("DATABASE_USER"),
			Password: os.Getenv("DATABASE_PASSWORD"),
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			Keyspace: os.Getenv("REDIS_KEYSPACE"),
		},
		S3: S3{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Bucket:    os.Getenv("S3_BUCKET"),
		},
		Sync: Sync{
			Backend: SyncBackend(os.Getenv("SYNC_BACKEND")),
			Channel: os.Getenv("SYNC_CHANNEL"),
		},
		Spoonacular: Spoonacular{
			APIKey:   os.Getenv("SPOONACULAR_API_KEY"),
			BaseURL:  os.Getenv("SPOONACULAR_BASE_URL"),
			RetryMax: defaultAPIRetryMax,
		},
	}

	if secret := loadWithDefault("APP_SECRET", ""); secret != "" {
		value := AppSecretValue(secret)
		conf.AppSecret.Value = &value
	}

	for _, parse := range []func() error{
		func() error { return parseEnvUint16("DATABASE_PORT", &conf.Postgres.Port) },
		func() error { return parseEnvInt("REDIS_DB", &conf.Redis.DB) },
		func() error { return parseEnvInt64("STORAGE_QUOTA_BYTES", &conf.Storage.QuotaBytes) },
		func() error { return parseEnvBool("S3_USE_SSL", &conf.S3.UseSSL) },
		func() error { return parseEnvDuration("SPOONACULAR_TIMEOUT", &conf.Spoonacular.Timeout) },
		func() error { return parseEnvInt("SPOONACULAR_RETRY_MAX", &conf.Spoonacular.RetryMax) },
		func() error { return parseEnvDuration("DRAFT_TTL", &conf.Draft.TTL) },
	} {
		if err := parse(); err != nil {
			return conf, err
		}
	}

	setDefaults(&conf)
	if err := validate(conf); err != nil {
		return conf, err
	}

	if err := loadAppSecret(&conf); err != nil {
		return conf, fmt.Errorf("loading app secret: %w", err)
	}

	return conf, nil
}

func loadConfigFromFile(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	config := Config{
		Storage:     Storage{QuotaBytes: defaultQuotaBytes},
		Spoonacular: Spoonacular{RetryMax: defaultAPIRetryMax},
	}
	if err := yaml.Unmarshal(contents, &config); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	setDefaults(&config)
	if err := validate(config); err != nil {
		return Config{}, err
	}

	if err := loadAppSecret(&config); err != nil {
		return Config{}, fmt.Errorf("loading app secret: %w", err)
	}

	return config, nil
}

func configFileExists(path string) bool {
	f, err := os.Lstat(path)
	if err != nil {
		return false
	}

	return !f.IsDir()
}

// LoadConfig reads the YAML file at CONFIG_PATH when present, otherwise
// the environment. A .env file in the working directory is loaded first
// without overriding variables already set.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	path := loadWithDefault("CONFIG_PATH", defaultConfigFilePath)
	if configFileExists(path) {
		return loadConfigFromFile(path)
	}

	return loadConfigFromEnv()
}
