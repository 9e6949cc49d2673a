// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the import assistant.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: IMPORTASSIST_MONGO_URI, IMPORTASSIST_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "import_assist", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "importassist-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Retention
	{Name: "dataset_ttl", Default: "24h", Desc: "How long uploaded datasets are retained (e.g., 24h)"},
	{Name: "review_ttl", Default: "1h", Desc: "How long processed review snapshots are retained (e.g., 1h)"},

	// In-memory wizard registry
	{Name: "wizard_sweep_interval", Default: "5m", Desc: "How often idle wizard sessions are swept"},
	{Name: "wizard_max_idle", Default: "1h", Desc: "Idle time before a wizard session is dropped"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, IMPORTASSIST_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "IMPORTASSIST", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),

		DatasetTTL: appValues.Duration("dataset_ttl", 24*time.Hour),
		ReviewTTL:  appValues.Duration("review_ttl", time.Hour),

		WizardSweepInterval: appValues.Duration("wizard_sweep_interval", 5*time.Minute),
		WizardMaxIdle:       appValues.Duration("wizard_max_idle", time.Hour),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI format is checked early, before attempting to connect,
// and the retention windows must be positive or TTL indexes would reap
// documents immediately.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.DatasetTTL <= 0 {
		return fmt.Errorf("dataset_ttl must be positive, got %s", appCfg.DatasetTTL)
	}
	if appCfg.ReviewTTL <= 0 {
		return fmt.Errorf("review_ttl must be positive, got %s", appCfg.ReviewTTL)
	}
	if appCfg.WizardSweepInterval <= 0 || appCfg.WizardMaxIdle <= 0 {
		return fmt.Errorf("wizard sweep interval and max idle must be positive")
	}

	return nil
}
