// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging, CORS); AppConfig is
// everything specific to the import assistant.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for wizard sessions
	SessionDomain string // Cookie domain (blank means current host)

	// Retention for stored data
	DatasetTTL time.Duration // How long an uploaded dataset survives without Home/re-upload
	ReviewTTL  time.Duration // How long a processed review snapshot stays downloadable

	// In-memory wizard registry expiry
	WizardSweepInterval time.Duration // How often idle sessions are swept
	WizardMaxIdle       time.Duration // Idle time before a wizard session is dropped
}
