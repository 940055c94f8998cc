// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for ShepherdView.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: session_name, base_url, etc.
//   - Environment variables: SHEPHERDVIEW_SESSION_NAME, SHEPHERDVIEW_BASE_URL, etc.
//   - Command-line flags: --session_name, --base_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "shepherdview-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Demo data
	{Name: "seed_demo_data", Default: true, Desc: "Load the demo leader network at startup"},

	// WhatsApp reminder links
	{Name: "whatsapp_country_code", Default: "852", Desc: "Country code prefixed to leader phone numbers in wa.me links"},

	// Base URL appended to reminder messages
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Public base URL of this app"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "log", Desc: "Auth event logging: 'log' or 'off'"},
	{Name: "audit_log_admin", Default: "log", Desc: "Admin event logging: 'log' or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, SHEPHERDVIEW_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SHEPHERDVIEW", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		SeedDemoData: appValues.Bool("seed_demo_data"),

		WhatsAppCountryCode: appValues.String("whatsapp_country_code"),
		BaseURL:             appValues.String("base_url"),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if coreCfg.Env == "prod" && appCfg.SessionKey == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("session_key must be set in production")
	}

	for _, mode := range []struct{ name, value string }{
		{"audit_log_auth", appCfg.AuditLogAuth},
		{"audit_log_admin", appCfg.AuditLogAdmin},
	} {
		if mode.value != "log" && mode.value != "off" {
			return fmt.Errorf("%s must be 'log' or 'off', got %q", mode.name, mode.value)
		}
	}

	if appCfg.WhatsAppCountryCode == "" {
		logger.Warn("whatsapp_country_code is empty; reminder links will assume numbers carry their own prefix")
	}

	return nil
}
