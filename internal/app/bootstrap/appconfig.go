// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig is where you put everything specific to YOUR application.
type AppConfig struct {
	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: shepherdview-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Demo dataset seeding. On by default in dev so the app is usable
	// without an import; turn off wherever real data is loaded.
	SeedDemoData bool

	// WhatsApp reminder links need the national phone prefix and the
	// app's public URL appended to each rendered message.
	WhatsAppCountryCode string // e.g. "852" for Hong Kong numbers
	BaseURL             string // e.g. "https://shepherd.church611.org"

	// Audit logging modes: "log" or "off"
	AuditLogAuth  string // sign-in, sign-out, password changes
	AuditLogAdmin string // leader/group/report/member mutations
}
