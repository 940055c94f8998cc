// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	dashboardfeature "github.com/church611/shepherdview/internal/app/features/dashboard"
	errorsfeature "github.com/church611/shepherdview/internal/app/features/errors"
	evaluationfeature "github.com/church611/shepherdview/internal/app/features/evaluation"
	groupsfeature "github.com/church611/shepherdview/internal/app/features/groups"
	healthfeature "github.com/church611/shepherdview/internal/app/features/health"
	homefeature "github.com/church611/shepherdview/internal/app/features/home"
	leadersfeature "github.com/church611/shepherdview/internal/app/features/leaders"
	loginfeature "github.com/church611/shepherdview/internal/app/features/login"
	logoutfeature "github.com/church611/shepherdview/internal/app/features/logout"
	membersfeature "github.com/church611/shepherdview/internal/app/features/members"
	profilefeature "github.com/church611/shepherdview/internal/app/features/profile"
	reportingfeature "github.com/church611/shepherdview/internal/app/features/reporting"
	reportsfeature "github.com/church611/shepherdview/internal/app/features/reports"
	tribesfeature "github.com/church611/shepherdview/internal/app/features/tribes"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/system/auditlog"
	"github.com/church611/shepherdview/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, the store, and any Startup hooks
// have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: the in-memory store bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// ShepherdView initializes the template engine, applies session middleware,
// and mounts feature routers for all application areas: home, login,
// dashboard, leaders, groups, reports, members, reporting status, tribe
// statistics, and the AGM evaluation.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh leader data on
	// each request. This ensures role changes, admin promotion, and name
	// edits take effect immediately.
	sessionMgr.SetUserFetcher(leaderstore.NewFetcher(deps.Store))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger and audit logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)
	audit := auditlog.New(logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Store, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.Store, sessionMgr, errLog, audit, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, audit, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Dashboard with weekly attendance rollups and the generation histogram
	dashboardHandler := dashboardfeature.NewHandler(deps.Store, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// Own-account maintenance
	profileHandler := profilefeature.NewHandler(deps.Store, sessionMgr, errLog, audit, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	// Leader network management (admin) and lineage views
	leadersHandler := leadersfeature.NewHandler(deps.Store, errLog, audit, appCfg.WhatsAppCountryCode, appCfg.BaseURL, logger)
	r.Mount("/leaders", leadersfeature.Routes(leadersHandler, sessionMgr))

	// Cell group management for the signed-in leader
	groupsHandler := groupsfeature.NewHandler(deps.Store, errLog, audit, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler, sessionMgr))

	// Weekly gathering reports, nested under a group. Mounted as its own
	// subtree so the reports feature owns everything below
	// /groups/{id}/reports; chi resolves this alongside the /groups mount.
	reportsHandler := reportsfeature.NewHandler(deps.Store, errLog, audit, logger)
	r.Mount("/groups/{id}/reports", reportsfeature.Routes(reportsHandler, sessionMgr))

	// Member directory (admin) and the public self-registration form
	membersHandler := membersfeature.NewHandler(deps.Store, errLog, audit, logger)
	r.Mount("/members", membersfeature.Routes(membersHandler, sessionMgr))
	r.Mount("/register", membersfeature.PublicRoutes(membersHandler))

	// Reporting delinquency status with WhatsApp reminders and follow-ups
	reportingHandler := reportingfeature.NewHandler(deps.Store, errLog, audit, appCfg.WhatsAppCountryCode, appCfg.BaseURL, logger)
	r.Mount("/reporting", reportingfeature.Routes(reportingHandler, sessionMgr))

	// Tribe statistics (admin)
	tribesHandler := tribesfeature.NewHandler(deps.Store, errLog, logger)
	r.Mount("/tribes", tribesfeature.Routes(tribesHandler, sessionMgr))

	// AGM disciple evaluation (admin)
	evaluationHandler := evaluationfeature.NewHandler(deps.Store, errLog, logger)
	r.Mount("/evaluation", evaluationfeature.Routes(evaluationHandler, sessionMgr))

	return r, nil
}
