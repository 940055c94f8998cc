// internal/app/features/errors/errorlog.go
package errors

import (
	"fmt"
	"html"
	"net/http"

	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrorLogger logs handler failures and renders a user-facing error page
// in one call. Handlers use it for the unhappy paths so the log message,
// status code, and what the user sees stay together.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger bound to the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogBadRequest logs at warn level and renders a 400 error page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.logEvent(zap.WarnLevel, r, logMsg, err)
	renderErrorPage(w, r, http.StatusBadRequest, "Bad request", userMsg, backURL)
}

// LogForbidden logs at warn level and renders a 403 error page.
func (e *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.logEvent(zap.WarnLevel, r, logMsg, err)
	renderErrorPage(w, r, http.StatusForbidden, "Access denied", userMsg, backURL)
}

// LogServerError logs at error level and renders a 500 error page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.logEvent(zap.ErrorLevel, r, logMsg, err)
	renderErrorPage(w, r, http.StatusInternalServerError, "Something went wrong", userMsg, backURL)
}

// HTMXLogBadRequest logs at warn level and writes a 400 HTMX fragment.
func (e *ErrorLogger) HTMXLogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.logEvent(zap.WarnLevel, r, logMsg, err)
	writeHTMXError(w, http.StatusBadRequest, userMsg, backURL)
}

// HTMXLogForbidden logs at warn level and writes a 403 HTMX fragment.
func (e *ErrorLogger) HTMXLogForbidden(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.logEvent(zap.WarnLevel, r, logMsg, err)
	writeHTMXError(w, http.StatusForbidden, userMsg, backURL)
}

// HTMXLogServerError logs at error level and writes a 500 HTMX fragment.
func (e *ErrorLogger) HTMXLogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.logEvent(zap.ErrorLevel, r, logMsg, err)
	writeHTMXError(w, http.StatusInternalServerError, userMsg, backURL)
}

func (e *ErrorLogger) logEvent(level zapcore.Level, r *http.Request, logMsg string, err error) {
	if e == nil || e.log == nil {
		return
	}
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if ce := e.log.Check(level, logMsg); ce != nil {
		ce.Write(fields...)
	}
}

func renderErrorPage(w http.ResponseWriter, r *http.Request, status int, title, userMsg, backURL string) {
	w.WriteHeader(status)

	data := pageData{
		Title:   title,
		Message: userMsg,
		BackURL: backURL,
	}
	if u, ok := auth.CurrentUser(r); ok {
		data.IsLoggedIn = true
		data.IsAdmin = u.IsAdmin
		data.UserName = u.Name
	}

	templates.Render(w, r, "error_page", data)
}

// writeHTMXError emits a small fragment suitable for an hx-target swap.
func writeHTMXError(w http.ResponseWriter, status int, userMsg, backURL string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<div class="error-banner" role="alert">%s <a href="%s">Go back</a></div>`,
		html.EscapeString(userMsg), html.EscapeString(backURL))
}
