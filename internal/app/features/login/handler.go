// internal/app/features/login/handler.go
package login

// Terminology: Leader Identifiers
//   - LeaderID / leaderID: The UUID that uniquely identifies a leader record
//   - LoginID / loginID: The email address or phone number the leader types to sign in

import (
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/store/memdb"
	"github.com/church611/shepherdview/internal/app/system/auditlog"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/app/system/normalize"
	"github.com/church611/shepherdview/internal/app/system/ratelimit"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
	Leaders    *leaderstore.Store
	Limiter    *ratelimit.SignInLimiter
}

func NewHandler(db *memdb.DB, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		AuditLog:   audit,
		Leaders:    leaderstore.New(db),
		Limiter:    ratelimit.NewSignInLimiter(),
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	formutil.Base
	LoginID   string
	Remember  bool
	ReturnURL string
}

type forgotFormData struct {
	formutil.Base
	LoginID string
}

type verifyFormData struct {
	formutil.Base
	LoginID string
}

type resetFormData struct {
	formutil.Base
	LoginID string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	data := loginFormData{ReturnURL: query.Get(r, "return")}
	formutil.SetBase(&data.Base, r, "Sign in", "/")

	templates.Render(w, r, "login", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	loginID := strings.TrimSpace(r.FormValue("login_id"))
	password := r.FormValue("password")
	remember := r.FormValue("remember") != ""
	ret := strings.TrimSpace(r.FormValue("return"))

	if loginID == "" {
		h.renderLoginWithError(w, r, "Please enter your email or phone number.", loginID, remember, ret)
		return
	}

	if ok, msg := h.Limiter.Check(r, loginID); !ok {
		h.AuditLog.LoginRateLimited(r, loginID)
		h.renderLoginWithError(w, r, msg, loginID, remember, ret)
		return
	}

	leader, err := h.Leaders.GetByLogin(loginID)
	switch {
	case errors.Is(err, leaderstore.ErrNotFound):
		h.AuditLog.LoginFailedNotFound(r, loginID)
		h.renderLoginWithError(w, r, invalidCredentialsMsg(loginID), loginID, remember, ret)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "leader lookup failed", err, "A server error occurred.", "/login")
		return
	}

	// Disabled leaders cannot sign in.
	if leader.Status == models.StatusDisabled {
		h.AuditLog.LoginFailedDisabled(r, leader.ID, loginID)
		h.renderLoginWithError(w, r,
			"Your account is currently disabled. Please contact an administrator.",
			loginID, remember, ret)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(leader.PasswordHash), []byte(password)) != nil {
		h.AuditLog.LoginFailedWrongPassword(r, leader.ID, loginID)
		h.renderLoginWithError(w, r, invalidCredentialsMsg(loginID), loginID, remember, ret)
		return
	}

	user := &auth.SessionUser{
		ID:      leader.ID,
		Name:    leader.DisplayName(),
		Email:   leader.Email,
		IsAdmin: leader.IsAdmin,
	}
	if err := h.SessionMgr.SignIn(w, r, user, remember); err != nil {
		h.ErrLog.LogServerError(w, r, "session sign-in failed", err, "A server error occurred.", "/login")
		return
	}

	h.AuditLog.LoginSuccess(r, leader.ID, loginID)
	h.Limiter.ResetIdentity(loginID)

	dest := urlutil.SafeReturn(ret, "", "")
	if dest == "" {
		dest = "/dashboard"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// invalidCredentialsMsg mirrors the sign-in form's two identifier modes.
func invalidCredentialsMsg(loginID string) string {
	if strings.Contains(loginID, "@") {
		return "Invalid email or password."
	}
	return "Invalid phone number or password."
}

func (h *Handler) renderLoginWithError(w http.ResponseWriter, r *http.Request, msg, loginID string, remember bool, ret string) {
	data := loginFormData{LoginID: loginID, Remember: remember, ReturnURL: ret}
	formutil.SetBase(&data.Base, r, "Sign in", "/")
	data.SetError(msg)

	templates.Render(w, r, "login", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Forgot password: identity -> verify -> reset                                |
|                                                                             |
| The verification step accepts any code of four or more characters. There    |
| is no SMS or email delivery behind it; the flow exists so a leader who      |
| knows their own sign-in identifier can replace a forgotten password.        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeForgot(w http.ResponseWriter, r *http.Request) {
	data := forgotFormData{}
	formutil.SetBase(&data.Base, r, "Forgot password", "/login")

	templates.Render(w, r, "login_forgot", data)
}

func (h *Handler) HandleForgotIdentity(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login/forgot")
		return
	}

	loginID := strings.TrimSpace(r.FormValue("login_id"))

	if _, err := h.Leaders.GetByLogin(loginID); err != nil {
		data := forgotFormData{LoginID: loginID}
		formutil.SetBase(&data.Base, r, "Forgot password", "/login")
		data.SetError("沒有這個帳號，請輸入其他email/phone再嘗試")
		templates.Render(w, r, "login_forgot", data)
		return
	}

	data := verifyFormData{LoginID: loginID}
	formutil.SetBase(&data.Base, r, "Verify identity", "/login")
	templates.Render(w, r, "login_verify", data)
}

func (h *Handler) HandleForgotVerify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login/forgot")
		return
	}

	loginID := strings.TrimSpace(r.FormValue("login_id"))
	code := strings.TrimSpace(r.FormValue("code"))

	if len(code) < 4 {
		data := verifyFormData{LoginID: loginID}
		formutil.SetBase(&data.Base, r, "Verify identity", "/login")
		data.SetError("請輸入有效的驗證碼")
		templates.Render(w, r, "login_verify", data)
		return
	}

	data := resetFormData{LoginID: loginID}
	formutil.SetBase(&data.Base, r, "Reset password", "/login")
	templates.Render(w, r, "login_reset", data)
}

func (h *Handler) HandleForgotReset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login/forgot")
		return
	}

	loginID := strings.TrimSpace(r.FormValue("login_id"))
	newPass := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	renderWithError := func(msg string) {
		data := resetFormData{LoginID: loginID}
		formutil.SetBase(&data.Base, r, "Reset password", "/login")
		data.SetError(msg)
		templates.Render(w, r, "login_reset", data)
	}

	if len(newPass) < 6 {
		renderWithError("新密碼必須至少為 6 個字元")
		return
	}
	if newPass != confirm {
		renderWithError("兩次輸入的密碼不一致")
		return
	}

	leader, err := h.Leaders.GetByLogin(loginID)
	if err != nil {
		renderWithError("沒有這個帳號，請輸入其他email/phone再嘗試")
		return
	}

	if err := h.Leaders.SetPassword(leader.ID, newPass); err != nil {
		h.ErrLog.LogServerError(w, r, "password reset failed", err, "A server error occurred.", "/login")
		return
	}

	h.AuditLog.PasswordReset(r, leader.ID, normalize.Email(loginID))

	data := forgotFormData{}
	formutil.SetBase(&data.Base, r, "Password updated", "/login")
	templates.Render(w, r, "login_reset_success", data)
}
