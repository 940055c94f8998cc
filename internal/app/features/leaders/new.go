// internal/app/features/leaders/new.go
package leaders

import (
	"errors"
	"net/http"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/app/system/inputval"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// createLeaderInput defines validation rules for creating a leader.
type createLeaderInput struct {
	FirstName string `validate:"required,max=100" label:"First name"`
	Email     string `validate:"required,email,max=254" label:"Email"`
	AvatarURL string `validate:"httpurl,max=500" label:"Photo URL"`
}

// createdData is rendered once after creation so the admin can pass on
// the generated default password. The plaintext is never stored.
type createdData struct {
	formutil.Base

	Leader       models.Leader
	TempPassword string
}

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := leaderForm{
		Status:        models.StatusActive,
		RoleOptions:   models.RoleOptions,
		StatusOptions: []models.AccountStatus{models.StatusActive, models.StatusDisabled},
		ParentChoices: h.parentChoices(""),
	}
	formutil.SetBase(&data.Base, r, "New Leader", "/leaders")

	templates.Render(w, r, "leader_new", data)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/leaders")
		return
	}

	l := parseLeaderForm(r)
	if l.Status == "" {
		l.Status = models.StatusActive
	}

	input := createLeaderInput{FirstName: l.FirstName, Email: l.Email, AvatarURL: l.AvatarURL}
	if result := inputval.Validate(input); result.HasErrors() {
		h.renderNewWithError(w, r, result.First(), l)
		return
	}
	if l.HasRole(models.RoleCellLeader) && !inputval.IsValidMGCode(l.MGCode) {
		h.renderNewWithError(w, r, "A valid MG code is required for cell leaders.", l)
		return
	}

	created, tempPassword, err := h.Leaders.Create(l)
	switch {
	case errors.Is(err, leaderstore.ErrDuplicateLogin):
		h.renderNewWithError(w, r, "A leader with that email already exists.", l)
		return
	case errors.Is(err, leaderstore.ErrMissingRequired):
		h.renderNewWithError(w, r, "Email and first name are required.", l)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "leader create failed", err, "Failed to create leader.", "/leaders")
		return
	}

	h.AuditLog.LeaderCreated(r, actor.ID, actor.Name, created.ID, created.MGCode)

	data := createdData{Leader: created, TempPassword: tempPassword}
	formutil.SetBase(&data.Base, r, "Leader Created", "/leaders")
	templates.Render(w, r, "leader_created", data)
}

func (h *Handler) renderNewWithError(w http.ResponseWriter, r *http.Request, msg string, echo models.Leader) {
	data := leaderForm{
		MGCode:         echo.MGCode,
		Generation:     echo.Generation,
		OrdinationDate: echo.OrdinationDate,
		ParentLeaderID: echo.ParentLeaderID,
		Roles:          echo.Roles,
		IsAdmin:        echo.IsAdmin,
		Status:         echo.Status,
		ChineseName:    echo.ChineseName,
		FirstName:      echo.FirstName,
		LastName:       echo.LastName,
		Email:          echo.Email,
		PhoneNumber:    echo.PhoneNumber,
		MemberID:       echo.MemberID,
		AvatarURL:      echo.AvatarURL,
		RoleOptions:    models.RoleOptions,
		StatusOptions:  []models.AccountStatus{models.StatusActive, models.StatusDisabled},
		ParentChoices:  h.parentChoices(""),
	}
	formutil.SetBase(&data.Base, r, "New Leader", "/leaders")
	data.SetError(msg)

	templates.Render(w, r, "leader_new", data)
}
