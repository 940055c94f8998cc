// internal/app/features/leaders/edit.go
package leaders

import (
	"errors"
	"net/http"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/app/system/inputval"
	"github.com/church611/shepherdview/internal/app/system/navigation"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// editLeaderInput defines validation rules for editing a leader.
type editLeaderInput struct {
	FirstName string `validate:"required,max=100" label:"First name"`
	Email     string `validate:"required,email,max=254" label:"Email"`
	AvatarURL string `validate:"httpurl,max=500" label:"Photo URL"`
}

// ServeEdit renders the Edit Leader page.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	leader, err := h.Leaders.GetByID(id)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Leader not found.", "/leaders")
		return
	}

	data := leaderFormFrom(leader)
	data.RoleOptions = models.RoleOptions
	data.StatusOptions = []models.AccountStatus{models.StatusActive, models.StatusDisabled}
	data.ParentChoices = h.parentChoices(id)
	data.IsEdit = true
	formutil.SetBase(&data.Base, r, "Edit Leader", "/leaders")

	templates.Render(w, r, "leader_edit", data)
}

// HandleEdit processes the Edit Leader form submission. The store keeps
// identity, groups, audit lists, and the password hash; dropping the
// cell-leader role clears the leadership fields.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/leaders")
		return
	}

	id := chi.URLParam(r, "id")

	l := parseLeaderForm(r)
	l.ID = id

	reRender := func(msg string) {
		data := leaderFormFrom(l)
		// The parent select is read-only on edit and does not submit;
		// echo the stored link so the form still shows it.
		if cur, err := h.Leaders.GetByID(id); err == nil {
			data.ParentLeaderID = cur.ParentLeaderID
		}
		data.RoleOptions = models.RoleOptions
		data.StatusOptions = []models.AccountStatus{models.StatusActive, models.StatusDisabled}
		data.ParentChoices = h.parentChoices(id)
		data.IsEdit = true
		formutil.SetBase(&data.Base, r, "Edit Leader", "/leaders")
		data.SetError(msg)
		templates.Render(w, r, "leader_edit", data)
	}

	input := editLeaderInput{FirstName: l.FirstName, Email: l.Email, AvatarURL: l.AvatarURL}
	if result := inputval.Validate(input); result.HasErrors() {
		reRender(result.First())
		return
	}
	if l.HasRole(models.RoleCellLeader) && !inputval.IsValidMGCode(l.MGCode) {
		reRender("A valid MG code is required for cell leaders.")
		return
	}

	// Status changes go through the dedicated reason-required flow; an
	// edit never flips the account status.
	l.Status = ""

	updated, err := h.Leaders.Update(l)
	switch {
	case errors.Is(err, leaderstore.ErrNotFound):
		uierrors.RenderNotFound(w, r, "Leader not found.", "/leaders")
		return
	case errors.Is(err, leaderstore.ErrDuplicateLogin):
		reRender("A leader with that email already exists.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "leader update failed", err, "Failed to update leader.", "/leaders")
		return
	}

	h.AuditLog.LeaderUpdated(r, actor.ID, actor.Name, updated.ID)

	ret := navigation.SafeBackURL(r, navigation.LeadersBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}

// leaderFormFrom copies a Leader into the shared form view model.
func leaderFormFrom(l models.Leader) leaderForm {
	return leaderForm{
		ID:             l.ID,
		MGCode:         l.MGCode,
		Generation:     l.Generation,
		OrdinationDate: l.OrdinationDate,
		ParentLeaderID: l.ParentLeaderID,
		Roles:          l.Roles,
		IsAdmin:        l.IsAdmin,
		Status:         l.Status,
		ChineseName:    l.ChineseName,
		FirstName:      l.FirstName,
		LastName:       l.LastName,
		Email:          l.Email,
		PhoneNumber:    l.PhoneNumber,
		MemberID:       l.MemberID,
		AvatarURL:      l.AvatarURL,
	}
}
