// internal/app/features/groups/list.go
package groups

import (
	"net/http"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	groupstore "github.com/church611/shepherdview/internal/app/store/groups"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// categoryChoice is one quick-add / create option on the list page.
type categoryChoice struct {
	Category models.GroupCategory
	Label    string
	Formal   bool
}

type listData struct {
	formutil.Base

	Groups  []models.CellGroup
	Choices []categoryChoice
}

// ServeGroupsList shows the signed-in leader's groups with the create
// options their roles provision.
func (h *Handler) ServeGroupsList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	leader, err := h.Leaders.GetByID(user.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load leader failed", err, "Your account could not be loaded.", "/")
		return
	}

	groups, err := h.Groups.ListForLeader(user.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list groups failed", err, "Failed to load your groups.", "/")
		return
	}

	var choices []categoryChoice
	for _, c := range groupstore.AllowedCategories(&leader) {
		choices = append(choices, categoryChoice{
			Category: c,
			Label:    models.CategoryLabels[c],
			Formal:   c.IsFormal(),
		})
	}

	data := listData{Groups: groups, Choices: choices}
	formutil.SetBase(&data.Base, r, "My Groups", "/dashboard")

	templates.Render(w, r, "group_list", data)
}
