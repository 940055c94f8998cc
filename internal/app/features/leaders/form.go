// internal/app/features/leaders/form.go
package leaders

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/church611/shepherdview/internal/app/system/normalize"
	"github.com/church611/shepherdview/internal/domain/lineage"
	"github.com/church611/shepherdview/internal/domain/models"
)

// parseLeaderForm reads the shared new/edit form fields into a Leader.
// The store applies the leadership gate; the form just carries values.
func parseLeaderForm(r *http.Request) models.Leader {
	gen, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("generation")))

	return models.Leader{
		MGCode:         normalize.MGCode(r.FormValue("mg_code")),
		TribeCode:      tribeOf(normalize.MGCode(r.FormValue("mg_code"))),
		Generation:     gen,
		OrdinationDate: strings.TrimSpace(r.FormValue("ordination_date")),
		ParentLeaderID: strings.TrimSpace(r.FormValue("parent_leader_id")),
		Roles:          r.Form["roles"],
		IsAdmin:        r.FormValue("is_admin") != "",
		Status:         models.AccountStatus(normalize.Status(r.FormValue("status"))),
		ChineseName:    normalize.Name(r.FormValue("chinese_name")),
		FirstName:      normalize.Name(r.FormValue("first_name")),
		LastName:       normalize.Name(r.FormValue("last_name")),
		Email:          normalize.Email(r.FormValue("email")),
		PhoneNumber:    normalize.Phone(r.FormValue("phone_number")),
		MemberID:       strings.TrimSpace(r.FormValue("member_id")),
		AvatarURL:      strings.TrimSpace(r.FormValue("avatar_url")),
	}
}

// tribeOf derives the tribe code from an MG code: the root letter plus
// the first digit block, which for this network is the first two runes.
func tribeOf(mgCode string) string {
	if len(mgCode) < 2 {
		return mgCode
	}
	return mgCode[:2]
}

// parentChoices lists the active leaders that can hold descendants,
// excluding the given id and anything below it.
func (h *Handler) parentChoices(excludeID string) []parentChoice {
	all := h.Leaders.List()

	var exclude *models.Leader
	for i := range all {
		if all[i].ID == excludeID {
			exclude = &all[i]
			break
		}
	}

	var out []parentChoice
	for i := range all {
		l := &all[i]
		if l.ID == excludeID || l.Status == models.StatusDisabled || !l.IsCellLeader() {
			continue
		}
		if exclude != nil && lineage.IsDescendant(exclude, l) {
			continue
		}
		out = append(out, parentChoice{
			ID:     l.ID,
			Label:  l.MGCode + " · " + l.DisplayName(),
			MGCode: l.MGCode,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MGCode < out[j].MGCode })
	return out
}
