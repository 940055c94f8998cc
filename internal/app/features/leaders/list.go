// internal/app/features/leaders/list.go
package leaders

import (
	"net/http"
	"sort"
	"strings"

	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/app/system/normalize"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
)

// ServeList renders the admin leader directory with search and filter
// controls. Filtering is in-memory over the full snapshot; the network
// is a few hundred leaders at most.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	search := normalize.QueryParam(query.Get(r, "search"))
	folded := text.Fold(search)
	tribe := normalize.MGCode(query.Get(r, "tribe"))
	status := normalize.Status(query.Get(r, "status"))
	role := normalize.QueryParam(query.Get(r, "role"))

	all := h.Leaders.List()

	tribes := distinctTribes(all)

	var rows []leaderRow
	for i := range all {
		l := &all[i]
		if tribe != "" && l.TribeCode != tribe {
			continue
		}
		if status != "" && string(l.Status) != status {
			continue
		}
		if role != "" && !l.HasRole(role) {
			continue
		}
		if folded != "" && !matchesSearch(l, folded) {
			continue
		}
		rows = append(rows, leaderRow{
			ID:          l.ID,
			DisplayName: l.DisplayName(),
			MGCode:      l.MGCode,
			TribeCode:   l.TribeCode,
			Generation:  l.Generation,
			Roles:       l.Roles,
			Email:       l.Email,
			PhoneNumber: l.PhoneNumber,
			ParentName:  l.ParentLeaderName,
			GroupsCount: len(l.ActiveGroups()),
			Status:      l.Status,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].MGCode < rows[j].MGCode })

	data := listData{
		SearchQuery: search,
		Tribe:       tribe,
		Status:      status,
		Role:        role,
		Tribes:      tribes,
		RoleOptions: models.RoleOptions,
		Shown:       len(rows),
		Total:       len(all),
		Rows:        rows,
	}
	formutil.SetBase(&data.Base, r, "Leaders", "/dashboard")

	templates.Render(w, r, "leader_list", data)
}

// matchesSearch checks the folded free-text query against the fields a
// user would reach for: names, contact details, and the MG code.
func matchesSearch(l *models.Leader, folded string) bool {
	for _, field := range []string{
		l.ChineseName,
		l.FirstName,
		l.LastName,
		l.Email,
		l.PhoneNumber,
		l.MGCode,
	} {
		if field != "" && strings.Contains(text.Fold(field), folded) {
			return true
		}
	}
	return false
}

func distinctTribes(all []models.Leader) []string {
	seen := map[string]bool{}
	var out []string
	for i := range all {
		t := all[i].TribeCode
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
