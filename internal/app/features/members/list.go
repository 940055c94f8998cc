// internal/app/features/members/list.go
package members

import (
	"net/http"
	"sort"
	"strings"

	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
)

type memberRow struct {
	ID          string
	ChineseName string
	EnglishName string
	PhoneNumber string
	Status      string
	JoinedDate  string
	GroupNames  []string
}

type listData struct {
	formutil.Base

	SearchQuery string
	Shown       int
	Total       int
	Rows        []memberRow
}

// ServeList shows the member directory with folded-text search over
// names and phone.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	search := query.Get(r, "search")
	folded := text.Fold(search)

	groupNames := map[string]string{}
	for _, g := range h.Groups.ListAll() {
		groupNames[g.ID] = g.GroupName
	}

	all := h.Members.List()
	rows := make([]memberRow, 0, len(all))
	for _, m := range all {
		if folded != "" && !matchesSearch(m, folded) {
			continue
		}
		row := memberRow{
			ID:          m.ID,
			ChineseName: m.ChineseName,
			EnglishName: m.EnglishName,
			PhoneNumber: m.PhoneNumber,
			Status:      m.Status,
			JoinedDate:  m.JoinedDate,
		}
		for _, gid := range m.GroupIDs {
			if name, ok := groupNames[gid]; ok {
				row.GroupNames = append(row.GroupNames, name)
			}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ChineseName < rows[j].ChineseName })

	data := listData{
		SearchQuery: search,
		Shown:       len(rows),
		Total:       len(all),
		Rows:        rows,
	}
	formutil.SetBase(&data.Base, r, "Members", "/dashboard")

	templates.Render(w, r, "member_list", data)
}

func matchesSearch(m models.CellMember, folded string) bool {
	return strings.Contains(text.Fold(m.ChineseName), folded) ||
		strings.Contains(text.Fold(m.EnglishName), folded) ||
		strings.Contains(m.PhoneNumber, folded)
}
