// internal/app/features/leaders/photos.go
package leaders

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/domain/lineage"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

// photoCard is one leader tile in the lineage photo grid.
type photoCard struct {
	MGCode     string
	Name       string
	Generation int
	AvatarURL  string
}

type photoRootChoice struct {
	ID    string
	Label string
}

type photosData struct {
	formutil.Base

	Roots      []photoRootChoice
	SelectedID string

	RootName  string
	Total     int
	Breakdown string
	Cards     []photoCard
}

// ServePhotos renders the printable lineage photo grid: one tribe root
// at a time, every leader under that root's MG prefix sorted by
// generation then MG code.
func (h *Handler) ServePhotos(w http.ResponseWriter, r *http.Request) {
	all := h.Leaders.List()
	roots := lineage.TribeRoots(all)

	data := photosData{SelectedID: query.Get(r, "root")}
	for i := range roots {
		data.Roots = append(data.Roots, photoRootChoice{
			ID:    roots[i].ID,
			Label: roots[i].MGCode + " - " + roots[i].DisplayName(),
		})
	}
	if data.SelectedID == "" && len(roots) > 0 {
		data.SelectedID = roots[0].ID
	}

	for i := range all {
		if all[i].ID == data.SelectedID {
			fillPhotoGrid(&data, all, &all[i])
			break
		}
	}

	formutil.SetBase(&data.Base, r, "Lineage Photos", "/leaders")
	templates.Render(w, r, "leader_photos", data)
}

// fillPhotoGrid collects the root's lineage into cards and builds the
// per-generation headline, e.g. "第2代：3、第3代：5". Generation 1 is
// the root itself and is not listed in the breakdown.
func fillPhotoGrid(data *photosData, all []models.Leader, root *models.Leader) {
	members := lineage.LineageOf(all, root)
	sort.Slice(members, func(i, j int) bool {
		if members[i].Generation != members[j].Generation {
			return members[i].Generation < members[j].Generation
		}
		return members[i].MGCode < members[j].MGCode
	})

	genCounts := map[int]int{}
	for i := range members {
		m := &members[i]
		data.Cards = append(data.Cards, photoCard{
			MGCode:     m.MGCode,
			Name:       m.DisplayName(),
			Generation: m.Generation,
			AvatarURL:  m.AvatarURL,
		})
		if m.Generation > 1 {
			genCounts[m.Generation]++
		}
	}

	var gens []int
	for g := range genCounts {
		gens = append(gens, g)
	}
	sort.Ints(gens)
	parts := make([]string, 0, len(gens))
	for _, g := range gens {
		parts = append(parts, fmt.Sprintf("第%d代：%d", g, genCounts[g]))
	}

	data.RootName = root.DisplayName()
	data.Total = len(members)
	data.Breakdown = strings.Join(parts, "、")
}
