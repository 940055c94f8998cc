// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"fmt"
	"net/http"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/domain/stats"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

type dashboardData struct {
	formutil.Base

	Scope      stats.Scope
	Range      string
	CanLineage bool

	Weekly  []stats.WeeklyStat
	Growth  string
	Network stats.NetworkSnapshot
}

// ServeDashboard renders the weekly attendance rollup and the
// leadership-network snapshot for the chosen scope and range.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	me, err := h.Leaders.GetByID(user.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load leader failed", err, "Your account could not be loaded.", "/login")
		return
	}

	scope := stats.Scope(query.Get(r, "scope"))
	if scope != stats.ScopeLineage {
		scope = stats.ScopeChurch
	}
	canLineage := me.IsCellLeader()
	if !canLineage {
		scope = stats.ScopeChurch
	}

	rangeFilter := query.Get(r, "range")
	all := h.Leaders.List()

	weekly := stats.Window(
		stats.WeeklyRollup(all, scope, &me),
		stats.WindowWeeks(rangeFilter),
	)

	data := dashboardData{
		Scope:      scope,
		Range:      rangeFilter,
		CanLineage: canLineage,
		Weekly:     weekly,
		Network:    stats.LeadershipNetwork(all, scope, &me),
	}
	if len(weekly) >= 2 {
		g := stats.Growth(weekly[0].TotalAttendance, weekly[1].TotalAttendance)
		data.Growth = fmt.Sprintf("%+.1f%%", g*100)
	}
	formutil.SetBase(&data.Base, r, "Dashboard", "/")

	templates.Render(w, r, "dashboard", data)
}
