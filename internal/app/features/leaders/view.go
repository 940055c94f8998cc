// internal/app/features/leaders/view.go
package leaders

import (
	"net/http"
	"sort"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/app/system/whatsapp"
	"github.com/church611/shepherdview/internal/domain/lineage"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// timelineEntry is one row of the merged history on the leader detail
// page.
type timelineEntry struct {
	Date   string // YYYY-MM-DD
	Kind   string // ordination | transfer | status | followup
	Title  string
	Detail string
	By     string
}

// reminderLink is one canned WhatsApp message rendered for this leader.
type reminderLink struct {
	Title string
	URL   string
}

type viewData struct {
	formutil.Base

	Leader   models.Leader
	Groups   []models.CellGroup
	Children []models.Leader
	Timeline []timelineEntry
	Reminder []reminderLink
}

func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	leader, err := h.Leaders.GetByID(id)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Leader not found.", "/leaders")
		return
	}

	all := h.Leaders.List()

	data := viewData{
		Leader:   leader,
		Groups:   leader.ActiveGroups(),
		Children: lineage.DirectChildren(all, &leader),
		Timeline: buildTimeline(&leader),
		Reminder: h.reminderLinks(&leader),
	}
	formutil.SetBase(&data.Base, r, leader.DisplayName(), "/leaders")

	templates.Render(w, r, "leader_view", data)
}

// buildTimeline merges ordination, transfers, status changes, and
// follow-ups into one newest-first list.
func buildTimeline(l *models.Leader) []timelineEntry {
	var out []timelineEntry

	if l.OrdinationDate != "" {
		out = append(out, timelineEntry{
			Date:  l.OrdinationDate,
			Kind:  "ordination",
			Title: "Ordained as cell leader",
		})
	}
	for _, t := range l.TransferHistory {
		out = append(out, timelineEntry{
			Date:   t.ChangeDate,
			Kind:   "transfer",
			Title:  "Transferred: " + t.FromParentName + " → " + t.ToParentName,
			Detail: t.Reason,
			By:     t.ChangedBy,
		})
	}
	for _, s := range l.StatusHistory {
		title := "Account disabled"
		if s.NewStatus == models.StatusActive {
			title = "Account reinstated"
		}
		out = append(out, timelineEntry{
			Date:   s.ChangeDate,
			Kind:   "status",
			Title:  title,
			Detail: s.Reason,
			By:     s.ChangedBy,
		})
	}
	for _, f := range l.FollowUpRecords {
		out = append(out, timelineEntry{
			Date:   f.Date,
			Kind:   "followup",
			Title:  "Follow-up",
			Detail: f.Content,
			By:     f.AdminName,
		})
	}

	// ISO dates sort lexicographically; newest first.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func (h *Handler) reminderLinks(l *models.Leader) []reminderLink {
	if l.PhoneNumber == "" {
		return nil
	}
	var out []reminderLink
	for _, t := range whatsapp.ReminderTemplates {
		msg := whatsapp.RenderMessage(t.Text, l.DisplayName(), h.BaseURL)
		out = append(out, reminderLink{
			Title: t.Title,
			URL:   whatsapp.Link(h.WhatsAppCountryCode, l.PhoneNumber, msg),
		})
	}
	return out
}
