// internal/app/features/groups/groupnew.go
package groups

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	groupstore "github.com/church611/shepherdview/internal/app/store/groups"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/app/system/normalize"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

// groupForm is the shared new/edit view model.
type groupForm struct {
	formutil.Base

	ID       string
	Category models.GroupCategory
	Label    string

	NameSuffix         string
	GroupDay           string
	GroupTime          string
	GroupLocation      string
	GroupAddress       string
	Frequency          models.Frequency
	MaxCapacity        int
	PastorZoneID       models.ZoneCode
	TargetAudience     string
	Languages          []string
	Service            string
	RegularMemberRange string
	AgeRanges          []string

	Days            []string
	Zones           []models.Zone
	TargetAudiences []string
	LanguageOptions []string
	Services        []string
	MemberRanges    []string
	AgeRangeOptions []string

	IsEdit bool
}

// fillOptions populates the closed-vocabulary select and checkbox sets.
func (f *groupForm) fillOptions() {
	f.Days = models.Days
	f.Zones = models.Zones
	f.TargetAudiences = models.TargetAudiences
	f.LanguageOptions = models.Languages
	f.Services = models.ChurchServices
	f.MemberRanges = models.MemberRanges
	f.AgeRangeOptions = models.GroupAgeRanges
}

// HasLanguage and HasAgeRange drive checkbox state on re-render.
func (f groupForm) HasLanguage(lang string) bool {
	for _, l := range f.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

func (f groupForm) HasAgeRange(ar string) bool {
	for _, a := range f.AgeRanges {
		if a == ar {
			return true
		}
	}
	return false
}

// ServeNewGroup renders the full configuration form for a formal
// category. Informal categories go through quick-add instead.
func (h *Handler) ServeNewGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	category := models.GroupCategory(query.Get(r, "category"))
	if !models.IsValidCategory(category) {
		uierrors.RenderBadRequest(w, r, "Unknown group category.", "/groups")
		return
	}

	leader, err := h.Leaders.GetByID(user.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load leader failed", err, "Your account could not be loaded.", "/")
		return
	}
	if !groupstore.CanProvision(&leader, category) {
		uierrors.RenderForbidden(w, r, "Your roles do not allow this group category.", "/groups")
		return
	}

	data := groupForm{
		Category:     category,
		Label:        models.CategoryLabels[category],
		Frequency:    groupstore.DefaultFrequency(category),
		PastorZoneID: models.Zones[0].Code,
		MaxCapacity:  12,
	}
	data.fillOptions()
	formutil.SetBase(&data.Base, r, "New Group", "/groups")

	templates.Render(w, r, "group_new", data)
}

// HandleCreateGroup creates a fully configured group.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/groups")
		return
	}

	g := parseGroupForm(r)

	reRender := func(msg string) {
		data := groupFormFrom(g)
		data.Label = models.CategoryLabels[g.Category]
		data.fillOptions()
		formutil.SetBase(&data.Base, r, "New Group", "/groups")
		data.SetError(msg)
		templates.Render(w, r, "group_new", data)
	}

	created, err := h.Groups.Create(user.ID, g)
	switch {
	case errors.Is(err, groupstore.ErrBadCategory):
		uierrors.RenderBadRequest(w, r, "Unknown group category.", "/groups")
		return
	case errors.Is(err, groupstore.ErrNotProvisioned):
		uierrors.RenderForbidden(w, r, "Your roles do not allow this group category.", "/groups")
		return
	case errors.Is(err, groupstore.ErrIncomplete):
		reRender("Day, time, and location are required for this category.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "group create failed", err, "Failed to create group.", "/groups")
		return
	}

	h.AuditLog.GroupCreated(r, user.ID, user.Name, created.ID, created.GroupName)

	http.Redirect(w, r, "/groups", http.StatusSeeOther)
}

// HandleQuickAdd creates an informal group with stock defaults.
func (h *Handler) HandleQuickAdd(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/groups")
		return
	}

	category := models.GroupCategory(strings.TrimSpace(r.FormValue("category")))

	created, err := h.Groups.QuickAdd(user.ID, category)
	switch {
	case errors.Is(err, groupstore.ErrBadCategory):
		uierrors.RenderBadRequest(w, r, "Unknown group category.", "/groups")
		return
	case errors.Is(err, groupstore.ErrNotProvisioned):
		uierrors.RenderForbidden(w, r, "Your roles do not allow this group category.", "/groups")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "group quick-add failed", err, "Failed to create group.", "/groups")
		return
	}

	h.AuditLog.GroupCreated(r, user.ID, user.Name, created.ID, created.GroupName)

	http.Redirect(w, r, "/groups", http.StatusSeeOther)
}

// parseGroupForm reads the shared new/edit form fields.
func parseGroupForm(r *http.Request) models.CellGroup {
	capacity, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("max_capacity")))

	return models.CellGroup{
		Category:           models.GroupCategory(strings.TrimSpace(r.FormValue("category"))),
		NameSuffix:         normalize.Name(r.FormValue("name_suffix")),
		GroupDay:           strings.ToLower(strings.TrimSpace(r.FormValue("group_day"))),
		GroupTime:          strings.TrimSpace(r.FormValue("group_time")),
		GroupLocation:      normalize.Name(r.FormValue("group_location")),
		GroupAddress:       normalize.Name(r.FormValue("group_address")),
		Frequency:          models.Frequency(strings.TrimSpace(r.FormValue("frequency"))),
		MaxCapacity:        capacity,
		PastorZoneID:       models.ZoneCode(strings.TrimSpace(r.FormValue("pastor_zone_id"))),
		TargetAudience:     normalize.Name(r.FormValue("target_audience")),
		Languages:          r.Form["languages"],
		Service:            normalize.Name(r.FormValue("service")),
		RegularMemberRange: strings.TrimSpace(r.FormValue("regular_member_range")),
		AgeRanges:          r.Form["age_ranges"],
	}
}

// groupFormFrom copies a CellGroup into the form view model.
func groupFormFrom(g models.CellGroup) groupForm {
	return groupForm{
		ID:                 g.ID,
		Category:           g.Category,
		NameSuffix:         g.NameSuffix,
		GroupDay:           g.GroupDay,
		GroupTime:          g.GroupTime,
		GroupLocation:      g.GroupLocation,
		GroupAddress:       g.GroupAddress,
		Frequency:          g.Frequency,
		MaxCapacity:        g.MaxCapacity,
		PastorZoneID:       g.PastorZoneID,
		TargetAudience:     g.TargetAudience,
		Languages:          g.Languages,
		Service:            g.Service,
		RegularMemberRange: g.RegularMemberRange,
		AgeRanges:          g.AgeRanges,
	}
}
