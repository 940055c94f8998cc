// internal/app/features/leaders/types.go
package leaders

import (
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/domain/models"
)

// leaderRow is one line of the admin directory table.
type leaderRow struct {
	ID          string
	DisplayName string
	MGCode      string
	TribeCode   string
	Generation  int
	Roles       []string
	Email       string
	PhoneNumber string
	ParentName  string
	GroupsCount int
	Status      models.AccountStatus
}

// listData is the view model for the leaders list page.
type listData struct {
	formutil.Base

	SearchQuery string
	Tribe       string
	Status      string
	Role        string

	Tribes      []string
	RoleOptions []string

	Shown int
	Total int
	Rows  []leaderRow
}

// leaderForm carries the editable fields shared by the new and edit
// pages. Leadership fields are honored only when the cell-leader role
// is among Roles.
type leaderForm struct {
	formutil.Base

	ID string

	MGCode         string
	Generation     int
	OrdinationDate string
	ParentLeaderID string
	Roles          []string
	IsAdmin        bool
	Status         models.AccountStatus

	ChineseName string
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	MemberID    string
	AvatarURL   string

	RoleOptions   []string
	StatusOptions []models.AccountStatus
	ParentChoices []parentChoice

	IsEdit bool
}

// HasFormRole reports whether the form currently carries the role, for
// checkbox state on re-render.
func (f leaderForm) HasFormRole(role string) bool {
	for _, r := range f.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// parentChoice is one option in the parent/transfer dropdowns.
type parentChoice struct {
	ID     string
	Label  string
	MGCode string
}
