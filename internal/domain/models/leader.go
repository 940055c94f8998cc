// internal/domain/models/leader.go
package models

// Leader represents one person in the shepherd network: tribe leaders,
// cell leaders, co-workers, and care leaders.
//
// NOTE:
//   - Hierarchy is encoded twice: ParentLeaderID links to the direct
//     parent, and the MG code prefix rule encodes full descent
//     (B descends from A iff B.MGCode has A.MGCode as a strict prefix).
//     Lineage derivations use the prefix rule only; see domain/lineage.
//   - Groups are embedded on the owning leader. A report always lives
//     inside exactly one group's Reports slice.
//   - Audit lists (TransferHistory, StatusHistory, FollowUpRecords) are
//     newest-first: commands prepend.
type Leader struct {
	ID       string `json:"id"`
	PersonID string `json:"person_id"`

	// Leadership identity. Meaningful only while Roles carries the
	// cell-leader role; clearing that role clears all three.
	MGCode         string `json:"mg_code"`
	TribeCode      string `json:"tribe_code"`
	Generation     int    `json:"generation"`
	OrdinationDate string `json:"ordination_date,omitempty"` // YYYY-MM-DD

	IsAdmin bool          `json:"is_admin,omitempty"`
	Status  AccountStatus `json:"status"`
	Roles   []string      `json:"roles"`

	ParentLeaderID   string `json:"parent_leader_id,omitempty"`
	ParentLeaderName string `json:"parent_leader_name,omitempty"`

	// Person data.
	ChineseName   string `json:"chinese_name,omitempty"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	PreferredName string `json:"preferred_name,omitempty"`
	NickName      string `json:"nick_name,omitempty"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	Gender        string `json:"gender,omitempty"`
	AgeRange      string `json:"age_range,omitempty"`
	Occupation    string `json:"occupation,omitempty"`
	MarriageState string `json:"marriage_status,omitempty"`
	MemberID      string `json:"member_id,omitempty"`
	Identity      string `json:"identity,omitempty"`

	// Ministry options.
	RecommendTeamMembers   string `json:"recommend_team_members,omitempty"`
	PastorEmotionalIssues  string `json:"pastor_emotional_issues,omitempty"`
	SpecialConditionMember string `json:"special_condition_member,omitempty"`

	// PasswordHash is a bcrypt hash. Never exported, never echoed.
	PasswordHash string `json:"-"`

	Groups          []CellGroup          `json:"groups"`
	FollowUpRecords []FollowUpRecord     `json:"follow_up_records,omitempty"`
	TransferHistory []TransferRecord     `json:"transfer_history,omitempty"`
	StatusHistory   []StatusChangeRecord `json:"status_history,omitempty"`
}

// DisplayName is the name shown in lists and audit records: the Chinese
// name when present, else the first name.
func (l *Leader) DisplayName() string {
	if l.ChineseName != "" {
		return l.ChineseName
	}
	return l.FirstName
}

// HasRole reports whether the leader carries the given role.
func (l *Leader) HasRole(role string) bool {
	for _, r := range l.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsCellLeader reports whether the leader carries the cell-leader or
// tribe-leader role, the set that owns formal groups and is tracked for
// reporting.
func (l *Leader) IsCellLeader() bool {
	return l.HasRole(RoleCellLeader) || l.HasRole(RoleTribeLeader)
}

// ActiveGroups returns the leader's groups with soft-deleted ones
// filtered out.
func (l *Leader) ActiveGroups() []CellGroup {
	var out []CellGroup
	for _, g := range l.Groups {
		if !g.IsDeleted {
			out = append(out, g)
		}
	}
	return out
}

// TransferRecord captures one hierarchy move, appended newest-first on
// the moved leader.
type TransferRecord struct {
	ID             string `json:"id"`
	FromParentID   string `json:"from_parent_id,omitempty"`
	FromParentName string `json:"from_parent_name,omitempty"`
	ToParentID     string `json:"to_parent_id,omitempty"`
	ToParentName   string `json:"to_parent_name,omitempty"`
	ChangeDate     string `json:"change_date"` // YYYY-MM-DD
	ChangedBy      string `json:"changed_by"`
	ChangedByID    string `json:"changed_by_id"`
	Reason         string `json:"reason"`
}

// StatusChangeRecord captures one suspension or reinstatement.
type StatusChangeRecord struct {
	ID          string        `json:"id"`
	OldStatus   AccountStatus `json:"old_status"`
	NewStatus   AccountStatus `json:"new_status"`
	ChangeDate  string        `json:"change_date"` // YYYY-MM-DD
	ChangedBy   string        `json:"changed_by"`
	ChangedByID string        `json:"changed_by_id"`
	Reason      string        `json:"reason"`
}

// FollowUpRecord is an administrator's free-text log entry on a leader,
// typically written while chasing a missing report.
type FollowUpRecord struct {
	ID        string `json:"id"`
	AdminID   string `json:"admin_id"`
	AdminName string `json:"admin_name"`
	Date      string `json:"date"` // YYYY-MM-DD
	Content   string `json:"content"`
}
