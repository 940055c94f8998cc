// internal/domain/models/member.go
package models

// CellMember is a flock member who attends one or more groups. Members
// are created by their leader (often mid check-in) or by self
// registration, and a single member may belong to several groups.
type CellMember struct {
	ID          string   `json:"id"`
	ChineseName string   `json:"chinese_name"`
	EnglishName string   `json:"english_name,omitempty"`
	PhoneNumber string   `json:"phone_number"`
	Birthday    string   `json:"birthday,omitempty"` // YYYY-MM-DD
	MemberID    string   `json:"member_id,omitempty"`
	Status      string   `json:"status"` // active | inactive
	GroupIDs    []string `json:"group_ids"`
	JoinedDate  string   `json:"joined_date"` // YYYY-MM-DD
	AvatarURL   string   `json:"avatar_url,omitempty"`
}

// InGroup reports whether the member belongs to the given group.
func (m *CellMember) InGroup(groupID string) bool {
	for _, id := range m.GroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}

// RosterEntry is one row of a group's check-in roster. Most rows are
// real members; for disciple cells the leader's direct descendants are
// injected as IsLeader entries without touching the member table.
type RosterEntry struct {
	ID          string `json:"id"`
	ChineseName string `json:"chinese_name"`
	EnglishName string `json:"english_name,omitempty"`
	PhoneNumber string `json:"phone_number"`
	JoinedDate  string `json:"joined_date,omitempty"`
	IsLeader    bool   `json:"is_leader,omitempty"`
}
