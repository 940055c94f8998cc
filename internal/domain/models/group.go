// internal/domain/models/group.go
package models

// CellGroup is one gathering a leader runs. Formal groups (open and
// disciple cells) carry the full scheduling and demographic payload;
// informal groups (pre cell, relationship) are quick-added with
// defaults.
//
// NOTE:
//   - IsDeleted is a soft delete: the group disappears from every
//     listing and aggregate but its reports are retained for audit.
//   - GroupName is auto-generated as "{MG} - {CategoryLabel}[ - {suffix}]".
type CellGroup struct {
	ID        string        `json:"id"`
	GroupName string        `json:"group_name"`
	TribeCode string        `json:"tribe_code"`
	Category  GroupCategory `json:"category"`

	NameSuffix string `json:"name_suffix,omitempty"`

	GroupDay      string    `json:"group_day"`  // lowercase weekday
	GroupTime     string    `json:"group_time"` // HH:MM
	GroupLocation string    `json:"group_location"`
	GroupAddress  string    `json:"group_address,omitempty"`
	Frequency     Frequency `json:"group_frequency"`

	MaxCapacity        int      `json:"max_capacity"`
	CurrentMemberCount int      `json:"current_member_count"`
	PastorZoneID       ZoneCode `json:"pastor_zone_id"`
	TargetAudience     string   `json:"target_audience,omitempty"` // empty in the children's zone
	Languages          []string `json:"languages"`
	Service            string   `json:"service"`
	RegularMemberRange string   `json:"regular_member_range"`
	AgeRanges          []string `json:"age_ranges"`

	Reports []Report `json:"reports"`

	IsDeleted bool `json:"is_deleted,omitempty"`
}

// Report is one weekly (or biweekly) attendance report belonging to a
// group. Category is a snapshot of the parent group's category at write
// time and is never retroactively mutated.
type Report struct {
	ID              string        `json:"id"`
	GatheringDate   string        `json:"gathering_date"`           // YYYY-MM-DD
	GatheringTime   string        `json:"gathering_time,omitempty"` // HH:MM
	AttendanceCount int           `json:"attendance_count"`
	NewVisitorCount int           `json:"new_visitor_count"`
	Category        GroupCategory `json:"category"`
	Notes           string        `json:"notes"`

	// Detailed check-in. When populated, AttendanceCount equals
	// len(AttendedMemberIDs) + len(Guests) + 1 for the leader, though
	// the scalar may be manually overridden afterwards.
	AttendedMemberIDs []string      `json:"attended_member_ids,omitempty"`
	Guests            []GuestRecord `json:"guests,omitempty"`
}

// GuestRecord is a first-time visitor recorded inside a report.
type GuestRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}
