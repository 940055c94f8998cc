// internal/domain/models/vocab.go
package models

// Closed vocabularies for the shepherd network. These mirror the church's
// administrative forms; handlers validate submitted values against them.

// Role names are the Chinese labels used throughout the church's
// administration. They are stored verbatim on leader records.
const (
	RoleTribeLeader = "族長"
	RoleCellLeader  = "小組長"
	RoleCoWorker    = "同工"
	RoleCareLeader  = "關懷小組長"
)

// RoleOptions is the full closed role set, in display order.
var RoleOptions = []string{RoleTribeLeader, RoleCellLeader, RoleCoWorker, RoleCareLeader}

// GroupCategory identifies the four kinds of cell group. Only open and
// disciple cells are formal groups requiring the full configuration
// payload; pre cells and relationship (1-on-1) groups are quick-added
// with defaults.
type GroupCategory string

const (
	CategoryOpenCell     GroupCategory = "open_cell"
	CategoryDiscipleCell GroupCategory = "disciple_cell"
	CategoryPreCell      GroupCategory = "pre_cell"
	CategoryRelationship GroupCategory = "relationship"
)

// FormalCategories are the categories that require full scheduling and
// demographic configuration.
var FormalCategories = []GroupCategory{CategoryOpenCell, CategoryDiscipleCell}

// AllCategories lists every group category in display order.
var AllCategories = []GroupCategory{CategoryOpenCell, CategoryDiscipleCell, CategoryPreCell, CategoryRelationship}

// CategoryLabels maps categories to their display labels.
var CategoryLabels = map[GroupCategory]string{
	CategoryOpenCell:     "Open Cell",
	CategoryDiscipleCell: "Disciple Cell",
	CategoryPreCell:      "Pre Cell",
	CategoryRelationship: "Relationship(1對1門訓)",
}

// IsValidCategory reports whether c is one of the four closed categories.
func IsValidCategory(c GroupCategory) bool {
	switch c {
	case CategoryOpenCell, CategoryDiscipleCell, CategoryPreCell, CategoryRelationship:
		return true
	}
	return false
}

// IsFormal reports whether the category requires full configuration.
func (c GroupCategory) IsFormal() bool {
	return c == CategoryOpenCell || c == CategoryDiscipleCell
}

// Frequency is how often a group gathers.
type Frequency string

const (
	EveryWeek      Frequency = "every_week"
	EveryOtherWeek Frequency = "every_other_week"
)

// GapDays returns the number of days between gatherings.
func (f Frequency) GapDays() int {
	if f == EveryOtherWeek {
		return 14
	}
	return 7
}

// AccountStatus is a leader's serving status.
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusDisabled AccountStatus = "disabled"
)

// IsValidStatus reports whether s is one of the two account statuses.
func IsValidStatus(s AccountStatus) bool {
	return s == StatusActive || s == StatusDisabled
}

// ZoneCode identifies a pastoral zone.
type ZoneCode string

// Zone pairs a zone code with its display label.
type Zone struct {
	Code  ZoneCode
	Label string
}

// Zones is the closed set of pastoral zones, in display order. The first
// entry is the default for quick-added groups.
var Zones = []Zone{
	{Code: "ABD", Label: "Abundant (豐盛)"},
	{Code: "ADT", Label: "Adults (成人)"},
	{Code: "YOU", Label: "Youth (青年)"},
	{Code: "CHI", Label: "Children (兒童)"},
	{Code: "ANW", Label: "ANEW (列國)"},
}

// ZoneChildren is the children's zone; groups there carry no target
// audience.
const ZoneChildren ZoneCode = "CHI"

// IsValidZone reports whether z is a configured zone code.
func IsValidZone(z ZoneCode) bool {
	for _, zone := range Zones {
		if zone.Code == z {
			return true
		}
	}
	return false
}

// Days lists the seven weekday names used for group schedules.
var Days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// IsValidDay reports whether d is a lowercase weekday name.
func IsValidDay(d string) bool {
	for _, day := range Days {
		if day == d {
			return true
		}
	}
	return false
}

// Form option sets for formal group configuration and leader profiles.
var (
	TargetAudiences   = []string{"Brothers", "Sisters", "Couples", "Mixed", "Teens", "Youth", "Young Adults"}
	Languages         = []string{"Cantonese", "Mandarin", "English"}
	ChurchServices    = []string{"Sunday Service", "Abundant 120", "Saturday Service", "Youth Service"}
	MemberRanges      = []string{"1-3", "4-6", "7-9", "10-12", "Above 12"}
	GroupAgeRanges    = []string{"Below 18", "18-25", "26-35", "36-45", "46-55", "56-65", "Above 65"}
	Genders           = []string{"Male", "Female"}
	ProfileAgeRanges  = []string{"12-18", "19-25", "26-35", "36-45", "46-55", "56-70", "above 70"}
	MarriageStatuses  = []string{"Single", "Married", "Widower", "Divorce", "Live alone", "Remarried"}
	SpecialConditions = []string{"None", "SEN", "Mental disorder", "Other"}
	YesNo             = []string{"Yes", "No"}
)
