// Package seed builds the demo dataset loaded at startup when
// SHEPHERDVIEW_SEED_DEMO_DATA is on. It mirrors the small network the
// admin team uses for training: the senior pastor at the root, one
// tribe with a disciple cell and recent reports, and a second empty
// tribe.
package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/church611/shepherdview/internal/domain/models"
)

const demoPassword = "611611"

// Leaders returns the demo leader set. Passwords are bcrypt-hashed at
// build time so the store never holds plaintext.
func Leaders(now time.Time) []models.Leader {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on invalid cost, which is fixed here.
		panic(fmt.Sprintf("seed: hash demo password: %v", err))
	}

	return []models.Leader{
		{
			ID:           "l1",
			PersonID:     "p1",
			MGCode:       "G",
			TribeCode:    "G",
			Generation:   1,
			ChineseName:  "張O年",
			FirstName:    "牧師",
			Email:        "sp@church611.org",
			PhoneNumber:  "+85261000100",
			PasswordHash: string(hash),
			Gender:       "Male",
			Roles:        []string{models.RoleCellLeader, models.RoleCoWorker, models.RoleTribeLeader},
			IsAdmin:      true,
			Status:       models.StatusActive,
			Groups:       []models.CellGroup{},
		},
		{
			ID:               "l19",
			PersonID:         "p19",
			MGCode:           "GJ",
			TribeCode:        "GJ",
			Generation:       1,
			ChineseName:      "王O勝",
			FirstName:        "Jason",
			Email:            "jasonwang@church611.org",
			PhoneNumber:      "+85261000111",
			PasswordHash:     string(hash),
			Gender:           "Male",
			Roles:            []string{models.RoleCoWorker, models.RoleTribeLeader, models.RoleCellLeader},
			IsAdmin:          true,
			Status:           models.StatusActive,
			ParentLeaderID:   "l1",
			ParentLeaderName: "G-張恩年",
			Groups: []models.CellGroup{
				{
					ID:                 "g19_1",
					GroupName:          "GJ-D-A-Mixed",
					TribeCode:          "GJ",
					Category:           models.CategoryDiscipleCell,
					GroupDay:           "thursday",
					GroupTime:          "19:30",
					GroupLocation:      "BIC",
					MaxCapacity:        12,
					CurrentMemberCount: 8,
					Frequency:          models.EveryWeek,
					PastorZoneID:       "ADT",
					TargetAudience:     "Mixed",
					Languages:          []string{"Mandarin"},
					Service:            "Sunday Service",
					RegularMemberRange: "7-9",
					AgeRanges:          []string{"36-45"},
					Reports:            weeklyReports(now, 5, models.CategoryDiscipleCell, 8),
				},
			},
		},
		{
			ID:               "l111",
			PersonID:         "p111",
			MGCode:           "MY",
			TribeCode:        "MY",
			Generation:       1,
			ChineseName:      "陳O怡",
			FirstName:        "Anne",
			Email:            "anne.chan117@gmail.com",
			PhoneNumber:      "+85261001018",
			PasswordHash:     string(hash),
			Gender:           "Female",
			Roles:            []string{models.RoleCoWorker, models.RoleTribeLeader, models.RoleCellLeader},
			IsAdmin:          false,
			Status:           models.StatusActive,
			ParentLeaderName: "G-張陳培南",
			Groups:           []models.CellGroup{},
		},
	}
}

// Members returns the demo member set. Several members belong to more
// than one group.
func Members() []models.CellMember {
	return []models.CellMember{
		{ID: "m1", ChineseName: "陳大文", EnglishName: "David Chan", PhoneNumber: "98765432", Birthday: "1990-05-15", MemberID: "M1001", Status: "active", GroupIDs: []string{"g19_1"}, JoinedDate: "2023-01-10"},
		{ID: "m2", ChineseName: "李美美", EnglishName: "May Lee", PhoneNumber: "91234567", Birthday: "1992-11-20", MemberID: "M1002", Status: "active", GroupIDs: []string{"g19_1", "g20_1"}, JoinedDate: "2023-02-15"},
		{ID: "m3", ChineseName: "張志強", EnglishName: "John Cheung", PhoneNumber: "92345678", Birthday: "1985-03-05", Status: "active", GroupIDs: []string{"g19_1"}, JoinedDate: "2023-01-20"},
		{ID: "m4", ChineseName: "王小芬", EnglishName: "Fanny Wong", PhoneNumber: "93456789", Birthday: "1988-08-25", MemberID: "M1004", Status: "active", GroupIDs: []string{"g21_1"}, JoinedDate: "2023-04-12"},
		{ID: "m5", ChineseName: "劉一峰", EnglishName: "Kevin Lau", PhoneNumber: "94567890", Birthday: "1995-12-30", Status: "active", GroupIDs: []string{"g21_1"}, JoinedDate: "2023-05-18"},
	}
}

// weeklyReports builds count reports walking back one week at a time
// from now. Attendance hovers just under the base roster size, never
// below one.
func weeklyReports(now time.Time, count int, category models.GroupCategory, base int) []models.Report {
	reports := make([]models.Report, 0, count)
	for i := 0; i < count; i++ {
		attendance := base - i%3
		if attendance < 1 {
			attendance = 1
		}
		notes := "-"
		if i%3 == 0 {
			notes = "Powerful testimony shared today."
		}
		reports = append(reports, models.Report{
			ID:              uuid.NewString(),
			GatheringDate:   now.AddDate(0, 0, -7*i).Format("2006-01-02"),
			GatheringTime:   "19:30",
			AttendanceCount: attendance,
			NewVisitorCount: i % 2,
			Category:        category,
			Notes:           notes,
		})
	}
	return reports
}
