// internal/domain/models/clone.go
package models

// Clone returns a deep copy of the leader, including embedded groups,
// reports, and audit history. The store hands clones out so callers can
// never mutate shared state.
func (l Leader) Clone() Leader {
	out := l
	out.Roles = append([]string(nil), l.Roles...)
	if l.Groups != nil {
		out.Groups = make([]CellGroup, len(l.Groups))
		for i, g := range l.Groups {
			out.Groups[i] = g.Clone()
		}
	}
	out.FollowUpRecords = append([]FollowUpRecord(nil), l.FollowUpRecords...)
	out.TransferHistory = append([]TransferRecord(nil), l.TransferHistory...)
	out.StatusHistory = append([]StatusChangeRecord(nil), l.StatusHistory...)
	return out
}

// Clone returns a deep copy of the group and its reports.
func (g CellGroup) Clone() CellGroup {
	out := g
	out.Languages = append([]string(nil), g.Languages...)
	out.AgeRanges = append([]string(nil), g.AgeRanges...)
	if g.Reports != nil {
		out.Reports = make([]Report, len(g.Reports))
		for i, r := range g.Reports {
			out.Reports[i] = r.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the report.
func (r Report) Clone() Report {
	out := r
	out.AttendedMemberIDs = append([]string(nil), r.AttendedMemberIDs...)
	out.Guests = append([]GuestRecord(nil), r.Guests...)
	return out
}

// Clone returns a deep copy of the member.
func (m CellMember) Clone() CellMember {
	out := m
	out.GroupIDs = append([]string(nil), m.GroupIDs...)
	return out
}
